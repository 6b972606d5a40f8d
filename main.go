package main

import (
	"fmt"
	"os"

	"opensearch-cleanup/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine; the environment itself may be complete.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
