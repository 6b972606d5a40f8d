package storage

import (
	"fmt"
	"strings"
	"time"

	"opensearch-cleanup/internal/formatters"

	"github.com/google/uuid"
)

// RunUploadConfig holds the settings for archiving one run report.
type RunUploadConfig struct {
	Bucket string
	Prefix string
	Region string
	RunID  string // auto-generated when empty
}

// NewRunID builds a sortable run identifier: a UTC timestamp plus a short
// random suffix so two runs starting in the same second do not collide.
func NewRunID() string {
	return fmt.Sprintf("%s_%s",
		time.Now().UTC().Format("20060102_150405"),
		strings.Split(uuid.NewString(), "-")[0])
}

// UploadRunReport archives the JSON run report under runs/<run-id>/ and
// returns the S3 key it was written to.
func UploadRunReport(config RunUploadConfig, report formatters.RunReport) (string, error) {
	client, err := NewS3Client(config.Bucket, config.Prefix, config.Region)
	if err != nil {
		return "", err
	}

	runID := config.RunID
	if runID == "" {
		runID = NewRunID()
	}

	data, err := formatters.JSON(report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal run report: %w", err)
	}

	key := fmt.Sprintf("runs/%s/report.json", runID)
	if err := client.UploadBytes(data, key); err != nil {
		return "", err
	}
	return client.buildKey(key), nil
}
