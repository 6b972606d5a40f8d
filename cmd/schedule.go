package cmd

import (
	"log"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	scheduleSpec    string
	scheduleLogFile string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the cleanup on a cron schedule in the foreground",
	Long: `Run the cleanup on a cron schedule in the foreground. Intended for
environments without an external scheduler; a Kubernetes CronJob calling
"run" is the usual deployment.

Examples:
  # Daily at 04:00 UTC (the default), logging to a rotating file
  opensearch-cleanup schedule --rules rules.yaml --log-file /var/log/cleanup.log

  # Custom schedule
  opensearch-cleanup schedule --rules rules.yaml --cron "30 2 * * *"`,
	Run: func(cmd *cobra.Command, args []string) {
		runSchedule()
	},
}

func init() {
	scheduleCmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "Rules file (default: RULES_FILE env var)")
	scheduleCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan deletions without executing them")
	scheduleCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log skipped indices with unparseable date suffixes")
	scheduleCmd.Flags().StringVar(&scheduleSpec, "cron", "", "Cron schedule (default: CLEANUP_SCHEDULE env var or daily at 04:00)")
	scheduleCmd.Flags().StringVar(&scheduleLogFile, "log-file", "", "Rotating log file (default: CLEANUP_LOG_FILE env var, empty for stderr)")
}

func runSchedule() {
	cfg := loadRunConfig()

	if scheduleSpec != "" {
		cfg.Schedule = scheduleSpec
	}
	if scheduleLogFile != "" {
		cfg.LogFile = scheduleLogFile
	}

	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(cfg.Schedule, func() {
		log.Printf("Starting scheduled cleanup run")
		report, err := executeCleanup(cfg)
		switch {
		case err != nil:
			log.Printf("Error: cleanup run failed: %v", err)
		case report.Failed():
			log.Printf("Cleanup run finished with failures")
		default:
			log.Printf("Cleanup run finished")
		}
	})
	if err != nil {
		log.Fatalf("Error: invalid cron schedule %q: %v", cfg.Schedule, err)
	}

	log.Printf("Cleanup scheduled with cron spec %q", cfg.Schedule)
	scheduler.Run()
}
