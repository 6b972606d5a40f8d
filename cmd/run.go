package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"opensearch-cleanup/internal/cluster"
	"opensearch-cleanup/internal/engine"
	"opensearch-cleanup/internal/formatters"
	"opensearch-cleanup/internal/loaders"
	"opensearch-cleanup/internal/notify"
	"opensearch-cleanup/internal/storage"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	// Common flags
	rulesFile string
	dryRun    bool
	verbose   bool
	jsonFile  string

	// S3 flags
	s3Upload bool
	s3Bucket string
	s3Prefix string
	s3Region string
	s3RunID  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one cleanup run across all configured services",
	Long: `Execute one cleanup run: list every configured service's indices, plan
deletions against the rules file, delete the planned indices, and dispatch the
notification.

Examples:
  # Plan only, delete nothing
  opensearch-cleanup run --rules rules.yaml --dry-run

  # Full run with a JSON report archived to S3
  opensearch-cleanup run --rules rules.yaml \
    --json-file report.json \
    --s3-upload --s3-bucket ops-reports --s3-prefix opensearch-cleanup`,
	Run: func(cmd *cobra.Command, args []string) {
		runCleanup()
	},
}

func init() {
	runCmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "Rules file (default: RULES_FILE env var)")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan deletions without executing them")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log skipped indices with unparseable date suffixes")
	runCmd.Flags().StringVar(&jsonFile, "json-file", "", "JSON run report output file path")

	runCmd.Flags().BoolVar(&s3Upload, "s3-upload", false, "Upload the JSON run report to S3")
	runCmd.Flags().StringVar(&s3Bucket, "s3-bucket", "", "S3 bucket name (or use S3_BUCKET env var)")
	runCmd.Flags().StringVar(&s3Prefix, "s3-prefix", "", "S3 key prefix (or use S3_PREFIX env var)")
	runCmd.Flags().StringVar(&s3Region, "s3-region", "", "AWS region (or use AWS_REGION env var)")
	runCmd.Flags().StringVar(&s3RunID, "s3-run-id", "", "Run ID for S3 organization (default: auto-generated)")
}

func runCleanup() {
	cfg := loadRunConfig()

	report, err := executeCleanup(cfg)
	if err != nil {
		log.Fatalf("Error: cleanup run failed: %v", err)
	}
	if report.Failed() {
		os.Exit(1)
	}
}

// loadRunConfig reads the environment and overlays command-line flags.
func loadRunConfig() *loaders.Config {
	cfg, err := loaders.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if rulesFile != "" {
		cfg.RulesFile = rulesFile
	}
	if dryRun {
		cfg.DryRun = true
	}
	if s3Bucket != "" {
		cfg.S3Bucket = s3Bucket
	}
	if s3Prefix != "" {
		cfg.S3Prefix = s3Prefix
	}
	if s3Region != "" {
		cfg.AWSRegion = s3Region
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

// executeCleanup performs one full cleanup cycle: load rules, snapshot the
// listings, plan, delete, report. Shared by the run and schedule commands.
func executeCleanup(cfg *loaders.Config) (formatters.RunReport, error) {
	services, err := loaders.LoadServiceRules(cfg.RulesFile)
	if err != nil {
		return formatters.RunReport{}, err
	}

	ctx := context.Background()
	client := cluster.NewClient(cfg.AivenAPIURL, cfg.AivenAPIToken, cfg.AivenProject)

	snapshot := prefetchListings(ctx, client, services)
	result := engine.NewOrchestrator(snapshot).Run(ctx, services, time.Now().UTC())

	report := executePlans(ctx, client, result, cfg)
	formatters.Text(report)

	if jsonFile != "" {
		data, err := formatters.JSON(report)
		if err != nil {
			return report, err
		}
		if err := os.WriteFile(jsonFile, data, 0600); err != nil {
			return report, fmt.Errorf("failed to write JSON report: %w", err)
		}
		fmt.Printf("JSON report saved to %s\n", jsonFile)
	}

	if s3Upload {
		key, err := storage.UploadRunReport(storage.RunUploadConfig{
			Bucket: cfg.S3Bucket,
			Prefix: cfg.S3Prefix,
			Region: cfg.AWSRegion,
			RunID:  s3RunID,
		}, report)
		if err != nil {
			return report, fmt.Errorf("failed to upload run report: %w", err)
		}
		fmt.Printf("Run report uploaded to s3://%s/%s\n", cfg.S3Bucket, key)
	}

	if !cfg.DryRun && cfg.WebhookURL != "" {
		notifier := notify.New(cfg.WebhookURL, cfg.TitleLink)
		if err := notifier.Send(ctx, report); err != nil {
			return report, fmt.Errorf("notification failed: %w", err)
		}
	}

	return report, nil
}

// listingSnapshot serves prefetched per-service listings to the orchestrator.
type listingSnapshot struct {
	indices map[string][]engine.IndexInfo
	errs    map[string]error
}

func (s *listingSnapshot) ListIndices(_ context.Context, service string) ([]engine.IndexInfo, error) {
	if err := s.errs[service]; err != nil {
		return nil, err
	}
	return s.indices[service], nil
}

// prefetchListings lists all services' indices concurrently. Failures stay
// with their service so one bad listing never affects the others, and plan
// ordering is untouched because the orchestrator still walks services in
// rules-document order.
func prefetchListings(ctx context.Context, client *cluster.Client, services []engine.ServiceRules) *listingSnapshot {
	type slot struct {
		indices []engine.IndexInfo
		err     error
	}
	slots := make([]slot, len(services))

	var group errgroup.Group
	group.SetLimit(4)
	for i, serviceRules := range services {
		i, service := i, serviceRules.Service
		group.Go(func() error {
			slots[i].indices, slots[i].err = client.ListIndices(ctx, service)
			return nil
		})
	}
	// Errors are kept per slot, never returned through the group.
	_ = group.Wait()

	snapshot := &listingSnapshot{
		indices: make(map[string][]engine.IndexInfo, len(services)),
		errs:    make(map[string]error),
	}
	for i, serviceRules := range services {
		if slots[i].err != nil {
			snapshot.errs[serviceRules.Service] = slots[i].err
			continue
		}
		snapshot.indices[serviceRules.Service] = slots[i].indices
	}
	return snapshot
}

type indexDeleter interface {
	DeleteIndex(ctx context.Context, service, index string) error
}

// executePlans consumes the orchestrator's decisions: deletes the planned
// indices (or only logs them on dry-run) and assembles the run report.
func executePlans(ctx context.Context, deleter indexDeleter, result *engine.RunResult, cfg *loaders.Config) formatters.RunReport {
	report := formatters.RunReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Project:   cfg.AivenProject,
		DryRun:    cfg.DryRun,
	}

	for _, outcome := range result.Services {
		serviceReport := formatters.ServiceRunReport{Service: outcome.Service}
		if outcome.Failed() {
			log.Printf("Warning: %v", outcome.Err)
			serviceReport.ListFailed = true
			serviceReport.Message = fmt.Sprintf("Cleanup failed for %s service: could not list indices.", outcome.Service)
			report.Services = append(report.Services, serviceReport)
			continue
		}

		if verbose {
			for _, name := range outcome.Unparseable {
				log.Printf("Index %s matches a rule pattern but has no parseable date suffix, skipping.", name)
			}
		}

		sizes := make(map[string]int64, len(outcome.Indices))
		var fullSize int64
		for _, index := range outcome.Indices {
			sizes[index.Name] = index.SizeBytes
			fullSize += index.SizeBytes
		}

		var deletedBytes int64
		for _, name := range outcome.Plan {
			deleted := formatters.DeletedIndex{Name: name, SizeBytes: sizes[name]}
			if cfg.DryRun {
				fmt.Printf("Deleting index %s with size %d bytes (dry-run)\n", name, deleted.SizeBytes)
				deleted.Success = true
			} else {
				fmt.Printf("Deleting index %s with size %d bytes\n", name, deleted.SizeBytes)
				if err := deleter.DeleteIndex(ctx, outcome.Service, name); err != nil {
					log.Printf("Warning: %v", err)
					serviceReport.DeleteFailures++
				} else {
					deleted.Success = true
				}
			}
			if deleted.Success {
				deletedBytes += deleted.SizeBytes
			}
			serviceReport.Deletes = append(serviceReport.Deletes, deleted)
		}

		serviceReport.TotalDeletedBytes = deletedBytes
		serviceReport.TotalRemainingBytes = fullSize - deletedBytes
		serviceReport.Message = formatters.CompletionMessage(outcome.Service, deletedBytes, fullSize-deletedBytes)
		serviceReport.Summary = formatters.SummaryLines(outcome.Summary)
		report.Services = append(report.Services, serviceReport)
	}

	return report
}
