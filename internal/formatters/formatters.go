package formatters

import (
	"encoding/json"
	"fmt"

	"opensearch-cleanup/internal/engine"
)

// DeletedIndex records the outcome of one index deletion.
type DeletedIndex struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	Success   bool   `json:"success"`
}

// SummaryLine is one rendered entry of a service's pre-cleanup summary.
type SummaryLine struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

// ServiceRunReport summarizes the cleanup of one service.
type ServiceRunReport struct {
	Service             string         `json:"service"`
	ListFailed          bool           `json:"list_failed,omitempty"`
	Deletes             []DeletedIndex `json:"deletes"`
	DeleteFailures      int            `json:"delete_failures"`
	TotalDeletedBytes   int64          `json:"total_deleted_bytes"`
	TotalRemainingBytes int64          `json:"total_remaining_bytes"`
	Message             string         `json:"message"`
	Summary             []SummaryLine  `json:"summary,omitempty"`
}

// Failed reports whether anything went wrong for this service.
func (r ServiceRunReport) Failed() bool {
	return r.ListFailed || r.DeleteFailures > 0
}

// RunReport is the complete report of one cleanup run.
type RunReport struct {
	Timestamp string             `json:"timestamp"`
	Project   string             `json:"project"`
	DryRun    bool               `json:"dry_run"`
	Services  []ServiceRunReport `json:"services"`
}

// Failed reports whether any service failed during the run.
func (r RunReport) Failed() bool {
	for _, service := range r.Services {
		if service.Failed() {
			return true
		}
	}
	return false
}

// HumanSize renders a byte count with binary prefixes, truncating to whole
// units the way the notification always has.
func HumanSize(num int64) string {
	units := []string{"", "Ki", "Mi", "Gi", "Ti", "Pi", "Ei"}
	for _, unit := range units {
		if num < 1024 {
			return fmt.Sprintf("%d%sB", num, unit)
		}
		num /= 1024
	}
	return fmt.Sprintf("%dZiB", num)
}

// CompletionMessage is the per-service one-liner used on the console and in
// the notification.
func CompletionMessage(service string, deletedBytes, remainingBytes int64) string {
	return fmt.Sprintf("Cleanup finished for %s service: %s data has been deleted. (Remaining data size: %s)",
		service, HumanSize(deletedBytes), HumanSize(remainingBytes))
}

// SummaryLines renders an aggregated summary report into display entries,
// keeping the declaration order.
func SummaryLines(report engine.SummaryReport) []SummaryLine {
	lines := make([]SummaryLine, 0, len(report))
	for _, total := range report {
		lines = append(lines, SummaryLine{Name: total.Name, Size: HumanSize(total.TotalBytes)})
	}
	return lines
}

// Text prints the run report to the console.
func Text(report RunReport) {
	for _, service := range report.Services {
		if service.ListFailed {
			fmt.Printf("Cleanup skipped for %s service: index listing failed.\n", service.Service)
			continue
		}
		fmt.Println(service.Message)
		for _, line := range service.Summary {
			fmt.Printf("  %s: %s (pre-cleanup)\n", line.Name, line.Size)
		}
	}
	if report.DryRun {
		fmt.Println("Dry-run: no indices were deleted.")
	}
}

// JSON renders the run report for files and archival uploads.
func JSON(report RunReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
