package engine

import (
	"context"
	"fmt"
	"time"
)

// ClusterClient is the listing side of the cluster API as seen by the
// orchestrator. Deletion is performed by the caller from the returned plan.
type ClusterClient interface {
	ListIndices(ctx context.Context, service string) ([]IndexInfo, error)
}

// ServiceOutcome is the decision result for one service.
type ServiceOutcome struct {
	Service string
	// Indices is the pre-cleanup listing snapshot the plan and summary were
	// computed from.
	Indices []IndexInfo
	Plan    DeletionPlan
	Summary SummaryReport
	// Unparseable lists indices matched by a rule pattern whose suffix could
	// not be parsed ("age unknown").
	Unparseable []string
	// Err is set when the listing failed; the service was skipped.
	Err error
}

// Failed reports whether the service's listing failed.
func (o ServiceOutcome) Failed() bool {
	return o.Err != nil
}

// RunResult collects the outcomes of one cleanup run, in rules-document
// order.
type RunResult struct {
	Services []ServiceOutcome
}

// Failures counts services whose index listing failed.
func (r *RunResult) Failures() int {
	failed := 0
	for _, outcome := range r.Services {
		if outcome.Failed() {
			failed++
		}
	}
	return failed
}

// Orchestrator composes planning and aggregation across all configured
// services. It only reads listings and returns plain data; deletes and
// notifications are the caller's business.
type Orchestrator struct {
	client ClusterClient
}

func NewOrchestrator(client ClusterClient) *Orchestrator {
	return &Orchestrator{client: client}
}

// Run produces a deletion plan and summary report for every service. A
// listing failure marks that service failed and moves on; it never blocks the
// other services.
func (o *Orchestrator) Run(ctx context.Context, services []ServiceRules, today time.Time) *RunResult {
	result := &RunResult{Services: make([]ServiceOutcome, 0, len(services))}
	for _, serviceRules := range services {
		outcome := ServiceOutcome{Service: serviceRules.Service}
		indices, err := o.client.ListIndices(ctx, serviceRules.Service)
		if err != nil {
			outcome.Err = fmt.Errorf("listing indices for service %s: %w", serviceRules.Service, err)
		} else {
			outcome.Indices = indices
			outcome.Plan = PlanDeletions(indices, serviceRules, today)
			outcome.Summary = Aggregate(indices, serviceRules.SummaryReports)
			outcome.Unparseable = UnparseableMatches(indices, serviceRules.Rules)
		}
		result.Services = append(result.Services, outcome)
	}
	return result
}
