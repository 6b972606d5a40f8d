package engine

import (
	"strings"
	"time"
)

// Indices whose name starts with a dot are cluster-internal and never
// touched, whatever the rules say.
const protectedPrefix = "."

// IsProtected reports whether an index is exempt from deletion planning.
func IsProtected(name string) bool {
	return strings.HasPrefix(name, protectedPrefix)
}

// IsEligible decides whether a single index falls to a single rule as of
// today. The name must match the rule's pattern, its suffix must parse under
// the rule's date pattern, and the resulting age must have reached the
// threshold. The threshold is inclusive: an index exactly age_threshold days
// old is eligible. Future-dated suffixes are never eligible.
func IsEligible(index IndexInfo, rule IndexRule, today time.Time) bool {
	if !Matches(rule.IndexPattern, index.Name) {
		return false
	}
	suffix, ok := ExtractSuffixDate(index.Name, rule.datePattern())
	if !ok {
		return false
	}
	age := AgeDays(today, suffix)
	if age < 0 {
		return false
	}
	return age >= rule.AgeThreshold
}

// PlanDeletions evaluates every index of a service against every rule and
// returns the names to delete. An index is planned when any rule finds it
// eligible, appears at most once, and the plan follows the input listing
// order. The function is pure; nothing is deleted here.
func PlanDeletions(indices []IndexInfo, serviceRules ServiceRules, today time.Time) DeletionPlan {
	plan := DeletionPlan{}
	planned := make(map[string]bool)
	for _, index := range indices {
		if planned[index.Name] || IsProtected(index.Name) {
			continue
		}
		for _, rule := range serviceRules.Rules {
			if IsEligible(index, rule, today) {
				plan = append(plan, index.Name)
				planned[index.Name] = true
				break
			}
		}
	}
	return plan
}

// UnparseableMatches returns, in listing order, the names of indices that
// fall under some rule's pattern but carry no parseable date suffix for that
// rule. Such indices are skipped as "age unknown"; callers may want to log
// them.
func UnparseableMatches(indices []IndexInfo, rules []IndexRule) []string {
	var names []string
	seen := make(map[string]bool)
	for _, index := range indices {
		if seen[index.Name] || IsProtected(index.Name) {
			continue
		}
		for _, rule := range rules {
			if !Matches(rule.IndexPattern, index.Name) {
				continue
			}
			if _, ok := ExtractSuffixDate(index.Name, rule.datePattern()); !ok {
				names = append(names, index.Name)
				seen[index.Name] = true
				break
			}
		}
	}
	return names
}

// Aggregate sums pre-cleanup index sizes per summary spec. Every spec yields
// an entry, zero when nothing matches, in declaration order. Aggregation is
// independent of deletion eligibility and must run against the same listing
// the planner saw, before any delete call.
func Aggregate(indices []IndexInfo, specs []SummarySpec) SummaryReport {
	report := make(SummaryReport, 0, len(specs))
	for _, spec := range specs {
		var total int64
		for _, index := range indices {
			if Matches(spec.Pattern, index.Name) {
				total += index.SizeBytes
			}
		}
		report = append(report, SummaryTotal{Name: spec.Name, TotalBytes: total})
	}
	return report
}
