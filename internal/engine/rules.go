package engine

// DefaultDatePattern is assumed when a rule does not name one.
const DefaultDatePattern = "%Y.%m.%d"

// ServiceRules is the rule set for one service from the YAML rules document.
type ServiceRules struct {
	Service        string        `yaml:"service"`
	Rules          []IndexRule   `yaml:"rules"`
	SummaryReports []SummarySpec `yaml:"summary_reports,omitempty"`
}

// IndexRule marks indices matching IndexPattern for deletion once the date
// suffix in their name is at least AgeThreshold days old.
type IndexRule struct {
	IndexPattern string `yaml:"index_pattern"`
	AgeThreshold int    `yaml:"age_threshold"`
	DatePattern  string `yaml:"date_pattern,omitempty"`
}

func (r IndexRule) datePattern() string {
	if r.DatePattern == "" {
		return DefaultDatePattern
	}
	return r.DatePattern
}

// SummarySpec names a pre-cleanup size total over indices matching Pattern.
// Summary patterns are matched independently of deletion rules.
type SummarySpec struct {
	Pattern string `yaml:"pattern"`
	Name    string `yaml:"name"`
}

// IndexInfo is the per-index snapshot supplied by the cluster client.
type IndexInfo struct {
	Name      string
	SizeBytes int64
}

// DeletionPlan lists the index names to delete for one service, in listing
// order, each at most once.
type DeletionPlan []string

// SummaryTotal is one aggregated size entry of a SummaryReport.
type SummaryTotal struct {
	Name       string
	TotalBytes int64
}

// SummaryReport holds the aggregated totals in spec declaration order.
type SummaryReport []SummaryTotal
