package loaders

import (
	"fmt"
	"os"

	"opensearch-cleanup/internal/engine"

	"gopkg.in/yaml.v3"
)

// LoadServiceRules reads the YAML rules document and validates it into the
// engine's data model. The document is a sequence of service entries, each
// with deletion rules and optional summary report specs.
func LoadServiceRules(path string) ([]engine.ServiceRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var services []engine.ServiceRules
	if err := yaml.Unmarshal(data, &services); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rules: %w", err)
	}

	for i, service := range services {
		if service.Service == "" {
			return nil, fmt.Errorf("services[%d]: service name is required", i)
		}
		for j, rule := range service.Rules {
			if rule.IndexPattern == "" {
				return nil, fmt.Errorf("services[%d] (%s): rules[%d]: index_pattern is required", i, service.Service, j)
			}
			if rule.AgeThreshold < 0 {
				return nil, fmt.Errorf("services[%d] (%s): rules[%d]: age_threshold must not be negative", i, service.Service, j)
			}
		}
		for j, spec := range service.SummaryReports {
			if spec.Pattern == "" || spec.Name == "" {
				return nil, fmt.Errorf("services[%d] (%s): summary_reports[%d]: pattern and name are required", i, service.Service, j)
			}
		}
	}

	return services, nil
}
