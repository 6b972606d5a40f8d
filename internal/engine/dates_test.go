package engine

import (
	"testing"
	"time"
)

func TestExtractSuffixDate(t *testing.T) {
	tests := []struct {
		name        string
		indexName   string
		datePattern string
		wantDate    string // "2006-01-02", empty when parsing should fail
	}{
		{
			name:        "default pattern",
			indexName:   "app-logs-2024.01.05",
			datePattern: "%Y.%m.%d",
			wantDate:    "2024-01-05",
		},
		{
			name:        "dash separated pattern",
			indexName:   "audit-2023-12-31",
			datePattern: "%Y-%m-%d",
			wantDate:    "2023-12-31",
		},
		{
			name:        "bare date with no prefix",
			indexName:   "2024.02.29",
			datePattern: "%Y.%m.%d",
			wantDate:    "2024-02-29",
		},
		{
			name:        "two digit year",
			indexName:   "metrics-24.03.01",
			datePattern: "%y.%m.%d",
			wantDate:    "2024-03-01",
		},
		{
			name:        "month out of range",
			indexName:   "app-logs-2024.13.01",
			datePattern: "%Y.%m.%d",
		},
		{
			name:        "day out of range for month",
			indexName:   "app-logs-2023.02.30",
			datePattern: "%Y.%m.%d",
		},
		{
			name:        "wrong separator",
			indexName:   "app-logs-2024-01-05",
			datePattern: "%Y.%m.%d",
		},
		{
			name:        "no date suffix at all",
			indexName:   "kibana-settings",
			datePattern: "%Y.%m.%d",
		},
		{
			name:        "name shorter than pattern width",
			indexName:   "short",
			datePattern: "%Y.%m.%d",
		},
		{
			name:        "junk bleeding into the suffix window",
			indexName:   "app-logs-x4.01.05",
			datePattern: "%Y.%m.%d",
		},
		{
			name:        "unsupported directive fails the pattern",
			indexName:   "app-logs-2024.01.05",
			datePattern: "%Y.%m.%e",
		},
		{
			name:        "empty pattern never parses",
			indexName:   "app-logs-2024.01.05",
			datePattern: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractSuffixDate(tt.indexName, tt.datePattern)
			if tt.wantDate == "" {
				if ok {
					t.Errorf("expected parse failure, got %v", got)
				}
				return
			}
			if !ok {
				t.Fatalf("expected successful parse, got failure")
			}
			want, err := time.Parse("2006-01-02", tt.wantDate)
			if err != nil {
				t.Fatalf("bad test fixture date %q: %v", tt.wantDate, err)
			}
			if !got.Equal(want) {
				t.Errorf("suffix date = %v, want %v", got, want)
			}
		})
	}
}

func TestExtractSuffixDateRoundTrip(t *testing.T) {
	dates := []time.Time{
		time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2031, 7, 9, 0, 0, 0, 0, time.UTC),
	}
	for _, date := range dates {
		name := "app-logs-" + date.Format("2006.01.02")
		got, ok := ExtractSuffixDate(name, "%Y.%m.%d")
		if !ok {
			t.Errorf("round trip failed to parse %q", name)
			continue
		}
		if !got.Equal(date) {
			t.Errorf("round trip for %q = %v, want %v", name, got, date)
		}
	}
}

func TestAgeDays(t *testing.T) {
	tests := []struct {
		name   string
		today  time.Time
		suffix time.Time
		want   int
	}{
		{
			name:   "four days apart",
			today:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			suffix: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			want:   4,
		},
		{
			name:   "same day",
			today:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			suffix: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			want:   0,
		},
		{
			name:   "future suffix is negative",
			today:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			suffix: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
			want:   -2,
		},
		{
			name:   "time of day is ignored",
			today:  time.Date(2024, 1, 5, 23, 59, 59, 0, time.UTC),
			suffix: time.Date(2024, 1, 4, 0, 0, 1, 0, time.UTC),
			want:   1,
		},
		{
			name:   "across a month boundary",
			today:  time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
			suffix: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
			want:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeDays(tt.today, tt.suffix); got != tt.want {
				t.Errorf("AgeDays() = %d, want %d", got, tt.want)
			}
		})
	}
}
