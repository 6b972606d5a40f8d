package engine

import "testing"

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		value   string
		want    bool
	}{
		{
			name:    "wildcard on both sides",
			pattern: "*-myindex-*",
			value:   "prod-myindex-2024.01.01",
			want:    true,
		},
		{
			name:    "non-matching literal segment",
			pattern: "*-myindex-*",
			value:   "prod-other-2024.01.01",
			want:    false,
		},
		{
			name:    "wildcard matches zero characters",
			pattern: "*logs-*",
			value:   "logs-2024.01.01",
			want:    true,
		},
		{
			name:    "trailing wildcard",
			pattern: "app-logs-*",
			value:   "app-logs-2024.05.05",
			want:    true,
		},
		{
			name:    "full string match required",
			pattern: "app-logs",
			value:   "app-logs-2024.05.05",
			want:    false,
		},
		{
			name:    "case sensitive",
			pattern: "App-*",
			value:   "app-logs",
			want:    false,
		},
		{
			name:    "empty pattern matches empty name",
			pattern: "",
			value:   "",
			want:    true,
		},
		{
			name:    "empty pattern rejects non-empty name",
			pattern: "",
			value:   "x",
			want:    false,
		},
		{
			name:    "lone wildcard matches anything",
			pattern: "*",
			value:   "anything-at-all",
			want:    true,
		},
		{
			name:    "regex metacharacters are literal",
			pattern: "app.logs-*",
			value:   "appXlogs-2024.01.01",
			want:    false,
		},
		{
			name:    "question mark is literal not a wildcard",
			pattern: "app?logs",
			value:   "appXlogs",
			want:    false,
		},
		{
			name:    "consecutive wildcards",
			pattern: "**-logs-**",
			value:   "a-logs-b",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.pattern, tt.value); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.pattern, tt.value, got, tt.want)
			}
		})
	}
}
