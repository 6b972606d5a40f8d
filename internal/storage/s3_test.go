package storage

import (
	"strings"
	"testing"
)

func TestNewS3Client(t *testing.T) {
	tests := []struct {
		name        string
		bucket      string
		prefix      string
		region      string
		expectError bool
	}{
		{
			name:        "valid configuration",
			bucket:      "test-bucket",
			prefix:      "cleanup",
			region:      "eu-west-1",
			expectError: false,
		},
		{
			name:        "empty bucket",
			bucket:      "",
			prefix:      "cleanup",
			region:      "eu-west-1",
			expectError: true,
		},
		{
			name:        "empty prefix is valid",
			bucket:      "test-bucket",
			prefix:      "",
			region:      "eu-west-1",
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewS3Client(tt.bucket, tt.prefix, tt.region)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.GetBucket() != tt.bucket {
				t.Errorf("bucket = %v, want %v", client.GetBucket(), tt.bucket)
			}
			if client.GetPrefix() != tt.prefix {
				t.Errorf("prefix = %v, want %v", client.GetPrefix(), tt.prefix)
			}
		})
	}
}

func TestBuildKey(t *testing.T) {
	withPrefix := &S3Client{bucket: "b", prefix: "cleanup"}
	if got := withPrefix.buildKey("runs/x/report.json"); got != "cleanup/runs/x/report.json" {
		t.Errorf("buildKey with prefix = %q", got)
	}

	noPrefix := &S3Client{bucket: "b"}
	if got := noPrefix.buildKey("runs/x/report.json"); got != "runs/x/report.json" {
		t.Errorf("buildKey without prefix = %q", got)
	}
}

func TestNewRunID(t *testing.T) {
	first := NewRunID()
	second := NewRunID()

	if first == second {
		t.Errorf("run IDs should be unique, got %q twice", first)
	}
	parts := strings.Split(first, "_")
	if len(parts) != 3 {
		t.Fatalf("run ID %q should have date, time and random parts", first)
	}
	if len(parts[0]) != 8 || len(parts[1]) != 6 {
		t.Errorf("run ID %q timestamp has unexpected shape", first)
	}
	if len(parts[2]) != 8 {
		t.Errorf("run ID %q random suffix has unexpected length", first)
	}
}
