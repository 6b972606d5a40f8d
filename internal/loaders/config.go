package loaders

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the process configuration from environment variables (optionally
// seeded from a .env file by the entrypoint). It is built once at startup and
// passed down explicitly; nothing below main reads the environment.
type Config struct {
	RulesFile     string
	DryRun        bool
	AivenAPIToken string
	AivenAPIURL   string
	AivenProject  string

	WebhookURL string
	TitleLink  string

	S3Bucket  string
	S3Prefix  string
	AWSRegion string

	Schedule string
	LogFile  string
}

// LoadConfig reads the environment surface. Only shape defaults are applied
// here; required values are checked in Validate so commands can overlay their
// flags first.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("aiven_api_url", "https://api.aiven.io")
	v.SetDefault("aws_region", "eu-west-1")
	v.SetDefault("cleanup_schedule", "0 4 * * *")

	cfg := &Config{
		RulesFile:     v.GetString("rules_file"),
		DryRun:        v.GetBool("cleanup_dry_run"),
		AivenAPIToken: v.GetString("aiven_api_token"),
		AivenAPIURL:   v.GetString("aiven_api_url"),
		AivenProject:  v.GetString("aiven_project"),
		WebhookURL:    v.GetString("notification_webhook_url"),
		TitleLink:     v.GetString("notification_title_link"),
		S3Bucket:      v.GetString("s3_bucket"),
		S3Prefix:      v.GetString("s3_prefix"),
		AWSRegion:     v.GetString("aws_region"),
		Schedule:      v.GetString("cleanup_schedule"),
		LogFile:       v.GetString("cleanup_log_file"),
	}
	return cfg, nil
}

// Validate checks the values a cleanup run cannot do without.
func (c *Config) Validate() error {
	if c.RulesFile == "" {
		return fmt.Errorf("no rules file configured: set RULES_FILE or pass --rules")
	}
	if c.AivenAPIToken == "" {
		return fmt.Errorf("missing required environment variable AIVEN_API_TOKEN")
	}
	if c.AivenProject == "" {
		return fmt.Errorf("missing required environment variable AIVEN_PROJECT")
	}
	return nil
}
