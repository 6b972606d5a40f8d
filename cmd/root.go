package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "opensearch-cleanup",
	Short: "Delete stale Opensearch indices by declarative retention rules",
	Long: `Opensearch index cleanup - deletes stale indices from Aiven-hosted
Opensearch services, driven by a YAML rules file.

For each configured service, live index names are matched against glob
patterns, a trailing date suffix is parsed, and indices older than the rule's
age threshold are deleted. Pre-cleanup sizes are aggregated per summary
pattern and an optional webhook notification reports the run.

Commands:
  run         - Execute one cleanup run (use --dry-run to only plan)
  schedule    - Run the cleanup on a cron schedule in the foreground
  completion  - Generate shell completion scripts

Configuration comes from environment variables (a .env file is honored):
RULES_FILE, AIVEN_API_TOKEN, AIVEN_PROJECT, CLEANUP_DRY_RUN,
NOTIFICATION_WEBHOOK_URL, NOTIFICATION_TITLE_LINK.`,
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for opensearch-cleanup.

To load completions:

Bash:
  $ source <(opensearch-cleanup completion bash)

  # To load completions for each session, execute once:
  $ opensearch-cleanup completion bash > /etc/bash_completion.d/opensearch-cleanup

Zsh:
  $ opensearch-cleanup completion zsh > "${fpath[1]}/_opensearch-cleanup"

Fish:
  $ opensearch-cleanup completion fish > ~/.config/fish/completions/opensearch-cleanup.fish

PowerShell:
  PS> opensearch-cleanup completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		switch args[0] {
		case "bash":
			err = cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			err = cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			err = cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			err = cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating completion: %v\n", err)
			os.Exit(1)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(completionCmd)
}
