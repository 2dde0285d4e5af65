package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "claudesync",
	Short: "Keep Claude Code and Claude Desktop in sync",
	Long: `claudesync reconciles skills, plugins and MCP servers between
Claude Code (~/.claude) and Claude Desktop.

Skills become Desktop extensions and extensions become skills. MCP servers
are copied between the two settings files. Every sync is preceded by a
backup that can be restored with 'claudesync rollback'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "claudesync %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	rootCmd.PersistentFlags().String("home", "", "Home directory to resolve all paths from")
	_ = rootCmd.PersistentFlags().MarkHidden("home")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (default warn)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json (default text)")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
