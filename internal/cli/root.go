// Package cli implements the notionctl command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "notionctl",
	Short: "notionctl - Notion workspace tools for the terminal and MCP",
	Long: `notionctl is a set of tools for working with Notion pages through an
Internal Integration: search pages by title, read page content as text,
create pages from Markdown, and append content to existing pages.

The same operations are exposed as MCP tools for AI assistants via
'notionctl mcp serve'. Authentication uses the NOTION_INTEGRATION_SECRET
environment variable; pages must be shared with the integration through
Notion's Connections menu before they are visible.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("notionctl %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
