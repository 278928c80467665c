package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	notionmcp "github.com/ravenhall-io/notionctl/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the notionctl MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the notionctl MCP server on stdio",
	Long: `Start the notionctl MCP server on stdio transport.

The server exposes the Notion page operations as MCP tools that AI
assistants can call: search_pages, get_page_blocks, get_page_text,
create_page, insert_paragraph.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireWorkspace(); err != nil {
			return err
		}

		srv := notionmcp.NewServer(Workspace, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
