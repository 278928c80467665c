package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	pageBlocks    bool
	pageMaxBlocks int
)

var pageCmd = &cobra.Command{
	Use:   "page <page-id>",
	Short: "Print a page's content",
	Long: `Retrieve a page and print its content rendered as Markdown-flavored
text. With --blocks, the raw block tree is printed as JSON instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireWorkspace(); err != nil {
			return err
		}

		maxBlocks := pageMaxBlocks
		if maxBlocks <= 0 {
			maxBlocks = DefaultMaxBlocks
		}

		if pageBlocks {
			blocks, err := Workspace.PageBlocks(cmd.Context(), args[0], maxBlocks)
			if err != nil {
				return fmt.Errorf("getting page blocks: %w", err)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(blocks)
		}

		text, err := Workspace.PageText(cmd.Context(), args[0], maxBlocks)
		if err != nil {
			return fmt.Errorf("getting page text: %w", err)
		}

		fmt.Println(text)
		return nil
	},
}

func init() {
	pageCmd.Flags().BoolVar(&pageBlocks, "blocks", false, "print the raw block tree as JSON")
	pageCmd.Flags().IntVar(&pageMaxBlocks, "max-blocks", 0, "maximum number of top-level blocks (default from config)")
	rootCmd.AddCommand(pageCmd)
}
