package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search Notion pages by title",
	Long: `Search pages shared with the integration by title, sorted by last
edited time descending. With no query, all accessible pages are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireWorkspace(); err != nil {
			return err
		}

		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		limit := searchLimit
		if limit <= 0 {
			limit = DefaultSearchLimit
		}

		pages, err := Workspace.SearchPages(cmd.Context(), query, limit)
		if err != nil {
			return fmt.Errorf("searching pages: %w", err)
		}

		if searchJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(pages)
		}

		if len(pages) == 0 {
			fmt.Println("No pages found. Check that pages are shared with the integration.")
			return nil
		}

		fmt.Printf("%-38s %-22s %s\n", "ID", "MODIFIED", "TITLE")
		for _, p := range pages {
			fmt.Printf("%-38s %-22s %s\n", p.ID, p.ModifiedAt, p.Title)
		}

		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print results as JSON")
	rootCmd.AddCommand(searchCmd)
}
