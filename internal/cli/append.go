package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appendFile  string
	appendAfter string
)

var appendCmd = &cobra.Command{
	Use:   "append <parent-id>",
	Short: "Append Markdown content to a page or block",
	Long: `Append Markdown content as blocks at the bottom of a page or block.
With --after, the blocks are inserted after the given block instead.
Content is read from --file, or from stdin when no file is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireWorkspace(); err != nil {
			return err
		}

		content, err := readContent(appendFile)
		if err != nil {
			return err
		}

		id, err := Workspace.InsertParagraph(cmd.Context(), args[0], content, appendAfter)
		if err != nil {
			return fmt.Errorf("appending content: %w", err)
		}

		fmt.Printf("Paragraph inserted with ID %s\n", id)
		return nil
	},
}

func init() {
	appendCmd.Flags().StringVarP(&appendFile, "file", "f", "", "markdown file with the content (default stdin)")
	appendCmd.Flags().StringVar(&appendAfter, "after", "", "insert after this block ID instead of at the bottom")
	rootCmd.AddCommand(appendCmd)
}
