package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var createFile string

var createCmd = &cobra.Command{
	Use:   "create <parent-page-id> <title>",
	Short: "Create a new page under an existing page",
	Long: `Create a new page as a child of an existing page (not a database).
The page body is read as Markdown from --file, or from stdin when no file
is given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireWorkspace(); err != nil {
			return err
		}

		content, err := readContent(createFile)
		if err != nil {
			return err
		}

		id, err := Workspace.CreatePage(cmd.Context(), args[0], args[1], content)
		if err != nil {
			return fmt.Errorf("creating page: %w", err)
		}

		fmt.Printf("Page created with ID %s\n", id)
		return nil
	},
}

// readContent reads markdown content from the given file, or stdin when the
// path is empty.
func readContent(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading content from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading content file: %w", err)
	}
	return string(data), nil
}

func init() {
	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "markdown file with the page body (default stdin)")
	rootCmd.AddCommand(createCmd)
}
