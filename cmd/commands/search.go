package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/cli"
	"github.com/promptdeck/promptdeck/pkg/search"
)

var searchOutput string

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the shared tag library",
		Long: `Search tags by name and english text. Field prefixes narrow the
search: type:head, type:tail, category:<name>, selected:true.

Examples:
  # Free text search
  promptdeck search sunset

  # Only tail tags in a category
  promptdeck search "type:tail category:negative"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext()
			if err := ctx.ValidateProject(); err != nil {
				return err
			}

			col, err := ctx.Store().Load()
			if err != nil {
				return err
			}

			query := search.ParseQuery(strings.Join(args, " "))
			matches := search.Filter(col, query)

			if searchOutput != string(cli.FormatText) {
				return cli.OutputResults(os.Stdout, searchOutput, matches)
			}

			if len(matches) == 0 {
				fmt.Println("No tags found.")
				return nil
			}
			table := cli.NewTableFormatter(os.Stdout)
			table.Header("TYPE", "CATEGORY", "NAME", "ENGLISH")
			for _, match := range matches {
				table.Row(match.TagType, match.Category, match.Name,
					cli.TruncateString(match.Attrs.En, 50))
			}
			table.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&searchOutput, "output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}
