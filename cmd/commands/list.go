package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/cli"
)

// ListResult represents the output structure for the list command
type ListResult struct {
	Pages []ListItem `json:"pages" yaml:"pages"`
	Count int        `json:"count" yaml:"count"`
}

// ListItem represents a single page in the list
type ListItem struct {
	ID       int    `json:"page_id" yaml:"page_id"`
	Name     string `json:"name" yaml:"name"`
	Created  string `json:"created_time,omitempty" yaml:"created_time,omitempty"`
	Selected int    `json:"selected_tags" yaml:"selected_tags"`
	Current  bool   `json:"current" yaml:"current"`
}

var listOutput string

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all pages",
		Long: `List every page in the current project with its id, name and
selection count.

Examples:
  # List pages
  promptdeck list

  # List pages as JSON
  promptdeck list -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext()
			manager, err := ctx.Manager()
			if err != nil {
				return err
			}

			result := ListResult{}
			current := manager.CurrentID()
			for _, page := range manager.Pages() {
				stats := page.TagManager().Statistics()
				result.Pages = append(result.Pages, ListItem{
					ID:       page.ID,
					Name:     page.Name,
					Created:  page.CreatedTime,
					Selected: stats.SelectedTags,
					Current:  page.ID == current,
				})
			}
			result.Count = len(result.Pages)

			if listOutput != string(cli.FormatText) {
				return cli.OutputResults(os.Stdout, listOutput, result)
			}

			table := cli.NewTableFormatter(os.Stdout)
			table.Header("ID", "NAME", "SELECTED", "CREATED", "")
			for _, item := range result.Pages {
				marker := ""
				if item.Current {
					marker = "*"
				}
				table.Row(
					fmt.Sprintf("%d", item.ID),
					cli.TruncateString(item.Name, 30),
					fmt.Sprintf("%d", item.Selected),
					item.Created,
					marker,
				)
			}
			table.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&listOutput, "output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}
