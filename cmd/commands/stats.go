package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/cli"
)

var statsOutput string

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [page-id]",
		Short: "Show tag statistics for a page",
		Long: `Show tag counts for a page, grouped by category. Without an id
the current page is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext()
			manager, err := ctx.Manager()
			if err != nil {
				return err
			}

			page := manager.CurrentPage()
			if len(args) > 0 {
				id, err := cli.ParsePageID(args[0])
				if err != nil {
					return err
				}
				page, err = ctx.RequirePage(id)
				if err != nil {
					return err
				}
			}
			if page == nil {
				return fmt.Errorf("no pages exist yet")
			}

			stats := page.TagManager().Statistics()
			if statsOutput != string(cli.FormatText) {
				return cli.OutputResults(os.Stdout, statsOutput, stats)
			}

			fmt.Printf("Page %d: %s\n\n", page.ID, page.Name)
			fmt.Printf("Total tags:    %d\n", stats.TotalTags)
			fmt.Printf("Selected:      %d\n", stats.SelectedTags)
			fmt.Printf("Head:          %d (%d selected)\n", stats.HeadTags, stats.HeadSelected)
			fmt.Printf("Tail:          %d (%d selected)\n", stats.TailTags, stats.TailSelected)

			if len(stats.Categories) > 0 {
				fmt.Println("\nCategories:")
				names := make([]string, 0, len(stats.Categories))
				for name := range stats.Categories {
					names = append(names, name)
				}
				sort.Strings(names)

				table := cli.NewTableFormatter(os.Stdout)
				table.Header("CATEGORY", "TAGS")
				for _, name := range names {
					table.Row(name, fmt.Sprintf("%d", stats.Categories[name]))
				}
				table.Flush()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&statsOutput, "output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}
