package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/cli"
)

// NewCreateCommand creates the create command
func NewCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new page",
		Long: `Create a new page seeded from the shared tag template. The new
page becomes the current page. Omitting the name picks a default one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = strings.TrimSpace(args[0])
			}

			ctx := cli.NewCommandContext()
			manager, err := ctx.Manager()
			if err != nil {
				return err
			}

			page := manager.CreatePage(name)
			cli.PrintSuccess("Created page %d: %s", page.ID, page.Name)
			return nil
		},
	}
}
