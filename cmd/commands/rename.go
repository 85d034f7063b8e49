package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/cli"
)

// NewRenameCommand creates the rename command
func NewRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <page-id> <name>",
		Short: "Rename a page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParsePageID(args[0])
			if err != nil {
				return err
			}
			if err := cli.ValidatePageName(args[1]); err != nil {
				return err
			}

			ctx := cli.NewCommandContext()
			manager, err := ctx.Manager()
			if err != nil {
				return err
			}

			if !manager.RenamePage(id, args[1]) {
				return fmt.Errorf("page %d not found", id)
			}
			cli.PrintSuccess("Renamed page %d to %s", id, args[1])
			return nil
		},
	}
}
