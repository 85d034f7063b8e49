package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/cli"
)

var deleteForce bool

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <page-id>",
		Short: "Delete a page",
		Long: `Delete a page by id. The last remaining page cannot be deleted.
Deleting the current page makes another page current.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParsePageID(args[0])
			if err != nil {
				return err
			}

			ctx := cli.NewCommandContext()
			page, err := ctx.RequirePage(id)
			if err != nil {
				return err
			}
			manager, err := ctx.Manager()
			if err != nil {
				return err
			}

			if manager.Len() == 1 {
				return fmt.Errorf("cannot delete the last page")
			}

			if !deleteForce {
				confirmed, err := cli.Confirm(
					fmt.Sprintf("Delete page %d (%s)?", page.ID, page.Name), false)
				if err != nil {
					return err
				}
				if !confirmed {
					cli.PrintInfo("Deletion cancelled")
					return nil
				}
			}

			if !manager.DeletePage(id) {
				return fmt.Errorf("page %d could not be deleted", id)
			}
			cli.PrintSuccess("Deleted page %d: %s", page.ID, page.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Delete without confirmation")
	return cmd
}
