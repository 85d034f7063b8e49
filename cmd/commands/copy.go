package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/cli"
)

// NewCopyCommand creates the copy command
func NewCopyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "copy [page-id]",
		Short: "Copy a page's composed output to the clipboard",
		Args:  cobra.MaximumNArgs(1),
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
			// Rebuild from the persisted selections so the emptiness
			// check and the copied text agree.
			if page.RefreshOutput() == "" {
				return fmt.Errorf("page %d has no output to copy", page.ID)
			}

			if err := clipboard.WriteAll(page.ClipboardText()); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			cli.PrintSuccess("%s → clipboard", page.Name)
			return nil
		},
	}
}
