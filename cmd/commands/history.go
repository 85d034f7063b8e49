package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/cli"
	"github.com/promptdeck/promptdeck/pkg/files"
)

var (
	historyOutput string
	historyLimit  int
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent translations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext()
			if err := ctx.ValidateProject(); err != nil {
				return err
			}

			entries, err := files.ReadHistory(files.HistoryPath())
			if err != nil {
				return err
			}
			if historyLimit > 0 && len(entries) > historyLimit {
				entries = entries[:historyLimit]
			}

			if historyOutput != string(cli.FormatText) {
				return cli.OutputResults(os.Stdout, historyOutput, entries)
			}

			if len(entries) == 0 {
				fmt.Println("No history yet.")
				return nil
			}
			for _, e := range entries {
				stamp := time.Unix(e.Timestamp, 0).Format("2006-01-02 15:04:05")
				fmt.Printf("[%s]\n  in:  %s\n  out: %s\n", stamp,
					cli.TruncateString(e.Input, 100),
					cli.TruncateString(e.Output, 100))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&historyOutput, "output", "o", "text", "Output format (text, json, yaml)")
	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to show")
	return cmd
}
