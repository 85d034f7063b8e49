package commands

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/cli"
	"github.com/promptdeck/promptdeck/pkg/models"
)

var (
	exportToFile string
	exportType   string
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the shared tag library to CSV",
		Long: `Export every tag in the shared library as CSV rows of
section, category, key and english text.

Examples:
  # Export to stdout
  promptdeck export

  # Export to a file
  promptdeck export --file tags_export.csv

  # Export only tail tags
  promptdeck export --type tail`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext()
			if err := ctx.ValidateProject(); err != nil {
				return err
			}

			sections := models.TagTypes
			if exportType != "" {
				if err := cli.ValidateTagType(exportType); err != nil {
					return err
				}
				sections = []string{cli.NormalizeTagType(exportType)}
			}

			col, err := ctx.Store().Load()
			if err != nil {
				return err
			}

			out := os.Stdout
			if exportToFile != "" {
				f, err := os.Create(exportToFile)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", exportToFile, err)
				}
				defer f.Close()
				out = f
			}

			w := csv.NewWriter(out)
			if err := w.Write([]string{"section", "category", "key", "value"}); err != nil {
				return err
			}
			for _, tagType := range sections {
				for _, category := range col.CategoryNames(tagType) {
					for _, name := range col.TagNames(tagType, category) {
						attrs := col[tagType][category][name]
						if err := w.Write([]string{tagType, category, name, attrs.En}); err != nil {
							return err
						}
					}
				}
			}
			w.Flush()
			if err := w.Error(); err != nil {
				return err
			}

			if exportToFile != "" {
				cli.PrintSuccess("Exported tags to %s", exportToFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&exportToFile, "file", "f", "", "Write CSV to a file instead of stdout")
	cmd.Flags().StringVarP(&exportType, "type", "t", "", "Limit export to one section (head or tail)")
	return cmd
}
