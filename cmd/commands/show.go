package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/cli"
	"github.com/promptdeck/promptdeck/pkg/models"
	"github.com/promptdeck/promptdeck/pkg/tags"
)

// ShowResult represents the output structure for the show command
type ShowResult struct {
	ID              int             `json:"page_id" yaml:"page_id"`
	Name            string          `json:"name" yaml:"name"`
	InputText       string          `json:"input_text" yaml:"input_text"`
	OutputText      string          `json:"output_text" yaml:"output_text"`
	LastTranslation string          `json:"last_translation" yaml:"last_translation"`
	HeadTags        []string        `json:"head_tags" yaml:"head_tags"`
	TailTags        []string        `json:"tail_tags" yaml:"tail_tags"`
	Stats           tags.Statistics `json:"statistics" yaml:"statistics"`
}

var showOutput string

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <page-id>",
		Short: "Show a page's input, output and selected tags",
		Args:  cobra.ExactArgs(1),
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

			tm := page.TagManager()
			head, tail := tm.RestoreUIState()
			result := ShowResult{
				ID:              page.ID,
				Name:            page.Name,
				InputText:       page.InputText,
				OutputText:      page.OutputText,
				LastTranslation: page.LastTranslation,
				HeadTags:        head,
				TailTags:        tail,
				Stats:           tm.Statistics(),
			}

			if showOutput != string(cli.FormatText) {
				return cli.OutputResults(os.Stdout, showOutput, result)
			}

			fmt.Printf("Page %d: %s\n\n", result.ID, result.Name)
			fmt.Printf("Input:\n  %s\n\n", orEmpty(result.InputText))
			fmt.Printf("Output:\n  %s\n\n", orEmpty(result.OutputText))
			fmt.Printf("Head tags: %s\n", orEmpty(strings.Join(result.HeadTags, ", ")))
			fmt.Printf("Tail tags: %s\n", orEmpty(strings.Join(result.TailTags, ", ")))
			fmt.Printf("Selected: %d of %d (%s %d, %s %d)\n",
				result.Stats.SelectedTags, result.Stats.TotalTags,
				models.TagTypeHead, result.Stats.HeadSelected,
				models.TagTypeTail, result.Stats.TailSelected)
			return nil
		},
	}

	cmd.Flags().StringVarP(&showOutput, "output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}

func orEmpty(s string) string {
	if s == "" {
		return "(empty)"
	}
	return s
}
