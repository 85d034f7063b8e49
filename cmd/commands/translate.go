package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/cli"
	"github.com/promptdeck/promptdeck/pkg/files"
	"github.com/promptdeck/promptdeck/pkg/translate"
)

var translatePageID int

// NewTranslateCommand creates the translate command
func NewTranslateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text and compose the prompt output",
		Long: `Translate the given text (or a page's saved input) and compose the
full prompt with the page's selected tags.

Requires OPENAI_API_KEY in the environment or a .env file.

Examples:
  # Translate ad-hoc text against the current page's tags
  promptdeck translate "一只在墙上的猫"

  # Re-translate page 2's saved input
  promptdeck translate --page 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext()
			manager, err := ctx.Manager()
			if err != nil {
				return err
			}
			settings, err := ctx.LoadSettings()
			if err != nil {
				return err
			}

			cfg := translate.LoadConfig()
			if !cfg.Enabled() {
				return fmt.Errorf("no translation provider configured (set OPENAI_API_KEY)")
			}

			page := manager.CurrentPage()
			if translatePageID > 0 {
				page, err = ctx.RequirePage(translatePageID)
				if err != nil {
					return err
				}
			}
			if page == nil {
				return fmt.Errorf("no pages exist yet")
			}

			text := page.InputText
			if len(args) > 0 {
				text = args[0]
				page.InputText = text
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("nothing to translate")
			}

			model := settings.Translation.Model
			if model == "" {
				model = cfg.Model
			}
			provider := translate.NewOpenAIProvider(translate.OpenAIConfig{
				APIKey:  cfg.APIKey,
				Model:   model,
				BaseURL: cfg.BaseURL,
			})
			translator := translate.New(provider,
				translate.WithModel(model),
				translate.WithTargetLang(settings.Translation.TargetLang),
				translate.WithTimeout(time.Duration(settings.Translation.TimeoutSeconds)*time.Second),
				translate.WithCache(translate.NewMemoryCache(settings.Translation.CacheTTLSeconds)),
			)

			result, err := translator.Translate(context.Background(), text)
			if err != nil {
				return fmt.Errorf("translation failed: %w", err)
			}

			page.LastTranslation = result
			output := page.RefreshOutput()
			if err := manager.Save(); err != nil {
				cli.PrintWarning("%v", err)
			}

			if err := files.AppendHistory(files.HistoryPath(), text, output, settings.Output.HistorySize); err != nil {
				cli.PrintWarning("History not saved: %v", err)
			}

			fmt.Println(output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&translatePageID, "page", "p", 0, "Page id to translate (default: current page)")
	return cmd
}
