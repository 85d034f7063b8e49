package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/cmd/commands"
	"github.com/promptdeck/promptdeck/internal/cli"
	"github.com/promptdeck/promptdeck/pkg/examples"
	"github.com/promptdeck/promptdeck/pkg/files"
	"github.com/promptdeck/promptdeck/pkg/pages"
	"github.com/promptdeck/promptdeck/pkg/tags"
	"github.com/promptdeck/promptdeck/pkg/translate"
	"github.com/promptdeck/promptdeck/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

// Global flags
var (
	flagQuiet       bool
	flagNoColor     bool
	flagSkipConfirm bool
)

var rootCmd = &cobra.Command{
	Use:   "promptdeck",
	Short: "Terminal-based tool for building image generation prompts",
	Long: `Promptdeck is a terminal-based tool for building image generation
prompts. Each page combines a translated description with reusable head
and tail tags, and everything is stored as plain JSON files.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !files.ProjectExists() {
			fmt.Fprintf(os.Stderr, "Error: No %s directory found in the current directory.\n", files.DeckDir)
			fmt.Fprintf(os.Stderr, "Please run 'promptdeck init' first to initialize a new project.\n")
			os.Exit(1)
		}

		settings, err := files.ReadSettings()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to read settings: %v\n", err)
			os.Exit(1)
		}

		store := tags.NewStore(files.TagsPath())
		manager := pages.NewManager(files.PagesPath(), store)

		var translator *translate.Translator
		cfg := translate.LoadConfig()
		if cfg.Enabled() {
			model := settings.Translation.Model
			if model == "" {
				model = cfg.Model
			}
			provider := translate.NewOpenAIProvider(translate.OpenAIConfig{
				APIKey:  cfg.APIKey,
				Model:   model,
				BaseURL: cfg.BaseURL,
			})
			translator = translate.New(provider,
				translate.WithModel(model),
				translate.WithTargetLang(settings.Translation.TargetLang),
				translate.WithTimeout(time.Duration(settings.Translation.TimeoutSeconds)*time.Second),
				translate.WithCache(translate.NewMemoryCache(settings.Translation.CacheTTLSeconds)),
			)
		}

		app := tui.NewApp(manager, translator, settings)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to start the terminal user interface: %v\n", err)
			os.Exit(1)
		}
	},
}

var initWithExamples bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new Promptdeck project",
	Long:  `Creates the .promptdeck folder structure in the current directory`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to determine current directory: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Initializing Promptdeck project in %s...\n", cwd)

		if err := files.InitProjectStructure(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to initialize project structure: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Created %s folder structure\n", files.DeckDir)

		if initWithExamples {
			store := tags.NewStore(files.TagsPath())
			installed, err := examples.Install(store, false)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: Failed to install starter tags: %v\n", err)
				os.Exit(1)
			}
			if installed {
				fmt.Println("✓ Installed starter tag library")
			} else {
				fmt.Println("Tag library already has content, starter tags skipped")
			}
		}

		fmt.Println("\nRun 'promptdeck' to start the interactive TUI.")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Promptdeck",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Promptdeck version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagSkipConfirm, "yes", "y", false, "Skip confirmation prompts")

	initCmd.Flags().BoolVar(&initWithExamples, "examples", false, "Seed the tag library with starter tags")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewCreateCommand())
	rootCmd.AddCommand(commands.NewDeleteCommand())
	rootCmd.AddCommand(commands.NewRenameCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewTranslateCommand())
	rootCmd.AddCommand(commands.NewHistoryCommand())
	rootCmd.AddCommand(commands.NewCopyCommand())
	rootCmd.AddCommand(commands.NewSearchCommand())
}

func main() {
	_ = godotenv.Load()

	cobra.OnInitialize(func() {
		cli.SetGlobalFlags(flagQuiet, flagNoColor, flagSkipConfirm)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
