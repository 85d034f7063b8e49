package models

// Settings represents the application configuration
type Settings struct {
	Output      OutputSettings      `yaml:"output"`
	Translation TranslationSettings `yaml:"translation"`
	UI          UISettings          `yaml:"ui"`
}

// OutputSettings controls how the final prompt is assembled
type OutputSettings struct {
	Separator   string `yaml:"separator"`
	HistorySize int    `yaml:"history_size"`
}

// TranslationSettings controls the translation provider
type TranslationSettings struct {
	Model           string `yaml:"model"`
	TargetLang      string `yaml:"target_lang"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowChips     bool `yaml:"show_chips"`
	StatusTimeout int  `yaml:"status_timeout"` // seconds before a status message clears
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Output: OutputSettings{
			Separator:   ", ",
			HistorySize: 500,
		},
		Translation: TranslationSettings{
			Model:           "gpt-4o-mini",
			TargetLang:      "en",
			TimeoutSeconds:  30,
			CacheTTLSeconds: 3600,
		},
		UI: UISettings{
			ShowChips:     true,
			StatusTimeout: 3,
		},
	}
}
