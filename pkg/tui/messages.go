package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptdeck/promptdeck/pkg/translate"
)

// Messages for communication between views

// StatusMsg sets the status bar text.
type StatusMsg string

// clearStatusMsg blanks the status bar after its timeout.
type clearStatusMsg struct{}

// switchViewMsg changes the active view.
type switchViewMsg struct {
	view sessionState
}

// translationDoneMsg carries the result of a background translation.
// PageID identifies the page the translation was started for so that
// results arriving after a page switch can be discarded.
type translationDoneMsg struct {
	PageID int
	Text   string
	Err    error
}

// templateSyncMsg asks the app to re-check the shared tag file.
type templateSyncMsg struct{}

func translateCmd(t *translate.Translator, pageID int, text string) tea.Cmd {
	return func() tea.Msg {
		out, err := t.Translate(context.Background(), text)
		return translationDoneMsg{PageID: pageID, Text: out, Err: err}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func switchView(view sessionState) tea.Cmd {
	return func() tea.Msg {
		return switchViewMsg{view: view}
	}
}
