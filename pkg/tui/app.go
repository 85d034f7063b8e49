package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promptdeck/promptdeck/pkg/models"
	"github.com/promptdeck/promptdeck/pkg/pages"
	"github.com/promptdeck/promptdeck/pkg/translate"
)

type sessionState int

const (
	pageEditView sessionState = iota
	tagBrowserView
)

// templateSyncInterval is how often the shared tag file is checked for
// edits made by other processes.
const templateSyncInterval = 5 * time.Second

// App is the root model. It routes messages to the active view and owns
// the status bar.
type App struct {
	state      sessionState
	pageView   *PageViewModel
	tagBrowser *TagBrowserModel
	manager    *pages.Manager
	settings   *models.Settings
	width      int
	height     int
	statusMsg  string
}

// NewApp wires the views over a page manager. Selections are cleared
// here: an interactive session always starts with nothing selected. The
// translator may be nil when no provider is configured; translation then
// reports an error status instead of calling out.
func NewApp(manager *pages.Manager, translator *translate.Translator, settings *models.Settings) *App {
	manager.EnsureDefaultPage()
	manager.StartSession()
	return &App{
		state:      pageEditView,
		pageView:   NewPageView(manager, translator, settings),
		tagBrowser: NewTagBrowser(manager, settings),
		manager:    manager,
		settings:   settings,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.pageView.Init(), templateSyncTick())
}

func templateSyncTick() tea.Cmd {
	return tea.Tick(templateSyncInterval, func(time.Time) tea.Msg {
		return templateSyncMsg{}
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.pageView.SetSize(msg.Width, msg.Height)
		a.tagBrowser.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			// Quitting anyway, so the status bar can't show this one.
			if err := a.manager.Save(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
			return a, tea.Quit
		}

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case clearStatusMsg:
		a.statusMsg = ""
		return a, nil

	case templateSyncMsg:
		if a.manager.SyncTemplateChanges() {
			a.tagBrowser.reload()
		}
		return a, templateSyncTick()

	case translationDoneMsg:
		// Always lands on the page view, whichever view is active.
		return a, a.pageView.handleTranslationDone(msg)

	case switchViewMsg:
		a.state = msg.view
		if msg.view == tagBrowserView {
			a.tagBrowser.reload()
			return a, a.tagBrowser.Init()
		}
		return a, a.pageView.Init()
	}

	var cmd tea.Cmd
	switch a.state {
	case pageEditView:
		var m tea.Model
		m, cmd = a.pageView.Update(msg)
		if pv, ok := m.(*PageViewModel); ok {
			a.pageView = pv
		}
	case tagBrowserView:
		var m tea.Model
		m, cmd = a.tagBrowser.Update(msg)
		if tb, ok := m.(*TagBrowserModel); ok {
			a.tagBrowser = tb
		}
	}
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var content string
	switch a.state {
	case pageEditView:
		content = a.pageView.View()
	case tagBrowserView:
		content = a.tagBrowser.View()
	}

	if a.statusMsg != "" {
		statusBar := StatusBarStyle.Render(a.statusMsg)
		content = lipgloss.JoinVertical(lipgloss.Top, content, statusBar)
	}
	return content
}

func statusTimeout(settings *models.Settings) time.Duration {
	seconds := settings.UI.StatusTimeout
	if seconds <= 0 {
		seconds = 3
	}
	return time.Duration(seconds) * time.Second
}
