package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/promptdeck/promptdeck/pkg/composer"
	"github.com/promptdeck/promptdeck/pkg/files"
	"github.com/promptdeck/promptdeck/pkg/models"
	"github.com/promptdeck/promptdeck/pkg/pages"
	"github.com/promptdeck/promptdeck/pkg/translate"
	"github.com/promptdeck/promptdeck/pkg/utils"
)

// PageViewModel is the main editing view: one input area, the rendered
// output, and the selected tag chips for the current page. It is the
// shared ViewBinding for every page; the page manager drives it through
// SaveState/RestoreState when switching.
type PageViewModel struct {
	manager    *pages.Manager
	translator *translate.Translator
	settings   *models.Settings

	input    textarea.Model
	rename   textinput.Model
	confirm  *ConfirmationModel
	segments []composer.Segment

	renaming    bool
	translating bool
	visible     bool
	width       int
	height      int
}

// NewPageView creates the page view and binds every existing page to it.
func NewPageView(manager *pages.Manager, translator *translate.Translator, settings *models.Settings) *PageViewModel {
	ta := textarea.New()
	ta.Placeholder = "Describe the image..."
	ta.Prompt = "  "
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(80)
	ta.SetHeight(5)
	ta.Focus()

	ti := textinput.New()
	ti.Placeholder = "Page name"
	ti.CharLimit = 60

	m := &PageViewModel{
		manager:    manager,
		translator: translator,
		settings:   settings,
		input:      ta,
		rename:     ti,
		confirm:    NewConfirmation(),
	}

	for _, p := range manager.Pages() {
		p.Bind(m)
	}
	if current := manager.CurrentPage(); current != nil {
		current.ShowUI()
		current.RestoreState()
	}
	return m
}

// ViewBinding implementation. The page manager calls these while
// switching pages; Show/Hide track which page owns the widgets.

func (m *PageViewModel) InputText() string        { return m.input.Value() }
func (m *PageViewModel) SetInputText(text string) { m.input.SetValue(text) }
func (m *PageViewModel) Show()                    { m.visible = true }
func (m *PageViewModel) Hide()                    { m.visible = false }

func (m *PageViewModel) RenderOutput(segs []composer.Segment) {
	m.segments = segs
}

func (m *PageViewModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *PageViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	m.input.SetWidth(inner)
}

func (m *PageViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirm.Active() {
			return m, m.confirm.Update(msg)
		}
		if m.renaming {
			return m.updateRename(msg)
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *PageViewModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+t":
		return m.startTranslation(), true

	case "ctrl+y":
		page := m.manager.CurrentPage()
		if page == nil || page.OutputText == "" {
			return m.status("× Nothing to copy"), true
		}
		if err := clipboard.WriteAll(page.ClipboardText()); err != nil {
			return m.status(fmt.Sprintf("× Clipboard failed: %v", err)), true
		}
		return m.status(fmt.Sprintf("✓ %s → clipboard", page.Name)), true

	case "ctrl+n":
		page := m.manager.CreatePage("")
		page.Bind(m)
		m.manager.SwitchTo(page.ID)
		return m.status(fmt.Sprintf("✓ Created %s", page.Name)), true

	case "ctrl+w":
		return m.confirmDelete(), true

	case "ctrl+r":
		page := m.manager.CurrentPage()
		if page == nil {
			return nil, true
		}
		m.renaming = true
		m.rename.SetValue(page.Name)
		m.rename.Focus()
		m.input.Blur()
		return textinput.Blink, true

	case "ctrl+l":
		if page := m.manager.CurrentPage(); page != nil {
			m.input.SetValue("")
			page.ClearOutput()
		}
		return m.status("✓ Cleared"), true

	case "tab":
		m.switchRelative(1)
		return nil, true

	case "shift+tab":
		m.switchRelative(-1)
		return nil, true

	case "ctrl+g":
		return switchView(tagBrowserView), true
	}

	return nil, false
}

func (m *PageViewModel) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.rename.Value())
		m.renaming = false
		m.rename.Blur()
		m.input.Focus()
		if name == "" {
			return m, m.status("× Name cannot be empty")
		}
		m.manager.RenamePage(m.manager.CurrentID(), name)
		return m, m.status(fmt.Sprintf("✓ Renamed to %s", name))

	case "esc":
		m.renaming = false
		m.rename.Blur()
		m.input.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.rename, cmd = m.rename.Update(msg)
	return m, cmd
}

// startTranslation saves the current input and launches the provider
// call off the UI loop. The result message carries the page id so a
// reply landing after a page switch is dropped.
func (m *PageViewModel) startTranslation() tea.Cmd {
	page := m.manager.CurrentPage()
	if page == nil {
		return nil
	}
	page.SaveState()
	if strings.TrimSpace(page.InputText) == "" {
		return m.status("× Nothing to translate")
	}
	if m.translator == nil {
		return m.status("× No translation provider configured (set OPENAI_API_KEY)")
	}
	m.translating = true
	return tea.Batch(
		m.status("Translating..."),
		translateCmd(m.translator, page.ID, page.InputText),
	)
}

func (m *PageViewModel) handleTranslationDone(msg translationDoneMsg) tea.Cmd {
	m.translating = false
	if msg.PageID != m.manager.CurrentID() {
		// Stale result from before a page switch.
		return nil
	}
	page := m.manager.CurrentPage()
	if page == nil {
		return nil
	}
	if msg.Err != nil {
		return m.status(fmt.Sprintf("× Translation failed: %v", msg.Err))
	}

	page.LastTranslation = msg.Text
	page.RefreshOutput()
	if err := m.manager.Save(); err != nil {
		return m.status(fmt.Sprintf("✓ Translated (not saved: %v)", err))
	}

	if err := files.AppendHistory(files.HistoryPath(), page.InputText, page.OutputText, m.settings.Output.HistorySize); err != nil {
		return m.status(fmt.Sprintf("✓ Translated (history not saved: %v)", err))
	}
	return m.status("✓ Translated")
}

func (m *PageViewModel) confirmDelete() tea.Cmd {
	page := m.manager.CurrentPage()
	if page == nil {
		return nil
	}
	if m.manager.Len() == 1 {
		return m.status("× Cannot delete the last page")
	}
	name := page.Name
	id := page.ID
	m.confirm.Show(fmt.Sprintf("Delete %s?", name), true,
		func() tea.Cmd {
			m.manager.DeletePage(id)
			if current := m.manager.CurrentPage(); current != nil {
				current.ShowUI()
				current.RestoreState()
			}
			return m.status(fmt.Sprintf("✓ Deleted %s", name))
		},
		func() tea.Cmd { return nil },
	)
	return nil
}

func (m *PageViewModel) switchRelative(delta int) {
	pageList := m.manager.Pages()
	if len(pageList) < 2 {
		return
	}
	current := m.manager.CurrentID()
	for i, p := range pageList {
		if p.ID == current {
			next := (i + delta + len(pageList)) % len(pageList)
			m.manager.SwitchTo(pageList[next].ID)
			return
		}
	}
}

func (m *PageViewModel) status(text string) tea.Cmd {
	timeout := statusTimeout(m.settings)
	return tea.Batch(
		func() tea.Msg { return StatusMsg(text) },
		clearStatusAfter(timeout),
	)
}

func (m *PageViewModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	inputTitle := HeaderStyle.Render("INPUT")
	if m.renaming {
		inputTitle = HeaderStyle.Render("RENAME") + " " + m.rename.View()
	}
	b.WriteString(inputTitle)
	b.WriteString("\n")
	b.WriteString(ActiveBorderStyle.Render(m.input.View()))
	b.WriteString("\n\n")

	outputTitle := "OUTPUT"
	if page := m.manager.CurrentPage(); page != nil && page.OutputText != "" {
		outputTitle = fmt.Sprintf("OUTPUT (~%d tokens)", utils.EstimateTokens(page.OutputText))
	}
	b.WriteString(HeaderStyle.Render(outputTitle))
	b.WriteString("\n")
	b.WriteString(m.renderOutput())
	b.WriteString("\n")

	if m.settings.UI.ShowChips {
		if chips := m.renderChips(); chips != "" {
			b.WriteString("\n")
			b.WriteString(chips)
			b.WriteString("\n")
		}
	}

	if m.confirm.Active() {
		b.WriteString("\n")
		b.WriteString(m.confirm.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("^t translate  ^y copy  ^n new  ^w delete  ^r rename  ^g tags  ^l clear  tab next page"))
	return b.String()
}

func (m *PageViewModel) renderTabs() string {
	tabs := make([]string, 0, m.manager.Len())
	current := m.manager.CurrentID()
	for _, p := range m.manager.Pages() {
		if p.ID == current {
			tabs = append(tabs, TabActiveStyle.Render(p.Name))
		} else {
			tabs = append(tabs, TabInactiveStyle.Render(p.Name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *PageViewModel) renderOutput() string {
	page := m.manager.CurrentPage()
	if page == nil || page.OutputText == "" {
		return NormalStyle.Render("(empty)")
	}
	width := m.width - 4
	if width < 20 {
		width = 76
	}
	text := page.OutputText
	if len(m.segments) > 0 {
		// Tag segments get the accent color so the removable units
		// stand out from the translated body.
		parts := make([]string, len(m.segments))
		for i, s := range m.segments {
			if s.Removable() {
				parts[i] = TagSegmentStyle.Render(s.Text)
			} else {
				parts[i] = s.Text
			}
		}
		text = strings.Join(parts, composer.Separator)
	}
	text = wordwrap.String(text, width)
	if m.translating {
		text += "\n" + NormalStyle.Render("...")
	}
	return InactiveBorderStyle.Width(width + 2).Render(text)
}

// renderChips draws one chip per selected tag, colored by category.
func (m *PageViewModel) renderChips() string {
	tm := m.manager.CurrentTagManager()
	if tm == nil {
		return ""
	}
	var chips []string
	for _, tagType := range models.TagTypes {
		for _, sel := range tm.SelectedWithInfo(tagType) {
			color := models.CategoryColor(sel.Category)
			chips = append(chips, chipStyle(color, true).Render(sel.Name))
		}
	}
	if len(chips) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}
