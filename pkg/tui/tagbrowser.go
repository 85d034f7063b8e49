package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promptdeck/promptdeck/pkg/models"
	"github.com/promptdeck/promptdeck/pkg/pages"
	"github.com/promptdeck/promptdeck/pkg/search"
)

// browserRow is one line in the tag browser: either a section header or
// a toggleable tag.
type browserRow struct {
	tagType  string
	category string
	name     string
	header   bool
}

// TagBrowserModel lists the current page's tags grouped by type and
// category. Toggling acts on the current page; deleting cascades
// through the shared store and every page.
type TagBrowserModel struct {
	manager     *pages.Manager
	settings    *models.Settings
	confirm     *ConfirmationModel
	addInput    textinput.Model
	filterInput textinput.Model

	rows      []browserRow
	cursor    int
	adding    bool
	filtering bool
	query     search.Query
	width     int
	height    int
}

// NewTagBrowser creates the browser over the page manager's current page.
func NewTagBrowser(manager *pages.Manager, settings *models.Settings) *TagBrowserModel {
	ti := textinput.New()
	ti.Placeholder = "category/name=english"
	ti.CharLimit = 120

	fi := textinput.New()
	fi.Placeholder = "type:head category:style text..."
	fi.CharLimit = 120

	m := &TagBrowserModel{
		manager:     manager,
		settings:    settings,
		confirm:     NewConfirmation(),
		addInput:    ti,
		filterInput: fi,
	}
	m.reload()
	return m
}

func (m *TagBrowserModel) Init() tea.Cmd {
	return nil
}

func (m *TagBrowserModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// reload rebuilds the row list from the current page's collection.
func (m *TagBrowserModel) reload() {
	tm := m.manager.CurrentTagManager()
	m.rows = m.rows[:0]
	if tm == nil {
		m.cursor = 0
		return
	}
	for _, tagType := range models.TagTypes {
		for _, category := range tm.CategoryNames(tagType) {
			var tagRows []browserRow
			for _, name := range tm.TagNames(tagType, category) {
				attrs, _ := tm.Get(tagType, category, name)
				if !m.query.Matches(tagType, category, name, attrs) {
					continue
				}
				tagRows = append(tagRows, browserRow{tagType: tagType, category: category, name: name})
			}
			if len(tagRows) == 0 {
				continue
			}
			m.rows = append(m.rows, browserRow{tagType: tagType, category: category, header: true})
			m.rows = append(m.rows, tagRows...)
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *TagBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirm.Active() {
		return m, m.confirm.Update(keyMsg)
	}
	if m.adding {
		return m.updateAdd(keyMsg)
	}
	if m.filtering {
		return m.updateFilter(keyMsg)
	}

	switch keyMsg.String() {
	case "up", "k":
		m.moveCursor(-1)

	case "down", "j":
		m.moveCursor(1)

	case " ", "enter":
		return m, m.toggleCurrent()

	case "d":
		return m, m.confirmDeleteCurrent()

	case "a":
		m.adding = true
		m.addInput.SetValue("")
		m.addInput.Focus()
		return m, textinput.Blink

	case "/":
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink

	case "esc", "ctrl+g", "q":
		if !m.query.Empty() {
			m.query = search.Query{}
			m.filterInput.SetValue("")
			m.reload()
			return m, nil
		}
		return m, switchView(pageEditView)
	}

	return m, nil
}

func (m *TagBrowserModel) moveCursor(delta int) {
	next := m.cursor + delta
	for next >= 0 && next < len(m.rows) && m.rows[next].header {
		next += delta
	}
	if next >= 0 && next < len(m.rows) {
		m.cursor = next
	}
}

func (m *TagBrowserModel) currentRow() (browserRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return browserRow{}, false
	}
	row := m.rows[m.cursor]
	if row.header {
		return browserRow{}, false
	}
	return row, true
}

func (m *TagBrowserModel) toggleCurrent() tea.Cmd {
	row, ok := m.currentRow()
	if !ok {
		return nil
	}
	tm := m.manager.CurrentTagManager()
	if tm == nil {
		return nil
	}
	tm.Toggle(row.tagType, row.category, row.name)
	if page := m.manager.CurrentPage(); page != nil {
		page.RefreshOutput()
	}
	if err := m.manager.Save(); err != nil {
		return m.status(fmt.Sprintf("× Not saved: %v", err))
	}
	return nil
}

func (m *TagBrowserModel) confirmDeleteCurrent() tea.Cmd {
	row, ok := m.currentRow()
	if !ok {
		return nil
	}
	m.confirm.Show(fmt.Sprintf("Delete %q from every page?", row.name), true,
		func() tea.Cmd {
			existed := m.manager.RemoveTagEverywhere(row.tagType, row.name)
			m.reload()
			if !existed {
				return m.status(fmt.Sprintf("× %s not found", row.name))
			}
			return m.status(fmt.Sprintf("✓ Deleted %s everywhere", row.name))
		},
		func() tea.Cmd { return nil },
	)
	return nil
}

func (m *TagBrowserModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.adding = false
		m.addInput.Blur()
		return m, m.addFromInput(m.addInput.Value())

	case "esc":
		m.adding = false
		m.addInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

// addFromInput parses "category/name=english" and adds the tag to the
// section the cursor is in (head by default).
func (m *TagBrowserModel) addFromInput(raw string) tea.Cmd {
	tm := m.manager.CurrentTagManager()
	if tm == nil {
		return nil
	}

	category, name, en, err := parseTagSpec(raw)
	if err != nil {
		return m.status(fmt.Sprintf("× %v", err))
	}

	tagType := models.TagTypeHead
	if m.cursor < len(m.rows) && len(m.rows) > 0 {
		tagType = m.rows[m.cursor].tagType
	}

	if !tm.Add(tagType, category, name, models.TagAttributes{En: en}) {
		return m.status("× Invalid tag")
	}
	m.reload()
	if err := m.manager.Save(); err != nil {
		return m.status(fmt.Sprintf("✓ Added %s (not saved: %v)", name, err))
	}
	return m.status(fmt.Sprintf("✓ Added %s to %s", name, category))
}

func (m *TagBrowserModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		m.query = search.ParseQuery(m.filterInput.Value())
		m.cursor = 0
		m.reload()
		m.moveCursor(1)
		return m, nil

	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.query = search.Query{}
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func parseTagSpec(raw string) (category, name, en string, err error) {
	raw = strings.TrimSpace(raw)
	slash := strings.Index(raw, "/")
	if slash <= 0 {
		return "", "", "", fmt.Errorf("expected category/name=english")
	}
	category = strings.TrimSpace(raw[:slash])
	rest := raw[slash+1:]

	if eq := strings.Index(rest, "="); eq >= 0 {
		name = strings.TrimSpace(rest[:eq])
		en = strings.TrimSpace(rest[eq+1:])
	} else {
		name = strings.TrimSpace(rest)
	}
	if name == "" {
		return "", "", "", fmt.Errorf("expected category/name=english")
	}
	return category, name, en, nil
}

func (m *TagBrowserModel) status(text string) tea.Cmd {
	timeout := statusTimeout(m.settings)
	return tea.Batch(
		func() tea.Msg { return StatusMsg(text) },
		clearStatusAfter(timeout),
	)
}

func (m *TagBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("TAGS"))
	b.WriteString("\n")
	if m.filtering {
		b.WriteString(HeaderStyle.Render("FILTER") + " " + m.filterInput.View())
		b.WriteString("\n")
	} else if !m.query.Empty() {
		b.WriteString(HelpStyle.Render("filter: " + m.filterInput.Value() + "  (esc clears)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	tm := m.manager.CurrentTagManager()
	if tm == nil || len(m.rows) == 0 {
		if !m.query.Empty() {
			b.WriteString(NormalStyle.Render("No tags match the filter."))
		} else {
			b.WriteString(NormalStyle.Render("No tags. Press 'a' to add one."))
		}
	}

	typeLabels := map[string]string{
		models.TagTypeHead: "HEAD",
		models.TagTypeTail: "TAIL",
	}
	lastType := ""
	for i, row := range m.rows {
		if row.tagType != lastType {
			lastType = row.tagType
			b.WriteString(HeaderStyle.Render(typeLabels[row.tagType]))
			b.WriteString("\n")
		}
		if row.header {
			color := models.CategoryColor(row.category)
			b.WriteString("  ")
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(row.category))
			b.WriteString("\n")
			continue
		}

		marker := "[ ]"
		if tm != nil && tm.IsSelected(row.tagType, row.category, row.name) {
			marker = "[x]"
		}
		line := fmt.Sprintf("    %s %s", marker, row.name)
		if attrs, ok := tm.Get(row.tagType, row.category, row.name); ok && attrs.UsageCount > 0 {
			line += NormalStyle.Render(fmt.Sprintf("  (%d)", attrs.UsageCount))
		}
		if i == m.cursor {
			line = SelectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.adding {
		b.WriteString("\n")
		b.WriteString(HeaderStyle.Render("ADD") + " " + m.addInput.View())
		b.WriteString("\n")
	}
	if m.confirm.Active() {
		b.WriteString("\n")
		b.WriteString(m.confirm.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("space toggle  a add  d delete everywhere  / filter  esc back"))
	return b.String()
}
