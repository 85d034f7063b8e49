package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptdeck/promptdeck/pkg/models"
	"github.com/promptdeck/promptdeck/pkg/pages"
	"github.com/promptdeck/promptdeck/pkg/tags"
)

func newTestManager(t *testing.T) *pages.Manager {
	t.Helper()
	dir := t.TempDir()

	col := models.NewTagCollection()
	col[models.TagTypeHead]["Style"] = models.Category{
		"Masterpiece": {En: "masterpiece"},
		"8K":          {En: "8k"},
	}
	col[models.TagTypeTail]["Negative"] = models.Category{
		"Blurry": {En: "blurry, negative"},
	}

	store := tags.NewStore(filepath.Join(dir, "tags.json"))
	if err := store.Save(col); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	return pages.NewManager(filepath.Join(dir, "pages_data.json"), store)
}

func TestStaleTranslationResultIsDiscarded(t *testing.T) {
	m := newTestManager(t)
	first := m.CreatePage("A")
	second := m.CreatePage("B")

	settings := models.DefaultSettings()
	view := NewPageView(m, nil, settings)

	// Result for the first page arrives after switching to the second.
	m.SwitchTo(second.ID)
	view.handleTranslationDone(translationDoneMsg{PageID: first.ID, Text: "late result"})

	if first.LastTranslation != "" {
		t.Errorf("stale result applied to page %d: %q", first.ID, first.LastTranslation)
	}
	if second.LastTranslation != "" {
		t.Errorf("stale result applied to wrong page: %q", second.LastTranslation)
	}
}

func TestConfirmationKeys(t *testing.T) {
	confirmed, cancelled := false, false
	c := NewConfirmation()

	c.Show("Delete?", true,
		func() tea.Cmd { confirmed = true; return nil },
		func() tea.Cmd { cancelled = true; return nil },
	)
	c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if !confirmed {
		t.Error("y did not confirm")
	}
	if c.Active() {
		t.Error("confirmation still active after y")
	}

	c.Show("Delete?", true,
		func() tea.Cmd { confirmed = true; return nil },
		func() tea.Cmd { cancelled = true; return nil },
	)
	c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !cancelled {
		t.Error("esc did not cancel")
	}
}

func TestTagBrowserToggleRefreshesOutput(t *testing.T) {
	m := newTestManager(t)
	page := m.CreatePage("A")
	settings := models.DefaultSettings()

	browser := NewTagBrowser(m, settings)

	// Move to the first toggleable row and toggle it.
	browser.cursor = 0
	browser.moveCursor(1)
	row, ok := browser.currentRow()
	if !ok {
		t.Fatal("no toggleable row found")
	}
	browser.toggleCurrent()

	tm := page.TagManager()
	if !tm.IsSelected(row.tagType, row.category, row.name) {
		t.Errorf("toggle did not select %s/%s", row.category, row.name)
	}
	if page.OutputText == "" {
		t.Error("output not refreshed after toggle")
	}
}

// statusText runs a command tree and returns the first status message
// it produces.
func statusText(t *testing.T, cmd tea.Cmd) string {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case StatusMsg:
			return string(msg)
		case tea.BatchMsg:
			queue = append(queue, msg...)
		}
	}
	return ""
}

func TestToggleSurfacesSaveFailure(t *testing.T) {
	dir := t.TempDir()

	col := models.NewTagCollection()
	col[models.TagTypeHead]["Style"] = models.Category{
		"Masterpiece": {En: "masterpiece"},
	}
	store := tags.NewStore(filepath.Join(dir, "tags.json"))
	if err := store.Save(col); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	// Registry path inside a directory that does not exist, so every
	// save fails.
	m := pages.NewManager(filepath.Join(dir, "missing", "pages_data.json"), store)
	m.CreatePage("A")

	browser := NewTagBrowser(m, models.DefaultSettings())
	browser.cursor = 0
	browser.moveCursor(1)
	if _, ok := browser.currentRow(); !ok {
		t.Fatal("no toggleable row found")
	}

	cmd := browser.toggleCurrent()
	if cmd == nil {
		t.Fatal("save failure produced no status")
	}
	if status := statusText(t, cmd); !strings.Contains(status, "Not saved") {
		t.Errorf("status = %q, want a save failure notice", status)
	}
}

func TestParseTagSpec(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		category string
		tagName  string
		en       string
		wantErr  bool
	}{
		{
			name:     "full spec",
			input:    "Lighting/Sunset=sunset glow",
			category: "Lighting",
			tagName:  "Sunset",
			en:       "sunset glow",
		},
		{
			name:     "no english",
			input:    "Style/Minimal",
			category: "Style",
			tagName:  "Minimal",
		},
		{
			name:    "missing category",
			input:   "just-a-name",
			wantErr: true,
		},
		{
			name:    "empty name",
			input:   "Style/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, name, en, err := parseTagSpec(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTagSpec: %v", err)
			}
			if category != tt.category || name != tt.tagName || en != tt.en {
				t.Errorf("got (%q, %q, %q), want (%q, %q, %q)",
					category, name, en, tt.category, tt.tagName, tt.en)
			}
		})
	}
}
