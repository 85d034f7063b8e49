// Package pages implements translation sessions and their registry. Each
// page owns an isolated tag collection seeded from the shared template;
// the registry allocates ids, persists the whole set, and orchestrates
// switching between pages.
package pages

import (
	"strings"
	"time"

	"github.com/promptdeck/promptdeck/pkg/composer"
	"github.com/promptdeck/promptdeck/pkg/models"
	"github.com/promptdeck/promptdeck/pkg/tags"
)

// TemplateFunc supplies the shared tag template used to seed a page that
// has no tags of its own yet.
type TemplateFunc func() models.TagCollection

// ViewBinding is what a page needs from its (optional) UI representation.
// All methods must be safe to drive at any point in the page lifecycle;
// a page with no binding falls back to plain-text state handling.
type ViewBinding interface {
	InputText() string
	SetInputText(text string)
	RenderOutput(segs []composer.Segment)
	Show()
	Hide()
}

// InsertedTags is the legacy selected-name mirror kept in the persisted
// format for compatibility. It is derived from selection state on save
// and ignored on load; the Selected flags are the single source of truth.
type InsertedTags struct {
	Head []string `json:"head"`
	Tail []string `json:"tail"`
}

// Page is one independent translation session.
type Page struct {
	ID              int                  `json:"page_id"`
	Name            string               `json:"name"`
	CreatedTime     string               `json:"created_time"`
	InputText       string               `json:"input_text"`
	OutputText      string               `json:"output_text"`
	LastTranslation string               `json:"last_translation"`
	InsertedTags    InsertedTags         `json:"inserted_tags"`
	Tags            models.TagCollection `json:"tags"`

	tagManager *tags.Manager
	template   TemplateFunc
	binding    ViewBinding
	output     *composer.OutputState
	uiCreated  bool
	visible    bool
}

// NewPage creates a page. The template func may be nil, in which case the
// page starts with an empty collection.
func NewPage(id int, name string, template TemplateFunc) *Page {
	return &Page{
		ID:          id,
		Name:        name,
		CreatedTime: time.Now().Format("2006-01-02 15:04:05"),
		Tags:        models.NewTagCollection(),
		template:    template,
	}
}

// SetTemplate wires the template source, used for pages restored from disk.
func (p *Page) SetTemplate(template TemplateFunc) {
	p.template = template
}

// setOutputState wires the shared rendered-output tracker.
func (p *Page) setOutputState(state *composer.OutputState) {
	p.output = state
}

// InitTagManager creates the tag manager if it does not exist yet. A page
// with no tags at all is seeded from the template in overwrite mode,
// which leaves nothing selected. Creating the manager never touches the
// selection state a restored page carries; StartSession owns that.
func (p *Page) InitTagManager() {
	if p.tagManager != nil {
		return
	}
	p.tagManager = tags.NewManager(p.ID, &p.Tags)

	if len(p.Tags[models.TagTypeHead]) == 0 && len(p.Tags[models.TagTypeTail]) == 0 {
		if p.template != nil {
			if tmpl := p.template(); tmpl != nil {
				p.tagManager.Import(tmpl, false)
			}
		}
	}
}

// StartSession resets the page for a fresh interactive session: every
// selection is cleared. Non-interactive readers skip this so persisted
// selection state stays observable.
func (p *Page) StartSession() {
	p.TagManager().ClearSelections("")
}

// TagManager returns the page's manager, creating it on first use. Every
// tag operation must go through this accessor so the page never hands out
// a second manager over the same collection.
func (p *Page) TagManager() *tags.Manager {
	if p.tagManager == nil {
		p.InitTagManager()
	}
	return p.tagManager
}

// Bind attaches a view to the page. Passing nil detaches.
func (p *Page) Bind(v ViewBinding) {
	p.binding = v
	if v != nil {
		p.uiCreated = true
	}
}

// Bound reports whether a view is attached.
func (p *Page) Bound() bool {
	return p.binding != nil
}

// Visible reports whether the page's view is currently shown.
func (p *Page) Visible() bool {
	return p.visible
}

// ShowUI marks the page visible and shows its view if bound.
func (p *Page) ShowUI() {
	p.visible = true
	if p.binding != nil {
		p.binding.Show()
	}
}

// HideUI marks the page hidden and hides its view if bound.
func (p *Page) HideUI() {
	p.visible = false
	if p.binding != nil {
		p.binding.Hide()
	}
}

// SaveState reads view content back into the page's fields. Without a
// binding it is a no-op, not an error.
func (p *Page) SaveState() {
	if p.binding == nil {
		return
	}
	p.InputText = strings.TrimSpace(p.binding.InputText())
}

// RestoreState pushes the page's fields into its view and rebuilds the
// output. Tag selection state is settled (via RestoreUIState) before the
// output view is rebuilt, so the rebuilt output cannot reflect stale
// selections.
func (p *Page) RestoreState() {
	if p.binding != nil {
		p.binding.SetInputText(p.InputText)
	}
	p.TagManager().RestoreUIState()
	p.RefreshOutput()
}

// RefreshOutput rebuilds the output from the currently selected head
// tags, the last translation, and the selected tail tags, in that fixed
// order. The plain string is always computed and stored, so a missing
// view degrades to text-only output rather than failing.
func (p *Page) RefreshOutput() string {
	tm := p.TagManager()
	head := tm.Selected(models.TagTypeHead)
	tail := tm.Selected(models.TagTypeTail)

	segs := composer.Segments(head, p.LastTranslation, tail)
	text := composer.Render(segs)
	p.OutputText = text

	if p.output != nil {
		p.output.Set(p.ID, segs, text)
	}
	if p.binding != nil {
		p.binding.RenderOutput(segs)
	}
	return text
}

// ClearInput blanks the input text.
func (p *Page) ClearInput() {
	p.InputText = ""
	if p.binding != nil {
		p.binding.SetInputText("")
	}
}

// ClearOutput blanks the output and deselects every tag. Clearing output
// is defined as "nothing selected anymore", not merely hiding text.
func (p *Page) ClearOutput() {
	p.OutputText = ""
	p.LastTranslation = ""
	p.InsertedTags = InsertedTags{}
	p.TagManager().ClearSelections("")
	p.RefreshOutput()
}

// ClipboardText assembles the current output for copying.
func (p *Page) ClipboardText() string {
	tm := p.TagManager()
	return composer.Compose(
		tm.Selected(models.TagTypeHead),
		p.LastTranslation,
		tm.Selected(models.TagTypeTail),
	)
}

// syncInsertedTags refreshes the legacy mirror from selection state. Only
// called on save; the mirror is never read back.
func (p *Page) syncInsertedTags() {
	p.InsertedTags = InsertedTags{
		Head: p.Tags.SelectedEn(models.TagTypeHead),
		Tail: p.Tags.SelectedEn(models.TagTypeTail),
	}
}
