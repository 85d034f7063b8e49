package pages

import (
	"fmt"
	"os"
	"sync"

	"github.com/promptdeck/promptdeck/pkg/composer"
	"github.com/promptdeck/promptdeck/pkg/models"
	"github.com/promptdeck/promptdeck/pkg/tags"
)

// Manager is the page registry: identity allocation, persistence, and
// switch orchestration. Page ids are monotonic and never reused, even
// after deletion. The registry never drops below one page through
// DeletePage; ClearAll is the explicit exception and callers are expected
// to create a fresh page immediately after.
type Manager struct {
	mu        sync.RWMutex
	pages     map[int]*Page
	order     []int
	currentID int
	nextID    int
	dataPath  string
	store     *tags.Store
	output    *composer.OutputState
}

// NewManager creates a registry persisting to dataPath and seeding new
// pages from the given template store. Existing data is loaded eagerly;
// a missing or corrupt file leaves the registry empty.
func NewManager(dataPath string, store *tags.Store) *Manager {
	m := &Manager{
		pages:    make(map[int]*Page),
		nextID:   1,
		dataPath: dataPath,
		store:    store,
		output:   composer.NewOutputState(),
	}
	if err := m.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load pages: %v\n", err)
	}
	return m
}

// template adapts the store to a TemplateFunc. A store load failure seeds
// nothing rather than failing page creation.
func (m *Manager) template() models.TagCollection {
	if m.store == nil {
		return nil
	}
	col, err := m.store.Load()
	if err != nil {
		return nil
	}
	return col
}

// OutputState returns the shared rendered-output tracker.
func (m *Manager) OutputState() *composer.OutputState {
	return m.output
}

// StartSession clears every page's selections. The interactive shell
// calls this once at startup; one-shot commands read the registry
// without it so they report the selection state the file holds.
func (m *Manager) StartSession() {
	for _, page := range m.Pages() {
		page.StartSession()
	}
}

// save persists and downgrades a failure to a stderr warning. Mutating
// operations keep in-memory state authoritative either way.
func (m *Manager) save() {
	if err := m.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

// CreatePage allocates the next id, builds a page seeded from the
// template, makes it current, and persists.
func (m *Manager) CreatePage(name string) *Page {
	m.mu.Lock()
	if name == "" {
		name = fmt.Sprintf("Page %d", m.nextID)
	}
	page := NewPage(m.nextID, name, m.template)
	page.setOutputState(m.output)
	page.InitTagManager()
	m.pages[page.ID] = page
	m.order = append(m.order, page.ID)
	m.currentID = page.ID
	m.nextID++
	m.mu.Unlock()

	m.save()
	return page
}

// EnsureDefaultPage creates a first page when the registry is empty, so
// the application is never interactive with zero pages.
func (m *Manager) EnsureDefaultPage() *Page {
	m.mu.RLock()
	empty := len(m.pages) == 0
	m.mu.RUnlock()
	if empty {
		return m.CreatePage("")
	}
	return m.CurrentPage()
}

// DeletePage removes a page. The last remaining page cannot be deleted;
// interactive confirmation is the caller's concern. When the current page
// is deleted, the first remaining page becomes current.
func (m *Manager) DeletePage(pageID int) bool {
	m.mu.Lock()
	if len(m.pages) <= 1 {
		m.mu.Unlock()
		return false
	}
	if _, ok := m.pages[pageID]; !ok {
		m.mu.Unlock()
		return false
	}

	delete(m.pages, pageID)
	for i, id := range m.order {
		if id == pageID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.currentID == pageID {
		m.currentID = m.order[0]
	}
	m.mu.Unlock()

	m.output.Clear(pageID)
	m.save()
	return true
}

// ClearAll removes every page and resets id allocation. Callers must
// create a fresh page right after; the manager does not do it itself.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	for id := range m.pages {
		m.output.Clear(id)
	}
	m.pages = make(map[int]*Page)
	m.order = nil
	m.currentID = 0
	m.nextID = 1
	m.mu.Unlock()

	m.save()
}

// RenamePage updates a page's display name and persists.
func (m *Manager) RenamePage(pageID int, newName string) bool {
	m.mu.Lock()
	page, ok := m.pages[pageID]
	if !ok {
		m.mu.Unlock()
		return false
	}
	page.Name = newName
	m.mu.Unlock()

	m.save()
	return true
}

// SwitchTo makes pageID the current page. The outgoing page's state is
// saved and its view hidden before the incoming page is shown and
// restored, in strict sequence. An unknown id is a no-op.
func (m *Manager) SwitchTo(pageID int) {
	m.mu.Lock()
	target, ok := m.pages[pageID]
	if !ok {
		m.mu.Unlock()
		return
	}
	outgoing := m.pages[m.currentID]
	m.currentID = pageID
	m.mu.Unlock()

	if outgoing != nil && outgoing != target {
		outgoing.SaveState()
		outgoing.HideUI()
	}
	target.ShowUI()
	target.RestoreState()
}

// CurrentPage returns the current page, or nil when the registry is empty.
func (m *Manager) CurrentPage() *Page {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pages[m.currentID]
}

// CurrentTagManager returns the current page's tag manager, or nil.
func (m *Manager) CurrentTagManager() *tags.Manager {
	page := m.CurrentPage()
	if page == nil {
		return nil
	}
	return page.TagManager()
}

// Page looks up a page by id.
func (m *Manager) Page(pageID int) (*Page, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	page, ok := m.pages[pageID]
	return page, ok
}

// Pages returns all pages in creation order.
func (m *Manager) Pages() []*Page {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Page, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.pages[id])
	}
	return out
}

// Len returns the number of pages.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pages)
}

// CurrentID returns the current page id, 0 when unset.
func (m *Manager) CurrentID() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentID
}

// NextID exposes the next id to be allocated.
func (m *Manager) NextID() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nextID
}

// RemoveTagEverywhere deletes a tag from its canonical storage: the
// shared template store, every page's own copy (pages seed from the
// template but hold independent copies), and any associated image file.
// Categories emptied by the removal are dropped, the registry is
// persisted, and the current page's output is rebuilt. Returns whether
// the tag existed anywhere.
func (m *Manager) RemoveTagEverywhere(tagType, name string) bool {
	removed := false

	if m.store != nil {
		if col, err := m.store.Load(); err == nil {
			if removeFromCollection(col, tagType, name) {
				removed = true
				if err := m.store.Save(col); err != nil {
					fmt.Fprintf(os.Stderr, "warning: failed to save tag store: %v\n", err)
				}
			}
		}
	}

	m.mu.RLock()
	pages := make([]*Page, 0, len(m.order))
	for _, id := range m.order {
		pages = append(pages, m.pages[id])
	}
	m.mu.RUnlock()

	for _, page := range pages {
		if attrs, ok := findInCollection(page.Tags, tagType, name); ok {
			if attrs.Image != "" {
				// Best effort: the image may already be gone or shared.
				os.Remove(attrs.Image)
			}
		}
		if removeFromCollection(page.Tags, tagType, name) {
			removed = true
		}
	}

	if removed {
		m.save()
		if current := m.CurrentPage(); current != nil {
			current.RefreshOutput()
		}
	}
	return removed
}

// SyncTemplateChanges re-imports the template store into every page in
// merge mode when the backing file changed externally. Merge never resets
// selections of tags absent from the template.
func (m *Manager) SyncTemplateChanges() bool {
	if m.store == nil || !m.store.Changed() {
		return false
	}
	col, err := m.store.Load()
	if err != nil {
		return false
	}
	for _, page := range m.Pages() {
		page.TagManager().Import(col, true)
	}
	if current := m.CurrentPage(); current != nil {
		current.RefreshOutput()
	}
	return true
}

func findInCollection(col models.TagCollection, tagType, name string) (models.TagAttributes, bool) {
	for _, cat := range col[tagType] {
		if attrs, ok := cat[name]; ok {
			return attrs, true
		}
	}
	return models.TagAttributes{}, false
}

func removeFromCollection(col models.TagCollection, tagType, name string) bool {
	removed := false
	for catName, cat := range col[tagType] {
		if _, ok := cat[name]; ok {
			delete(cat, name)
			removed = true
			if len(cat) == 0 {
				delete(col[tagType], catName)
			}
		}
	}
	return removed
}
