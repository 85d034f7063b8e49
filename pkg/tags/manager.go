// Package tags implements per-page tag state and the shared tag template
// store. A Manager is the only component that mutates selection state and
// usage counts; lookups that miss return false rather than errors.
package tags

import (
	"github.com/promptdeck/promptdeck/pkg/models"
)

// Manager is a behavioral facade over a single page's tag collection. It
// holds a non-owning reference to the page's collection: mutations made
// here are visible through the page and vice versa. The collection is
// normalized in place at construction and never replaced wholesale except
// through Import in overwrite mode, which still reuses the same maps.
type Manager struct {
	pageID int
	tags   *models.TagCollection
}

// SelectedTag carries a selected tag together with its category context,
// for rendering that needs provenance.
type SelectedTag struct {
	Name     string
	En       string
	Category string
	Attrs    models.TagAttributes
}

// TagUpdate is a partial update; nil fields are left untouched.
type TagUpdate struct {
	En         *string
	Selected   *bool
	UsageCount *int
	Image      *string
	URL        *string
	Title      *string
	Timestamp  *int64
}

// NewManager binds a manager to a page's collection. A nil or partially
// initialized collection is repaired in place so existing references to
// it stay valid.
func NewManager(pageID int, tags *models.TagCollection) *Manager {
	if *tags == nil {
		*tags = models.NewTagCollection()
	}
	(*tags).EnsureTypes()
	return &Manager{pageID: pageID, tags: tags}
}

// PageID returns the id of the owning page.
func (m *Manager) PageID() int {
	return m.pageID
}

func (m *Manager) collection() models.TagCollection {
	return *m.tags
}

// All returns the live (not copied) category mapping for a tag type.
func (m *Manager) All(tagType string) map[string]models.Category {
	categories := m.collection()[tagType]
	if categories == nil {
		return map[string]models.Category{}
	}
	return categories
}

// Selected returns the English text of every selected tag of the given
// type, in stable order.
func (m *Manager) Selected(tagType string) []string {
	return m.collection().SelectedEn(tagType)
}

// SelectedWithInfo returns every selected tag with its category context.
func (m *Manager) SelectedWithInfo(tagType string) []SelectedTag {
	col := m.collection()
	var selected []SelectedTag
	for _, catName := range col.CategoryNames(tagType) {
		cat := col[tagType][catName]
		for _, name := range col.TagNames(tagType, catName) {
			attrs := cat[name]
			if !attrs.Selected {
				continue
			}
			en := attrs.En
			if en == "" {
				en = name
			}
			selected = append(selected, SelectedTag{
				Name:     name,
				En:       en,
				Category: catName,
				Attrs:    attrs,
			})
		}
	}
	return selected
}

// resolveCategory finds the category holding a tag when the caller did not
// name one. Categories are scanned in sorted order so the first match is
// deterministic.
func (m *Manager) resolveCategory(tagType, category, name string) (string, bool) {
	col := m.collection()
	if category != "" {
		_, ok := col[tagType][category][name]
		return category, ok
	}
	for _, catName := range col.CategoryNames(tagType) {
		if _, ok := col[tagType][catName][name]; ok {
			return catName, true
		}
	}
	return "", false
}

// IsSelected reports whether a tag is selected. An empty category searches
// all categories of the type. Missing tags report false.
func (m *Manager) IsSelected(tagType, category, name string) bool {
	catName, ok := m.resolveCategory(tagType, category, name)
	if !ok {
		return false
	}
	return m.collection()[tagType][catName][name].Selected
}

// Toggle flips a tag's selected state and returns whether the tag was
// found. Selecting a tag increments its usage count; deselecting leaves
// the count alone. A missing tag is a normal no-op, not an error.
func (m *Manager) Toggle(tagType, category, name string) bool {
	catName, ok := m.resolveCategory(tagType, category, name)
	if !ok {
		return false
	}
	cat := m.collection()[tagType][catName]
	attrs := cat[name]
	attrs.Selected = !attrs.Selected
	if attrs.Selected {
		attrs.UsageCount++
	}
	cat[name] = attrs
	return true
}

// Add inserts or overwrites a tag, creating the category if needed.
// Overwriting an existing tag is intentional: edit flows reuse Add.
func (m *Manager) Add(tagType, category, name string, attrs models.TagAttributes) bool {
	if !models.ValidTagType(tagType) {
		return false
	}
	if models.ValidateCategoryName(category) != nil || models.ValidateTagName(name) != nil {
		return false
	}
	col := m.collection()
	if col[tagType] == nil {
		col[tagType] = map[string]models.Category{}
	}
	if col[tagType][category] == nil {
		col[tagType][category] = models.Category{}
	}
	col[tagType][category][name] = attrs.WithDefaults(name)
	return true
}

// Remove deletes a tag, and its category if the category becomes empty.
func (m *Manager) Remove(tagType, category, name string) bool {
	col := m.collection()
	cat, ok := col[tagType][category]
	if !ok {
		return false
	}
	if _, ok := cat[name]; !ok {
		return false
	}
	delete(cat, name)
	if len(cat) == 0 {
		delete(col[tagType], category)
	}
	return true
}

// Update shallow-merges a partial update into an existing tag. It fails
// if the tag does not exist.
func (m *Manager) Update(tagType, category, name string, update TagUpdate) bool {
	col := m.collection()
	cat, ok := col[tagType][category]
	if !ok {
		return false
	}
	attrs, ok := cat[name]
	if !ok {
		return false
	}
	if update.En != nil {
		attrs.En = *update.En
	}
	if update.Selected != nil {
		attrs.Selected = *update.Selected
	}
	if update.UsageCount != nil {
		attrs.UsageCount = *update.UsageCount
	}
	if update.Image != nil {
		attrs.Image = *update.Image
	}
	if update.URL != nil {
		attrs.URL = *update.URL
	}
	if update.Title != nil {
		attrs.Title = *update.Title
	}
	if update.Timestamp != nil {
		attrs.Timestamp = *update.Timestamp
	}
	cat[name] = attrs
	return true
}

// Get returns a copy of a tag's attributes. Mutating the result does not
// affect the collection.
func (m *Manager) Get(tagType, category, name string) (models.TagAttributes, bool) {
	attrs, ok := m.collection()[tagType][category][name]
	return attrs, ok
}

// ClearSelections deselects every tag of the given type, or of both types
// when tagType is empty. Usage counts are untouched.
func (m *Manager) ClearSelections(tagType string) {
	types := models.TagTypes
	if tagType != "" {
		types = []string{tagType}
	}
	col := m.collection()
	for _, tt := range types {
		for _, cat := range col[tt] {
			for name, attrs := range cat {
				attrs.Selected = false
				cat[name] = attrs
			}
		}
	}
}

// CategoryNames returns the category names of a tag type in stable order.
func (m *Manager) CategoryNames(tagType string) []string {
	return m.collection().CategoryNames(tagType)
}

// TagNames returns the tag names within one category in stable order.
func (m *Manager) TagNames(tagType, category string) []string {
	return m.collection().TagNames(tagType, category)
}

// Export returns a deep copy of the whole collection, safe to serialize
// or hand to another component without aliasing.
func (m *Manager) Export() models.TagCollection {
	return m.collection().Clone()
}

// Import loads tag data into the page's collection. In overwrite mode the
// existing data is discarded wholesale; in merge mode only the categories
// present in data are touched, so selections of unrelated tags survive.
// Every imported tag is forced unselected regardless of what the source
// said, and its usage count is reset to the imported value (defaulting to
// zero), never summed. Returns false, leaving state unchanged, when data
// has no recognizable tag structure.
func (m *Manager) Import(data models.TagCollection, merge bool) bool {
	if data == nil {
		return false
	}
	recognized := false
	for _, tt := range models.TagTypes {
		if _, ok := data[tt]; ok {
			recognized = true
			break
		}
	}
	if !recognized {
		return false
	}

	col := m.collection()
	if !merge {
		// Overwrite in place: clearing rather than reassigning keeps
		// the page's reference to the collection valid.
		for _, tt := range models.TagTypes {
			col[tt] = map[string]models.Category{}
		}
	}

	for _, tagType := range models.TagTypes {
		categories, ok := data[tagType]
		if !ok {
			continue
		}
		if col[tagType] == nil {
			col[tagType] = map[string]models.Category{}
		}
		for catName, cat := range categories {
			catName = models.CleanName(catName)
			if catName == "" {
				continue
			}
			dest, exists := col[tagType][catName]
			if !merge || !exists {
				dest = make(models.Category, len(cat))
				col[tagType][catName] = dest
			}
			for name, attrs := range cat {
				name = models.CleanName(name)
				if name == "" {
					continue
				}
				clean := attrs.WithDefaults(name)
				clean.Selected = false
				dest[name] = clean
			}
		}
	}
	return true
}

// RestoreUIState recomputes the currently selected tag names so the UI
// layer can re-render after a page switch without re-deriving selection
// logic. It mutates nothing.
func (m *Manager) RestoreUIState() (head, tail []string) {
	return m.Selected(models.TagTypeHead), m.Selected(models.TagTypeTail)
}
