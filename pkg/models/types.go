package models

import "sort"

// Tag types. Head tags are inserted before the translated body, tail tags after.
const (
	TagTypeHead = "head"
	TagTypeTail = "tail"
)

// TagTypes lists the valid tag types in render order.
var TagTypes = []string{TagTypeHead, TagTypeTail}

// TagAttributes describes one reusable prompt fragment.
type TagAttributes struct {
	En         string `json:"en"`
	Selected   bool   `json:"selected"`
	UsageCount int    `json:"usage_count"`
	Image      string `json:"image,omitempty"`
	URL        string `json:"url,omitempty"`
	Title      string `json:"title,omitempty"`
	Timestamp  int64  `json:"timestamp,omitempty"`
}

// WithDefaults fills unset attribute fields. The English text defaults to
// the tag's own name.
func (a TagAttributes) WithDefaults(name string) TagAttributes {
	if a.En == "" {
		a.En = name
	}
	if a.UsageCount < 0 {
		a.UsageCount = 0
	}
	return a
}

// Category maps tag names to their attributes within one category (tab).
type Category map[string]TagAttributes

// TagCollection is the full tag hierarchy: type -> category -> tag name -> attributes.
type TagCollection map[string]map[string]Category

// NewTagCollection returns an empty collection with both tag types present.
func NewTagCollection() TagCollection {
	return TagCollection{
		TagTypeHead: {},
		TagTypeTail: {},
	}
}

// EnsureTypes makes sure the head and tail maps exist without replacing
// the collection itself.
func (c TagCollection) EnsureTypes() {
	for _, tt := range TagTypes {
		if c[tt] == nil {
			c[tt] = map[string]Category{}
		}
	}
}

// Clone returns a deep copy of the collection.
func (c TagCollection) Clone() TagCollection {
	out := make(TagCollection, len(c))
	for tagType, categories := range c {
		outCats := make(map[string]Category, len(categories))
		for catName, cat := range categories {
			outCat := make(Category, len(cat))
			for name, attrs := range cat {
				outCat[name] = attrs
			}
			outCats[catName] = outCat
		}
		out[tagType] = outCats
	}
	return out
}

// CategoryNames returns the category names for a tag type in sorted order.
// Sorting keeps iteration stable for a fixed mapping.
func (c TagCollection) CategoryNames(tagType string) []string {
	categories := c[tagType]
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TagNames returns the tag names within one category in sorted order.
// The result is empty if the category does not exist.
func (c TagCollection) TagNames(tagType, category string) []string {
	cat, ok := c[tagType][category]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(cat))
	for name := range cat {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SelectedEn returns the English text of every selected tag of the given
// type, iterating categories and tags in stable (sorted) order.
func (c TagCollection) SelectedEn(tagType string) []string {
	var selected []string
	for _, catName := range c.CategoryNames(tagType) {
		cat := c[tagType][catName]
		for _, name := range c.TagNames(tagType, catName) {
			if attrs := cat[name]; attrs.Selected {
				en := attrs.En
				if en == "" {
					en = name
				}
				selected = append(selected, en)
			}
		}
	}
	return selected
}
