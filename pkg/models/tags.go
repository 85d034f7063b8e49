package models

import (
	"errors"
	"hash/fnv"
	"strings"
)

// Tag-related errors
var (
	ErrEmptyTagName   = errors.New("tag name cannot be empty")
	ErrEmptyCategory  = errors.New("category name cannot be empty")
	ErrInvalidTagType = errors.New("tag type must be head or tail")
)

// DefaultCategoryPalette provides a curated set of colors for category
// labels. These colors are chosen for good contrast and accessibility.
var DefaultCategoryPalette = []string{
	"#e74c3c", // red
	"#3498db", // blue
	"#2ecc71", // green
	"#f39c12", // orange
	"#9b59b6", // purple
	"#1abc9c", // turquoise
	"#34495e", // dark gray
	"#e67e22", // dark orange
	"#16a085", // dark turquoise
	"#8e44ad", // dark purple
	"#f1c40f", // yellow
	"#d35400", // pumpkin
	"#27ae60", // nephritis
	"#2980b9", // belize hole
	"#c0392b", // pomegranate
}

// CategoryColor returns a consistent color for a category name.
func CategoryColor(category string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(category)))
	return DefaultCategoryPalette[int(h.Sum32())%len(DefaultCategoryPalette)]
}

// CleanName strips surrounding whitespace and embedded newlines from a tag
// or category name. Names arriving from imports and browser captures often
// carry stray whitespace.
func CleanName(name string) string {
	cleaned := strings.TrimSpace(name)
	cleaned = strings.ReplaceAll(cleaned, "\n", "")
	cleaned = strings.ReplaceAll(cleaned, "\r", "")
	return cleaned
}

// CleanKeys returns a copy of the collection with every category and tag
// name cleaned via CleanName. Collisions after cleaning are last-write-wins.
func (c TagCollection) CleanKeys() TagCollection {
	out := make(TagCollection, len(c))
	for tagType, categories := range c {
		outCats := make(map[string]Category, len(categories))
		for catName, cat := range categories {
			outCat := make(Category, len(cat))
			for name, attrs := range cat {
				outCat[CleanName(name)] = attrs
			}
			outCats[CleanName(catName)] = outCat
		}
		out[tagType] = outCats
	}
	return out
}

// ValidTagType reports whether tagType is one of the known tag types.
func ValidTagType(tagType string) bool {
	return tagType == TagTypeHead || tagType == TagTypeTail
}

// ValidateTagName checks a tag name before it enters a collection.
func ValidateTagName(name string) error {
	if CleanName(name) == "" {
		return ErrEmptyTagName
	}
	return nil
}

// ValidateCategoryName checks a category name before it enters a collection.
func ValidateCategoryName(name string) error {
	if CleanName(name) == "" {
		return ErrEmptyCategory
	}
	return nil
}
