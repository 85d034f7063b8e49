// Package search filters tag collections with a small query language.
//
// Queries are whitespace-separated terms. A term with a known field
// prefix narrows the search ("type:head", "category:lighting",
// "selected:true"); everything else is free text matched against tag
// names and their english expansions, case-insensitively.
package search

import (
	"sort"
	"strconv"
	"strings"

	"github.com/promptdeck/promptdeck/pkg/models"
)

// Query is a parsed search query.
type Query struct {
	Type     string // head or tail, empty matches both
	Category string // category name filter, substring match
	Selected *bool  // selection state filter
	Text     string // free text over name and english
}

// Match is one tag that satisfied a query.
type Match struct {
	TagType  string
	Category string
	Name     string
	Attrs    models.TagAttributes
}

// ParseQuery parses the raw query string. Unrecognized field prefixes
// are treated as free text.
func ParseQuery(raw string) Query {
	var q Query
	var free []string

	for _, term := range strings.Fields(raw) {
		field, value, found := strings.Cut(term, ":")
		if !found {
			free = append(free, term)
			continue
		}
		switch strings.ToLower(field) {
		case "type":
			value = strings.ToLower(value)
			if value == models.TagTypeHead || value == models.TagTypeTail {
				q.Type = value
			}
		case "category", "cat":
			q.Category = value
		case "selected":
			if b, err := strconv.ParseBool(value); err == nil {
				q.Selected = &b
			}
		default:
			free = append(free, term)
		}
	}

	q.Text = strings.Join(free, " ")
	return q
}

// Empty reports whether the query matches everything.
func (q Query) Empty() bool {
	return q.Type == "" && q.Category == "" && q.Selected == nil && q.Text == ""
}

// Matches reports whether a single tag satisfies the query.
func (q Query) Matches(tagType, category, name string, attrs models.TagAttributes) bool {
	if q.Type != "" && tagType != q.Type {
		return false
	}
	if q.Category != "" && !containsFold(category, q.Category) {
		return false
	}
	if q.Selected != nil && attrs.Selected != *q.Selected {
		return false
	}
	if q.Text != "" && !containsFold(name, q.Text) && !containsFold(attrs.En, q.Text) {
		return false
	}
	return true
}

// Filter returns every tag in the collection satisfying the query, in
// stable type/category/name order.
func Filter(col models.TagCollection, q Query) []Match {
	var result []Match
	for _, tagType := range models.TagTypes {
		for _, category := range col.CategoryNames(tagType) {
			for _, name := range col.TagNames(tagType, category) {
				attrs := col[tagType][category][name]
				if q.Matches(tagType, category, name, attrs) {
					result = append(result, Match{
						TagType:  tagType,
						Category: category,
						Name:     name,
						Attrs:    attrs,
					})
				}
			}
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].TagType != result[j].TagType {
			return result[i].TagType == models.TagTypeHead
		}
		if result[i].Category != result[j].Category {
			return result[i].Category < result[j].Category
		}
		return result[i].Name < result[j].Name
	})
	return result
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
