package tags

import "github.com/promptdeck/promptdeck/pkg/models"

// Statistics aggregates counts over a page's tag collection. Computing it
// is a single full pass; it is meant to be called on demand, not per
// render.
type Statistics struct {
	TotalTags    int            `json:"total_tags" yaml:"total_tags"`
	SelectedTags int            `json:"selected_tags" yaml:"selected_tags"`
	HeadTags     int            `json:"head_tags" yaml:"head_tags"`
	TailTags     int            `json:"tail_tags" yaml:"tail_tags"`
	HeadSelected int            `json:"head_selected" yaml:"head_selected"`
	TailSelected int            `json:"tail_selected" yaml:"tail_selected"`
	Categories   map[string]int `json:"tabs" yaml:"tabs"`
}

// Statistics returns aggregate counts for the bound page's collection.
func (m *Manager) Statistics() Statistics {
	stats := Statistics{
		Categories: map[string]int{
			models.TagTypeHead: 0,
			models.TagTypeTail: 0,
		},
	}

	col := m.collection()
	for _, tagType := range models.TagTypes {
		stats.Categories[tagType] = len(col[tagType])
		for _, cat := range col[tagType] {
			for _, attrs := range cat {
				stats.TotalTags++
				if tagType == models.TagTypeHead {
					stats.HeadTags++
				} else {
					stats.TailTags++
				}
				if attrs.Selected {
					stats.SelectedTags++
					if tagType == models.TagTypeHead {
						stats.HeadSelected++
					} else {
						stats.TailSelected++
					}
				}
			}
		}
	}
	return stats
}
