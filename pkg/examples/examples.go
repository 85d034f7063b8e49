// Package examples ships a starter tag library for new projects.
package examples

import (
	"fmt"

	"github.com/promptdeck/promptdeck/pkg/models"
	"github.com/promptdeck/promptdeck/pkg/tags"
)

// StarterCollection returns a small tag library that demonstrates the
// head/tail split: quality and style tags up front, negatives and
// renderer parameters at the end.
func StarterCollection() models.TagCollection {
	col := models.NewTagCollection()

	col[models.TagTypeHead]["Quality"] = models.Category{
		"Masterpiece": {En: "masterpiece, best quality"},
		"8K":          {En: "8k, ultra detailed"},
	}
	col[models.TagTypeHead]["Style"] = models.Category{
		"Cinematic":  {En: "cinematic lighting, film grain"},
		"Watercolor": {En: "watercolor painting"},
		"Cyberpunk":  {En: "cyberpunk, neon lights"},
	}
	col[models.TagTypeHead]["Camera"] = models.Category{
		"Close-up":   {En: "close-up shot"},
		"Wide Angle": {En: "wide angle lens"},
	}

	col[models.TagTypeTail]["Negative"] = models.Category{
		"Blurry":      {En: "--no blurry"},
		"Extra Limbs": {En: "--no extra limbs"},
	}
	col[models.TagTypeTail]["Parameters"] = models.Category{
		"Landscape": {En: "--ar 16:9"},
		"Portrait":  {En: "--ar 2:3"},
		"Stylize":   {En: "--stylize 250"},
	}

	return col
}

// Install writes the starter library to the store. An existing
// non-empty library is left alone unless force is set.
func Install(store *tags.Store, force bool) (bool, error) {
	existing, err := store.Load()
	if err != nil {
		return false, fmt.Errorf("failed to read tag library: %w", err)
	}

	if !force {
		for _, tagType := range models.TagTypes {
			if len(existing[tagType]) > 0 {
				return false, nil
			}
		}
	}

	if err := store.Save(StarterCollection()); err != nil {
		return false, fmt.Errorf("failed to write starter library: %w", err)
	}
	return true, nil
}
