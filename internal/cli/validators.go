package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/promptdeck/promptdeck/pkg/models"
)

// ValidateTagType validates a tag type string
func ValidateTagType(t string) error {
	if models.ValidTagType(strings.ToLower(t)) {
		return nil
	}
	return fmt.Errorf("%w: %s", models.ErrInvalidTagType, t)
}

// NormalizeTagType converts type variants to standard form
func NormalizeTagType(t string) string {
	if strings.ToLower(t) == models.TagTypeTail {
		return models.TagTypeTail
	}
	return models.TagTypeHead
}

// ParsePageID parses a positive page id from a command argument
func ParsePageID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid page id: %s", arg)
	}
	if id < 1 {
		return 0, fmt.Errorf("invalid page id: %d (must be positive)", id)
	}
	return id, nil
}

// ValidatePageName checks a page name for emptiness
func ValidatePageName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("page name cannot be empty")
	}
	return nil
}
