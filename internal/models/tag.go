package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/goaltrack/internal/constants"
)

// Tag labels logged events. Archiving a tag flips Active to false but never
// deletes it; historical events keep pointing at it.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeCategory lowercases and trims a category string so that built-in
// and custom categories compare case-insensitively.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

func (t *Tag) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tag name cannot be empty")
	}
	return nil
}

// IsDefaultCategory reports whether the tag's category is one of the built-in set.
func (t *Tag) IsDefaultCategory() bool {
	normalized := NormalizeCategory(t.Category)
	for _, c := range constants.DefaultTagCategories {
		if c == normalized {
			return true
		}
	}
	return false
}

// Condition is a boolean day attribute (e.g. "traveling") that can gate
// whether a goal applies on a date.
type Condition struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Condition) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("condition name cannot be empty")
	}
	return nil
}
