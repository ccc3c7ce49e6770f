package enums

import (
	"fmt"
	"strings"
)

// ItemCategory represents the canonical perishable-goods categories.
type ItemCategory string

const (
	ItemCategoryFruit     ItemCategory = "fruit"
	ItemCategoryVegetable ItemCategory = "vegetable"
)

var validItemCategories = []ItemCategory{
	ItemCategoryFruit,
	ItemCategoryVegetable,
}

// String implements fmt.Stringer.
func (c ItemCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ItemCategory.
func (c ItemCategory) IsValid() bool {
	for _, candidate := range validItemCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseItemCategory normalizes raw input (trim + lowercase) into an ItemCategory.
func ParseItemCategory(value string) (ItemCategory, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validItemCategories {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item category %q", value)
}
