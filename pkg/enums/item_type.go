package enums

import "fmt"

// ItemType describes the allowed values for the `item_type` columns.
type ItemType string

const (
	ItemTypeConsumable    ItemType = "Consumable"
	ItemTypeNonConsumable ItemType = "Non Consumable"
)

var validItemTypes = []ItemType{
	ItemTypeConsumable,
	ItemTypeNonConsumable,
}

// IsValid reports whether the value matches the canonical item type enum.
func (i ItemType) IsValid() bool {
	for _, candidate := range validItemTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseItemType converts the raw string to ItemType.
func ParseItemType(value string) (ItemType, error) {
	for _, candidate := range validItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item type %q", value)
}
