package enums

import (
	"fmt"
	"strings"
)

// allowedConsumableItems is the fixed catalogue of office supplies the
// central stock office stocks as consumables. Intakes, issuances and
// consumable indents outside this list are rejected.
var allowedConsumableItems = []string{
	"Brown Tape",
	"Transparent Tap Medium Size",
	"Clip Binder small",
	"Clip M Size (Boxes)",
	"Diary Register",
	"Fevicol (Gum) 100 Gram Bottle",
	"File Board",
	"File Cover with DSEU print",
	"File Tag Small (Bunch)",
	"Multi Color Flag/ Post it (pkt)",
	"Nothing Sheet Legal- Ream",
	"Paper Ream (A4 Size)",
	"Pen Uniball Black",
	"Punching Machine Double",
	"Stapler Heavy Duty",
	"Stapler Small",
	"Tissue Box",
	"Extension Cord (Multiple Switches)",
}

// IsAllowedConsumable reports whether the item name is in the consumable catalogue.
func IsAllowedConsumable(itemName string) bool {
	for _, candidate := range allowedConsumableItems {
		if candidate == itemName {
			return true
		}
	}
	return false
}

// ValidateConsumableItem rejects consumable items outside the catalogue.
// Non-consumable items are unrestricted.
func ValidateConsumableItem(itemName string, itemType ItemType) error {
	if itemType != ItemTypeConsumable {
		return nil
	}
	if IsAllowedConsumable(itemName) {
		return nil
	}
	return fmt.Errorf(
		"invalid item for Consumable: %q. Must be one of: %s",
		itemName, strings.Join(allowedConsumableItems, ", "),
	)
}
