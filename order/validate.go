package order

import (
	"fmt"
	"strings"

	"github.com/room4-2/OpenOrder/extract"
)

// MissingError reports why a cart cannot be committed. Reasons keep
// the exact field wording ("valid address", "size for item 2") so the
// state machine can route the customer back to the right collection
// phase.
type MissingError struct {
	Reasons []string
}

func (e *MissingError) Error() string {
	return "missing details: " + strings.Join(e.Reasons, ", ")
}

// MissingAddress reports whether the address is among the failures.
func (e *MissingError) MissingAddress() bool {
	return e.has("address")
}

// MissingPhone reports whether the phone number is among the failures.
func (e *MissingError) MissingPhone() bool {
	return e.has("phone")
}

func (e *MissingError) has(field string) bool {
	for _, r := range e.Reasons {
		if strings.Contains(r, field) {
			return true
		}
	}
	return false
}

func isPlaceholder(s string) bool {
	return s == "" || strings.Contains(s, "...")
}

// Validate checks a cart plus delivery details for commit readiness.
// sizeRequired tells which categories need a size (the menu catalog's
// SizeRequired method fits). A nil return means the order may commit.
func Validate(items []LineItem, address, phone string, sizeRequired func(category string) bool) *MissingError {
	var missing []string

	if len(items) == 0 {
		missing = append(missing, "items")
	}
	for i, item := range items {
		if sizeRequired != nil && sizeRequired(item.Category) && isPlaceholder(item.Size) {
			missing = append(missing, fmt.Sprintf("size for item %d", i+1))
		}
		if isPlaceholder(item.Name) {
			missing = append(missing, fmt.Sprintf("name for item %d", i+1))
		}
	}

	if !extract.IsValidAddress(address) {
		missing = append(missing, "valid address")
	}
	if !extract.IsValidPhone(phone) {
		missing = append(missing, "valid phone number")
	}

	if len(missing) > 0 {
		return &MissingError{Reasons: missing}
	}
	return nil
}
