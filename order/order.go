// Package order holds the order domain model, commit-time validation,
// and the durable order log.
package order

import (
	"fmt"
	"strings"
	"time"
)

// LineItem is one ordered unit. Name is always a menu-exact string;
// free text from the customer never lands here directly.
type LineItem struct {
	Category       string `json:"category"`
	Name           string `json:"name"`
	Size           string `json:"size,omitempty"`
	Quantity       int    `json:"quantity"`
	SpecialRequest string `json:"special_request,omitempty"`
}

// String renders the item the way it appears in summaries and in the
// context injected into LLM turns: "2x Large Chicken Surprise".
func (li LineItem) String() string {
	parts := []string{fmt.Sprintf("%dx", li.Quantity)}
	if li.Size != "" {
		parts = append(parts, li.Size)
	}
	parts = append(parts, li.Name)
	return strings.Join(parts, " ")
}

// ConfirmedOrder is the persisted record of a successful commit.
// Immutable once written.
type ConfirmedOrder struct {
	OrderID    string     `json:"order_id"`
	Timestamp  time.Time  `json:"timestamp"`
	Items      []LineItem `json:"items"`
	Address    string     `json:"address"`
	Phone      string     `json:"phone"`
	TotalItems int        `json:"total_items"`
	Status     string     `json:"status"`
}
