package order

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Log is the append-only durable store a commit writes to. The core
// never reads an order back within a session.
type Log interface {
	Append(ctx context.Context, o *ConfirmedOrder) error
}

// Committer turns a validated cart into a ConfirmedOrder and persists
// it. Commit is the single point at which session state becomes
// durable.
type Committer struct {
	Log Log

	// Overridable for tests.
	now   func() time.Time
	newID func() string
}

// NewCommitter creates a committer writing to log.
func NewCommitter(log Log) *Committer {
	return &Committer{
		Log:   log,
		now:   time.Now,
		newID: newOrderID,
	}
}

func newOrderID() string {
	id := strings.ToUpper(uuid.New().String())
	return "ORD-" + id[:8]
}

// Commit validates the cart and, on success, appends a confirmed order
// to the log. Validation failure returns a *MissingError and has no
// side effects. Exactly one log append happens per successful commit.
func (c *Committer) Commit(ctx context.Context, items []LineItem, address, phone string, sizeRequired func(string) bool) (*ConfirmedOrder, error) {
	if missing := Validate(items, address, phone, sizeRequired); missing != nil {
		log.Printf("❌ Order validation failed: %v", missing)
		return nil, missing
	}

	snapshot := make([]LineItem, len(items))
	copy(snapshot, items)

	confirmed := &ConfirmedOrder{
		OrderID:    c.newID(),
		Timestamp:  c.now(),
		Items:      snapshot,
		Address:    address,
		Phone:      phone,
		TotalItems: len(snapshot),
		Status:     "confirmed",
	}

	if err := c.Log.Append(ctx, confirmed); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	log.Printf("🧾 Order %s committed (%d items)", confirmed.OrderID, confirmed.TotalItems)
	return confirmed, nil
}
