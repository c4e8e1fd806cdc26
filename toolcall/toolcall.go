// Package toolcall scans LLM replies for the bracketed directives the
// model is prompted to emit and decodes them into typed calls. Parsing
// is pure: the same reply always yields the same calls, and a
// malformed payload degrades to "no directive" instead of an error.
package toolcall

// Call is a decoded directive from an LLM reply. Exactly three
// variants exist: AddItem, SetDetails, and SaveOrder.
type Call interface {
	isCall()
}

// AddItem asks for an item to be added to the cart. When the model
// emitted a placeholder for the size (or name), the payload is
// sanitized and Incomplete is set so the state machine can re-prompt
// deterministically instead of trusting the model again.
type AddItem struct {
	Name       string // empty when the model sent a placeholder
	Size       string // empty when the model sent a placeholder
	Quantity   int    // always >= 1
	Incomplete bool
}

func (AddItem) isCall() {}

// SetDetails carries delivery details. A present field overwrites the
// session value unconditionally; Has* distinguishes "absent" from
// "present but empty".
type SetDetails struct {
	Address    string
	Phone      string
	HasAddress bool
	HasPhone   bool
}

func (SetDetails) isCall() {}

// SaveOrder is the bare commit marker. It carries no payload.
type SaveOrder struct{}

func (SaveOrder) isCall() {}
