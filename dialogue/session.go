// Package dialogue implements the ordering conversation: a phase-based
// state machine that resolves each customer utterance deterministically
// when the lexical extractors can, and delegates to the LLM
// collaborator with injected order context when they cannot.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/room4-2/OpenOrder/extract"
	"github.com/room4-2/OpenOrder/menu"
	"github.com/room4-2/OpenOrder/order"
	"github.com/room4-2/OpenOrder/toolcall"
)

// Phase is a state of the dialogue state machine.
type Phase string

const (
	PhaseGreeting       Phase = "greeting"
	PhaseAskItem        Phase = "ask_item"
	PhaseAskFlavor      Phase = "ask_flavor"
	PhaseAskSize        Phase = "ask_size"
	PhaseAskMore        Phase = "ask_more"
	PhaseCollectAddress Phase = "collect_address"
	PhaseCollectPhone   Phase = "collect_phone"
	PhaseConfirmOrder   Phase = "confirm_order"
	PhaseCompleted      Phase = "completed"
)

// Scripted fallback when the LLM collaborator fails; the phase stays
// where it was and the customer simply repeats themselves.
const fallbackReply = "I didn't catch that. Could you say it again?"

// Completer is the LLM collaborator. One call per delegated turn, no
// internal retries; the deadline comes from the passed context or the
// implementation's own configuration.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Reply is the outcome of one processed turn.
type Reply struct {
	Text  string
	Done  bool                  // session ended (commit or cancel)
	Order *order.ConfirmedOrder // set when a commit ended the session
}

// Session is one ordering conversation. It is mutated only by
// ProcessTurn, one utterance at a time; callers must not process turns
// concurrently.
type Session struct {
	ID         string
	Phase      Phase
	Cart       []order.LineItem
	Pending    *order.LineItem
	Address    string
	Phone      string
	Transcript *Transcript

	catalog   *menu.Catalog
	completer Completer
	committer *order.Committer
}

// NewSession creates a session in the greeting phase with the system
// prompt already seeded into the transcript.
func NewSession(id string, catalog *menu.Catalog, completer Completer, committer *order.Committer, maxTranscript int) *Session {
	s := &Session{
		ID:         id,
		Phase:      PhaseGreeting,
		Transcript: NewTranscript(maxTranscript),
		catalog:    catalog,
		completer:  completer,
		committer:  committer,
	}
	s.Transcript.Append(RoleSystem, SystemPrompt(catalog))
	return s
}

// Greeting is the opening line the turn loop surfaces before the first
// utterance.
func (s *Session) Greeting() string {
	return "Hi! Welcome to our restaurant. What can I get you today?"
}

// ProcessTurn applies one customer utterance: global rules first (exit,
// order inquiry), then the current phase's behavior. A turn either
// fully applies or leaves the session unchanged apart from transcript
// growth; the phase only advances on a fully-applied turn.
func (s *Session) ProcessTurn(ctx context.Context, utterance string) Reply {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return Reply{Text: "Sorry, could you repeat that?"}
	}

	if extract.IsExit(utterance) {
		s.Phase = PhaseCompleted
		return Reply{Text: "Thanks for calling! Have a great day!", Done: true}
	}

	// An order inquiry answers in place and does not consume a
	// transition.
	if extract.IsOrderInquiry(utterance) {
		return Reply{Text: s.cartSummary()}
	}

	switch s.Phase {
	case PhaseGreeting:
		return s.handleItemRequest(ctx, utterance, "Customer just started the conversation. Guide them to order pizza.")
	case PhaseAskItem:
		return s.handleItemRequest(ctx, utterance, "Customer should order pizza. Guide them naturally.")
	case PhaseAskFlavor:
		return s.handleAskFlavor(ctx, utterance)
	case PhaseAskSize:
		return s.handleAskSize(ctx, utterance)
	case PhaseAskMore:
		return s.handleAskMore(ctx, utterance)
	case PhaseCollectAddress:
		return s.handleCollectAddress(utterance)
	case PhaseCollectPhone:
		return s.handleCollectPhone(utterance)
	case PhaseConfirmOrder:
		return s.handleConfirmOrder(ctx, utterance)
	case PhaseCompleted:
		return Reply{Text: "This order is already wrapped up. Thanks again!", Done: true}
	default:
		log.Printf("⚠️ [%s] Unknown phase %q, resetting to greeting", s.shortID(), s.Phase)
		s.Phase = PhaseGreeting
		return Reply{Text: s.Greeting()}
	}
}

// cartSummary renders the current cart for an order inquiry.
func (s *Session) cartSummary() string {
	if len(s.Cart) == 0 {
		return "You haven't ordered anything yet."
	}
	items := make([]string, len(s.Cart))
	for i, item := range s.Cart {
		items[i] = item.String()
	}
	return fmt.Sprintf("You have ordered: %s.", strings.Join(items, ", "))
}

// confirmationSummary renders the full itemized yes/no prompt.
func (s *Session) confirmationSummary() string {
	items := make([]string, len(s.Cart))
	for i, item := range s.Cart {
		items[i] = item.String()
	}
	return fmt.Sprintf("Let me confirm. %s. Delivering to %s. Phone %s. Is this correct?",
		strings.Join(items, ", "), s.Address, s.Phone)
}

// delegate hands the turn to the LLM collaborator with the order
// context injected, applies any tool calls from the reply, and
// surfaces the cleaned text. The raw reply (markup included) goes into
// the transcript so the collaborator's history reflects the tool calls
// it already issued.
func (s *Session) delegate(ctx context.Context, utterance, hint string) Reply {
	turnContext := s.buildTurnContext(hint)
	s.Transcript.Append(RoleUser, fmt.Sprintf("Instruction: %s\nUser: %s", turnContext, utterance))

	raw, err := s.completer.Complete(ctx, s.Transcript.Messages())
	if err != nil {
		log.Printf("❌ [%s] LLM error: %v", s.shortID(), err)
		s.Transcript.Append(RoleModel, fallbackReply)
		return Reply{Text: fallbackReply}
	}

	s.Transcript.Append(RoleModel, raw)

	if done := s.applyCalls(ctx, toolcall.Parse(raw)); done != nil {
		return *done
	}
	return Reply{Text: toolcall.Clean(raw)}
}

// applyCalls mutates the session per the decoded directives. A non-nil
// return means a SaveOrder directive committed the order and the
// session is over.
func (s *Session) applyCalls(ctx context.Context, calls []toolcall.Call) *Reply {
	for _, call := range calls {
		switch c := call.(type) {
		case toolcall.AddItem:
			s.applyAddItem(c)

		case toolcall.SetDetails:
			// Last write wins, no merge.
			if c.HasAddress {
				s.Address = c.Address
			}
			if c.HasPhone {
				s.Phone = c.Phone
			}
			log.Printf("📝 [%s] Details set: address=%q phone=%q", s.shortID(), s.Address, s.Phone)

		case toolcall.SaveOrder:
			if len(s.Cart) == 0 || s.Address == "" || s.Phone == "" {
				// Not an error the customer should hear about this turn.
				log.Printf("⚠️ [%s] SAVE_ORDER ignored: cart or details missing", s.shortID())
				continue
			}
			if reply := s.tryCommit(ctx); reply != nil {
				return reply
			}
		}
	}
	return nil
}

// applyAddItem appends a complete item to the cart, or stashes an
// incomplete-but-named item as pending and forces the size prompt so
// the missing slot is re-collected deterministically.
func (s *Session) applyAddItem(c toolcall.AddItem) {
	item := order.LineItem{
		Category: "Pizza",
		Name:     c.Name,
		Size:     c.Size,
		Quantity: c.Quantity,
	}

	if c.Incomplete {
		if c.Name == "" {
			log.Printf("⚠️ [%s] Ignored ADD_ITEM with no name", s.shortID())
			return
		}
		s.Pending = &item
		s.Phase = PhaseAskSize
		log.Printf("🔄 [%s] Partial item stashed, waiting for size: %s", s.shortID(), item.Name)
		return
	}

	s.Cart = append(s.Cart, item)
	log.Printf("📦 [%s] Added item: %s", s.shortID(), item.String())
}

// tryCommit attempts the commit triggered by a SaveOrder directive.
func (s *Session) tryCommit(ctx context.Context) *Reply {
	confirmed, err := s.committer.Commit(ctx, s.Cart, s.Address, s.Phone, s.catalog.SizeRequired)
	if err != nil {
		var missing *order.MissingError
		if errors.As(err, &missing) {
			reply := s.routeMissing(missing)
			return &reply
		}
		// Persistence failure: recoverable, stay put.
		log.Printf("❌ [%s] Commit failed: %v", s.shortID(), err)
		return &Reply{Text: "I cannot save the order yet. Please try again in a moment."}
	}

	s.Phase = PhaseCompleted
	return &Reply{
		Text:  fmt.Sprintf("Order %s placed successfully!", confirmed.OrderID),
		Done:  true,
		Order: confirmed,
	}
}

// routeMissing surfaces a validation failure and redirects the phase
// to whichever collection step can fix it.
func (s *Session) routeMissing(missing *order.MissingError) Reply {
	msg := fmt.Sprintf("I can't confirm yet (%s).", strings.Join(missing.Reasons, ", "))
	switch {
	case missing.MissingAddress():
		s.Phase = PhaseCollectAddress
		return Reply{Text: msg + " Please provide your full delivery address."}
	case missing.MissingPhone():
		s.Phase = PhaseCollectPhone
		return Reply{Text: msg + " And your phone number please?"}
	default:
		s.Phase = PhaseAskMore
		return Reply{Text: msg + " What would you like to change?"}
	}
}

func (s *Session) shortID() string {
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}
