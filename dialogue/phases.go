package dialogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/room4-2/OpenOrder/extract"
	"github.com/room4-2/OpenOrder/order"
)

// Flavors shown before "and more" when the customer didn't ask for the
// full menu.
const truncatedMenuLen = 8

// handleItemRequest covers the greeting and ask_item phases, which
// share behavior: list the menu, start a pizza sub-flow, or delegate.
func (s *Session) handleItemRequest(ctx context.Context, utterance, hint string) Reply {
	if extract.IsMenuInquiry(utterance) {
		s.Phase = PhaseAskItem
		return Reply{Text: s.menuListing(utterance) + " What would you like to order?"}
	}

	if extract.IsPizzaRequest(utterance) {
		return s.startPizza(utterance)
	}

	return s.delegate(ctx, utterance, hint)
}

// startPizza begins the flavor/size sub-flow from a pizza-category
// request: quantity always extracts, flavor may already be present.
func (s *Session) startPizza(utterance string) Reply {
	qty := extract.Quantity(utterance)
	s.Pending = &order.LineItem{Category: "Pizza", Quantity: qty}

	if flavor, ok := extract.Flavor(utterance, s.catalog.Flavors()); ok {
		s.Pending.Name = extract.Title(flavor)
		s.Phase = PhaseAskSize
		return Reply{Text: fmt.Sprintf("Great! %d %s pizza. Which size? Small, Regular, Medium, Large, or XXL?", qty, s.Pending.Name)}
	}

	s.Phase = PhaseAskFlavor
	return Reply{Text: fmt.Sprintf("Sure! %d pizza. Which flavor would you like?", qty)}
}

func (s *Session) handleAskFlavor(ctx context.Context, utterance string) Reply {
	if extract.IsMenuInquiry(utterance) {
		return Reply{Text: s.menuListing(utterance) + " Which one would you like?"}
	}

	if flavor, ok := extract.Flavor(utterance, s.catalog.Flavors()); ok {
		if s.Pending == nil {
			s.Pending = &order.LineItem{Category: "Pizza", Quantity: 1}
		}
		s.Pending.Name = extract.Title(flavor)
		s.Phase = PhaseAskSize
		return Reply{Text: fmt.Sprintf("%s pizza! Which size? Small, Regular, Medium, Large, or XXL?", s.Pending.Name)}
	}

	return s.delegate(ctx, utterance, "Customer is choosing a pizza flavor.")
}

func (s *Session) handleAskSize(ctx context.Context, utterance string) Reply {
	size, ok := extract.Size(utterance, s.catalog.Sizes(), s.catalog.SizeAliases())
	if !ok {
		return s.delegate(ctx, utterance, "Customer is choosing a pizza size. Available: Small, Regular, Medium, Large, XXL.")
	}

	if s.Pending == nil || s.Pending.Name == "" {
		// Size arrived with nothing to attach it to; restart the item.
		s.Pending = nil
		s.Phase = PhaseAskItem
		return Reply{Text: "Which pizza was that for? What would you like to order?"}
	}

	s.Pending.Size = extract.Title(size)
	s.Cart = append(s.Cart, *s.Pending)
	added := *s.Pending
	s.Pending = nil
	s.Phase = PhaseAskMore

	return Reply{Text: fmt.Sprintf("Perfect! %d %s %s added. Anything else?", added.Quantity, added.Size, added.Name)}
}

func (s *Session) handleAskMore(ctx context.Context, utterance string) Reply {
	if extract.IsDone(utterance) {
		switch {
		case !extract.IsValidAddress(s.Address):
			s.Phase = PhaseCollectAddress
			return Reply{Text: "Great! Now, please provide your full delivery address."}
		case !extract.IsValidPhone(s.Phone):
			s.Phase = PhaseCollectPhone
			return Reply{Text: "Got the address. And your phone number please?"}
		default:
			// Everything already collected, go straight to confirm.
			s.Phase = PhaseConfirmOrder
			return Reply{Text: s.confirmationSummary()}
		}
	}

	if extract.IsPizzaRequest(utterance) {
		return s.startPizza(utterance)
	}

	hint := fmt.Sprintf("Customer can add more items or finish the order. Current items: %d.", len(s.Cart))
	return s.delegate(ctx, utterance, hint)
}

// handleCollectAddress takes the utterance verbatim as the delivery
// address; no extraction is attempted on purpose.
func (s *Session) handleCollectAddress(utterance string) Reply {
	s.Address = utterance
	s.Phase = PhaseCollectPhone
	return Reply{Text: "Got it! And your phone number please?"}
}

func (s *Session) handleCollectPhone(utterance string) Reply {
	phone, ok := extract.PhoneDigits(utterance)
	if !ok {
		return Reply{Text: "I didn't catch the phone number. Please say it again?"}
	}

	s.Phone = phone
	s.Phase = PhaseConfirmOrder
	return Reply{Text: s.confirmationSummary()}
}

func (s *Session) handleConfirmOrder(ctx context.Context, utterance string) Reply {
	if !extract.IsAffirmative(utterance) {
		s.Phase = PhaseAskMore
		return Reply{Text: "No problem. What would you like to change?"}
	}

	reply := s.tryCommit(ctx)
	if reply.Done {
		reply.Text = fmt.Sprintf("Perfect! Your order %s is confirmed. Estimated delivery in 30-45 minutes. Thank you!", reply.Order.OrderID)
	}
	return *reply
}

// menuListing enumerates flavors: all of them when the customer asked
// for everything, a truncated sample plus "and more" otherwise.
func (s *Session) menuListing(utterance string) string {
	flavors := s.catalog.Flavors()
	titled := make([]string, len(flavors))
	for i, f := range flavors {
		titled[i] = extract.Title(f)
	}

	if extract.WantsFullMenu(utterance) || len(titled) <= truncatedMenuLen {
		return fmt.Sprintf("We have %s.", strings.Join(titled, ", "))
	}
	return fmt.Sprintf("We have pizzas like %s, and more.", strings.Join(titled[:truncatedMenuLen], ", "))
}
