package dialogue

import (
	"fmt"
	"strings"

	"github.com/room4-2/OpenOrder/extract"
	"github.com/room4-2/OpenOrder/menu"
)

const systemPromptTemplate = `You are a friendly restaurant order assistant.

AVAILABLE PIZZA FLAVORS: %s
AVAILABLE SIZES: Small, Regular, Medium, Large, XXL

TOOLS:
1. ` + "`[ADD_ITEM: {\"name\": \"...\", \"size\": \"...\", \"quantity\": ...}]`" + `
   - Use this IMMEDIATELY when the user confirms an item.
2. ` + "`[SET_DETAILS: {\"address\": \"...\", \"phone\": \"...\"}]`" + `
   - Use this when the user provides address and phone.
3. ` + "`[SAVE_ORDER]`" + `
   - Use this ONLY when the order is CONFIRMED and you have address and phone.

RULES:
1. Keep responses SHORT (max 15 words).
2. Use tools explicitly with valid JSON.
3. If address/phone is missing, ask for it.
4. Do NOT use ` + "`[SAVE_ORDER]`" + ` or say "Order Confirmed" if you don't have the address and phone.
5. If STATUS says MISSING DETAILS, you MUST ask for them. NEVER confirm.
6. NEVER use placeholders like "..." in tools. Ask the user if you don't know and wait for their response.
7. Example: "Got it! [SET_DETAILS: {"address": "123 Main", "phone": "555"}] Confirm order?"

Respond naturally.`

// SystemPrompt renders the collaborator's standing instructions with
// the catalog's flavor vocabulary baked in.
func SystemPrompt(catalog *menu.Catalog) string {
	flavors := make([]string, 0, len(catalog.Flavors()))
	for _, f := range catalog.Flavors() {
		flavors = append(flavors, extract.Title(f))
	}
	return fmt.Sprintf(systemPromptTemplate, strings.Join(flavors, ", "))
}

// buildTurnContext assembles the state injection for a delegated turn:
// the cart, explicit address/phone presence markers, and the
// confirmation guard. This is what keeps the collaborator from
// confirming an incomplete order.
func (s *Session) buildTurnContext(hint string) string {
	var b strings.Builder

	cart := "Empty"
	if len(s.Cart) > 0 {
		items := make([]string, len(s.Cart))
		for i, item := range s.Cart {
			items[i] = item.String()
		}
		cart = strings.Join(items, ", ")
	}
	fmt.Fprintf(&b, "Current Order Cart: [%s]. ", cart)

	var missing []string
	if extract.IsValidAddress(s.Address) {
		fmt.Fprintf(&b, "Address: %s. ", s.Address)
	} else {
		b.WriteString("Address: NOT PROVIDED. ")
		missing = append(missing, "Address")
	}
	if extract.IsValidPhone(s.Phone) {
		fmt.Fprintf(&b, "Phone: %s. ", s.Phone)
	} else {
		b.WriteString("Phone: NOT PROVIDED. ")
		missing = append(missing, "Phone")
	}

	if len(missing) > 0 {
		fmt.Fprintf(&b, "STATUS: MISSING DETAILS (%s). DO NOT CONFIRM ORDER. ASK FOR MISSING DETAILS.", strings.Join(missing, ", "))
	} else {
		b.WriteString("STATUS: ALL DETAILS PRESENT. READY TO CONFIRM.")
	}

	if hint != "" {
		b.WriteString(" " + hint)
	}

	// While an item is mid-construction the model tends to acknowledge
	// without calling the tool; push it to commit the slot values.
	if s.Pending != nil || s.Phase == PhaseAskItem || s.Phase == PhaseAskFlavor || s.Phase == PhaseAskSize {
		b.WriteString(" IMPORTANT: If the user provided item details (name/size/quantity), you MUST use the `[ADD_ITEM]` tool in your response. Do not just blindly acknowledge.")
	}

	return b.String()
}
