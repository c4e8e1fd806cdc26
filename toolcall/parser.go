package toolcall

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

var (
	addItemRe    = regexp.MustCompile(`(?s)\[ADD_ITEM:\s*(\{.*?\})\]`)
	setDetailsRe = regexp.MustCompile(`(?s)\[SET_DETAILS:\s*(\{.*?\})\]`)
	bracketTagRe = regexp.MustCompile(`(?s)\[.*?\]`)
)

const saveOrderTag = "[SAVE_ORDER]"

// Parse scans one LLM reply for directives. Each of the three patterns
// is matched at most once, in a fixed order; decode failures are
// logged and skipped.
func Parse(reply string) []Call {
	var calls []Call

	if m := addItemRe.FindStringSubmatch(reply); m != nil {
		if call, err := decodeAddItem(m[1]); err != nil {
			log.Printf("⚠️ Failed to parse ADD_ITEM payload: %v (raw: %s)", err, m[1])
		} else {
			calls = append(calls, call)
		}
	}

	if m := setDetailsRe.FindStringSubmatch(reply); m != nil {
		if call, err := decodeSetDetails(m[1]); err != nil {
			log.Printf("⚠️ Failed to parse SET_DETAILS payload: %v (raw: %s)", err, m[1])
		} else {
			calls = append(calls, call)
		}
	}

	if strings.Contains(reply, saveOrderTag) {
		calls = append(calls, SaveOrder{})
	}

	return calls
}

// Clean strips all bracketed directive markup from a reply, leaving
// the human-readable text to surface to the customer.
func Clean(reply string) string {
	cleaned := strings.TrimSpace(bracketTagRe.ReplaceAllString(reply, ""))
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		// The model emitted only tool markup.
		return "Done."
	}
	return cleaned
}

// decodePayload unmarshals a directive body, accepting strict JSON
// first and falling back to relaxed Python-literal syntax (single
// quotes, None/True/False, bare ...).
func decodePayload(raw string, v any) error {
	if err := sonic.UnmarshalString(raw, v); err == nil {
		return nil
	}
	relaxed := pythonLiteralToJSON(raw)
	if err := sonic.UnmarshalString(relaxed, v); err != nil {
		return fmt.Errorf("payload is neither valid JSON nor a recognizable literal: %w", err)
	}
	return nil
}

func decodeAddItem(raw string) (AddItem, error) {
	var payload struct {
		Name     any `json:"name"`
		Size     any `json:"size"`
		Quantity any `json:"quantity"`
	}
	if err := decodePayload(raw, &payload); err != nil {
		return AddItem{}, err
	}

	call := AddItem{Quantity: sanitizeQuantity(payload.Quantity)}

	if name, ok := sanitizeField(payload.Name); ok {
		call.Name = name
	} else {
		call.Incomplete = true
	}
	if size, ok := sanitizeField(payload.Size); ok {
		call.Size = size
	} else {
		call.Incomplete = true
	}
	return call, nil
}

func decodeSetDetails(raw string) (SetDetails, error) {
	var payload map[string]any
	if err := decodePayload(raw, &payload); err != nil {
		return SetDetails{}, err
	}

	var call SetDetails
	if v, present := payload["address"]; present {
		call.HasAddress = true
		call.Address, _ = v.(string)
	}
	if v, present := payload["phone"]; present {
		call.HasPhone = true
		call.Phone = stringify(v)
	}
	return call, nil
}

// sanitizeQuantity maps a placeholder or unusable quantity to 1.
func sanitizeQuantity(v any) int {
	switch q := v.(type) {
	case float64:
		if q >= 1 {
			return int(q)
		}
	case int:
		if q >= 1 {
			return q
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(q)); err == nil && n >= 1 {
			return n
		}
	}
	return 1
}

// sanitizeField nulls out a missing, empty, or ellipsis-placeholder
// value. ok is false when the field is unusable.
func sanitizeField(v any) (string, bool) {
	s, isString := v.(string)
	if !isString || s == "" || strings.Contains(s, "...") {
		return "", false
	}
	return s, true
}

// stringify renders phone payloads that arrive as bare numbers.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatInt(int64(t), 10)
	default:
		return ""
	}
}
