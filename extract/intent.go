package extract

import (
	"regexp"
	"strings"
)

var (
	menuKeywordRe = regexp.MustCompile(`\b(list|menu|have|available|options|flavors|flavours|all|tell me)\b`)
	whatRe        = regexp.MustCompile(`\bwhat\b`)
	whatMenuRe    = regexp.MustCompile(`\b(menu|have|available)\b`)
	allRe         = regexp.MustCompile(`\b(all|tell me all)\b`)
)

var pizzaKeywords = []string{"pizza", "pie", "piza", "picza", "pizz", "slice"}

var exitKeywords = map[string]bool{
	"exit": true, "quit": true, "bye": true, "cancel": true,
}

var orderInquiryKeywords = []string{
	"what i ordered", "my order", "cart", "basket",
	"what did i order", "what have i ordered", "check order",
}

var doneWords = []string{"no", "nope", "done", "finish", "finished", "nothing", "bas", "enough"}

var donePhrases = []string{"that's all", "thats all", "that is all"}

var affirmativeWords = []string{"yes", "yeah", "correct", "confirm"}

// IsPizzaRequest reports whether the utterance mentions a pizza,
// tolerating common transcription misspellings.
func IsPizzaRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range pizzaKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsMenuInquiry reports whether the customer is asking what is
// available. Short keywords use word boundaries; a bare "what" only
// counts when paired with menu/have/available.
func IsMenuInquiry(text string) bool {
	lower := strings.ToLower(text)
	if menuKeywordRe.MatchString(lower) {
		return true
	}
	return whatRe.MatchString(lower) && whatMenuRe.MatchString(lower)
}

// WantsFullMenu reports whether the customer asked for everything
// rather than a sample ("all", "tell me all").
func WantsFullMenu(text string) bool {
	return allRe.MatchString(strings.ToLower(text))
}

// IsExit reports whether the utterance is a session-ending keyword.
// Only exact matches count so "cancel the fries" doesn't hang up.
func IsExit(text string) bool {
	return exitKeywords[strings.TrimSpace(strings.ToLower(text))]
}

// IsOrderInquiry reports whether the customer asked what is in their
// cart so far.
func IsOrderInquiry(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range orderInquiryKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsDone reports whether the customer signalled the cart is complete.
// Single keywords are matched on word boundaries so "another pizza"
// doesn't trip on the "no" inside "another".
func IsDone(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range donePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	for _, word := range doneWords {
		if containsWord(lower, word) {
			return true
		}
	}
	return false
}

// IsAffirmative reports whether the utterance confirms the order.
func IsAffirmative(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range affirmativeWords {
		if containsWord(lower, word) {
			return true
		}
	}
	return false
}
