// Package extract holds the deterministic text extractors the dialogue
// state machine tries before delegating a turn to the LLM. Every
// function here is pure: no state, no I/O, never panics on any input.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	digitTokenRe = regexp.MustCompile(`\b(\d+)\b`)
	phoneRe      = regexp.MustCompile(`\d{9,15}`)
	wordRe       = regexp.MustCompile(`[a-z']+`)
)

var numberWords = []struct {
	word string
	n    int
}{
	{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5},
	{"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10},
}

// Quantity finds the first standalone digit token in text, then falls
// back to number words one..ten. Defaults to 1 so the result is always
// a usable item count.
func Quantity(text string) int {
	if m := digitTokenRe.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil && n >= 1 {
			return n
		}
	}
	lower := strings.ToLower(text)
	for _, nw := range numberWords {
		if containsWord(lower, nw.word) {
			return nw.n
		}
	}
	return 1
}

// Flavor matches text against a lowercase flavor vocabulary by
// substring containment. First match wins; callers that care about
// specificity must order the vocabulary accordingly.
func Flavor(text string, vocabulary []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, flavor := range vocabulary {
		if strings.Contains(lower, flavor) {
			return flavor, true
		}
	}
	return "", false
}

// Size resolves a size mention to its canonical form. Typo/alias forms
// are checked first, longest key first, so "extra large" resolves to
// xxl before "large" alone can match. Canonical tokens are checked
// after the aliases.
func Size(text string, sizes []string, aliases map[string]string) (string, bool) {
	lower := strings.ToLower(text)

	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		if strings.Contains(lower, k) {
			return aliases[k], true
		}
	}

	for _, size := range sizes {
		if strings.Contains(lower, size) {
			return size, true
		}
	}
	return "", false
}

// PhoneDigits pulls a 9-15 digit run out of an utterance after
// stripping spaces and dashes.
func PhoneDigits(text string) (string, bool) {
	stripped := strings.NewReplacer(" ", "", "-", "").Replace(text)
	if m := phoneRe.FindString(stripped); m != "" {
		return m, true
	}
	return "", false
}

// IsValidAddress checks an address is plausibly complete: non-empty,
// at least 5 characters, and free of placeholder ellipses.
func IsValidAddress(s string) bool {
	return s != "" && len(s) >= 5 && !strings.Contains(s, "...")
}

// IsValidPhone checks a stored phone value: non-empty, at least 9
// characters, and containing at least one digit.
func IsValidPhone(s string) bool {
	if s == "" || len(s) < 9 {
		return false
	}
	return strings.ContainsAny(s, "0123456789")
}

// Title renders a lowercase vocabulary entry for display, capitalizing
// each word. "xxl" becomes "XXL" rather than "Xxl".
func Title(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if w == "xxl" || w == "xl" || w == "bbq" {
			words[i] = strings.ToUpper(w)
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func containsWord(lowerText, word string) bool {
	for _, w := range wordRe.FindAllString(lowerText, -1) {
		if w == word {
			return true
		}
	}
	return false
}
