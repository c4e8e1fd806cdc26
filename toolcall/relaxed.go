package toolcall

import "strings"

// pythonLiteralToJSON rewrites a Python-dict-style payload into JSON:
// single-quoted strings become double-quoted, None/True/False become
// null/true/false, and a bare Ellipsis (or ...) becomes the "..."
// placeholder string so the sanitizers can catch it. The input is
// small (one directive body), so a rune-by-rune pass is fine.
func pythonLiteralToJSON(raw string) string {
	var out strings.Builder
	out.Grow(len(raw))

	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch r {
		case '"':
			// Already-JSON string: copy through verbatim.
			out.WriteRune('"')
			for i++; i < len(runes); i++ {
				out.WriteRune(runes[i])
				if runes[i] == '\\' && i+1 < len(runes) {
					i++
					out.WriteRune(runes[i])
					continue
				}
				if runes[i] == '"' {
					break
				}
			}

		case '\'':
			// Single-quoted string: convert to double quotes,
			// escaping any embedded double quotes.
			out.WriteRune('"')
			for i++; i < len(runes); i++ {
				c := runes[i]
				if c == '\\' && i+1 < len(runes) {
					i++
					next := runes[i]
					if next == '\'' {
						out.WriteRune('\'')
					} else {
						out.WriteRune('\\')
						out.WriteRune(next)
					}
					continue
				}
				if c == '\'' {
					break
				}
				if c == '"' {
					out.WriteString(`\"`)
					continue
				}
				out.WriteRune(c)
			}
			out.WriteRune('"')

		default:
			if word, n := matchWord(runes[i:]); n > 0 {
				out.WriteString(word)
				i += n - 1
				continue
			}
			out.WriteRune(r)
		}
	}

	return out.String()
}

// matchWord recognizes the Python literals that have JSON spellings.
func matchWord(runes []rune) (string, int) {
	for _, w := range []struct {
		python, json string
	}{
		{"None", "null"},
		{"True", "true"},
		{"False", "false"},
		{"Ellipsis", `"..."`},
		{"...", `"..."`},
	} {
		if hasPrefix(runes, w.python) {
			return w.json, len(w.python)
		}
	}
	return "", 0
}

func hasPrefix(runes []rune, s string) bool {
	if len(runes) < len(s) {
		return false
	}
	return string(runes[:len(s)]) == s
}
