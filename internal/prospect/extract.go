package prospect

import "github.com/rotisserie/eris"

// extractJSONObject returns the first balanced {...} substring of s. Models
// routinely wrap JSON in prose, so strict whole-string parsing is not an
// option; brace counting is string- and escape-aware so braces inside JSON
// string values don't break the balance.
func extractJSONObject(s string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range s {
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}

	if start < 0 {
		return "", eris.New("prospect: no JSON object in text")
	}
	return "", eris.New("prospect: unterminated JSON object in text")
}
