package ai

import "errors"

var ErrNoJSONObject = errors.New("no JSON object in response")

// ExtractJSONObject returns the first balanced {...} span in raw. Models wrap
// their output in prose or markdown fences often enough that naive
// unmarshalling of the whole response is not an option.
func ExtractJSONObject(raw string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range raw {
		if start == -1 {
			if r == '{' {
				start = i
				depth = 1
			}
			continue
		}

		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return raw[start : i+1], nil
				}
			}
		}
	}
	return "", ErrNoJSONObject
}
