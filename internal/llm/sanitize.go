package llm

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// CleanModelOutput strips markdown fences and surrounding chatter and returns
// the JSON object the model produced.
func CleanModelOutput(text string) ([]byte, error) {
	s := StripCodeFences(text)
	if !gjson.Valid(s) {
		// fall back to the outermost {...} span
		start, end := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}')
		if start < 0 || end <= start {
			return nil, fmt.Errorf("%w: no JSON object found", ErrUnparseable)
		}
		s = s[start : end+1]
		if !gjson.Valid(s) {
			return nil, fmt.Errorf("%w: %s", ErrUnparseable, truncate(s, 200))
		}
	}
	if !gjson.Parse(s).IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrUnparseable)
	}
	return []byte(s), nil
}

func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
