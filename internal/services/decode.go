package services

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// stripFences removes a surrounding ```json ... ``` block if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// flexText accepts either a JSON string or an array of strings. Arrays are
// rendered as one bullet per line.
type flexText string

func (f *flexText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexText(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return errors.Wrap(err, "expected string or list of strings")
	}
	lines := make([]string, 0, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if !strings.HasPrefix(item, "•") {
			item = "• " + item
		}
		lines = append(lines, item)
	}
	*f = flexText(strings.Join(lines, "\n"))
	return nil
}

func decodeModelJSON(raw string, v any) error {
	if err := json.Unmarshal([]byte(stripFences(raw)), v); err != nil {
		return errors.Wrap(err, "decode model json")
	}
	return nil
}
