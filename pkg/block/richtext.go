package block

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Span is one segment of rich text: a run of characters plus the
// decorations applied to it. Each decoration is a tuple whose first
// element names the mark ("b", "i", "c", ...) and whose remaining
// elements carry mark arguments (e.g. the target of an "a" link).
type Span struct {
	Text  string
	Marks [][]string
}

// RichText is an ordered sequence of spans. On the wire it is encoded as
// an array of [text, decorations?] pairs:
//
//	[["Hello ", [["b"]]], ["world"]]
type RichText []Span

// TextContent concatenates the plain text of all spans, dropping
// decorations. This is the flattening used for titles, captions and
// table-of-contents entries.
func (rt RichText) TextContent() string {
	var sb strings.Builder
	for _, s := range rt {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Plain builds a RichText holding a single undecorated span.
func Plain(text string) RichText {
	return RichText{{Text: text}}
}

// MarshalJSON encodes the span in its wire pair form.
func (s Span) MarshalJSON() ([]byte, error) {
	if len(s.Marks) == 0 {
		return json.Marshal([]any{s.Text})
	}
	return json.Marshal([]any{s.Text, s.Marks})
}

// UnmarshalJSON decodes a [text, decorations?] pair. A bare string is
// accepted as an undecorated span for convenience.
func (s *Span) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		s.Text = text
		s.Marks = nil
		return nil
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("span: expected [text, decorations?] pair: %w", err)
	}
	if len(pair) == 0 {
		return fmt.Errorf("span: empty pair")
	}
	if err := json.Unmarshal(pair[0], &s.Text); err != nil {
		return fmt.Errorf("span text: %w", err)
	}
	s.Marks = nil
	if len(pair) > 1 {
		if err := json.Unmarshal(pair[1], &s.Marks); err != nil {
			return fmt.Errorf("span decorations: %w", err)
		}
	}
	return nil
}
