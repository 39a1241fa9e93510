package block

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSpanUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Span
	}{
		{
			name:  "PlainPair",
			input: `["Hello"]`,
			want:  Span{Text: "Hello"},
		},
		{
			name:  "BareString",
			input: `"Hello"`,
			want:  Span{Text: "Hello"},
		},
		{
			name:  "Decorated",
			input: `["link", [["a", "https://example.com"], ["b"]]]`,
			want:  Span{Text: "link", Marks: [][]string{{"a", "https://example.com"}, {"b"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Span
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSpanRoundTrip(t *testing.T) {
	rt := RichText{
		{Text: "Hello ", Marks: [][]string{{"b"}}},
		{Text: "world"},
	}
	data, err := json.Marshal(rt)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var back RichText
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !reflect.DeepEqual(back, rt) {
		t.Errorf("round trip = %+v, want %+v", back, rt)
	}
}

func TestTextContent(t *testing.T) {
	rt := RichText{
		{Text: "Buy ", Marks: [][]string{{"b"}}},
		{Text: "milk"},
	}
	if got := rt.TextContent(); got != "Buy milk" {
		t.Errorf("TextContent = %q, want %q", got, "Buy milk")
	}
	if got := (RichText)(nil).TextContent(); got != "" {
		t.Errorf("nil TextContent = %q, want empty", got)
	}
}

func TestPropertiesFirst(t *testing.T) {
	p := Properties{
		PropLink: Plain("https://example.com"),
	}
	if got := p.First(PropLink); got != "https://example.com" {
		t.Errorf("First(link) = %q", got)
	}
	if got := p.First(PropTitle); got != "" {
		t.Errorf("First(absent) = %q, want empty", got)
	}
	var nilProps Properties
	if got := nilProps.First(PropTitle); got != "" {
		t.Errorf("nil bag First = %q, want empty", got)
	}
}
