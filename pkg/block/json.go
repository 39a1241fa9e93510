package block

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a graph to JSON bytes.
// Blocks are keyed and ordered by ID for deterministic output.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph as JSON to an io.Writer.
func WriteGraph(g Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// WriteGraphFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// ReadGraph decodes a JSON block graph from an io.Reader.
//
// The input is a JSON object mapping block IDs to block records:
//
//	{
//	  "root": {"type": "page", "properties": {"title": [["Hi"]]}, "content": ["a"]},
//	  "a":    {"type": "text", "properties": {"title": [["Hello"]]}}
//	}
//
// A record's "id" field is optional; when omitted it is filled in from
// the map key. When both are present and disagree, ReadGraph fails.
func ReadGraph(r io.Reader) (Graph, error) {
	return readGraphFrom(r)
}

// ReadGraphFile reads a JSON file and returns the decoded graph.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g Graph, w io.Writer) error {
	// encoding/json sorts map keys, which gives the deterministic
	// ID ordering we want. Encode through an ordered copy anyway so a
	// nil graph serializes as {} rather than null.
	out := make(map[string]*Block, len(g))
	for id, b := range g {
		out[id] = b
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (Graph, error) {
	var raw map[string]*Block
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := make(Graph, len(raw))
	for id, b := range raw {
		if b == nil {
			continue
		}
		if b.ID == "" {
			b.ID = id
		} else if b.ID != id {
			return nil, fmt.Errorf("block %q: id field %q does not match map key", id, b.ID)
		}
		g[id] = b
	}
	return g, nil
}
