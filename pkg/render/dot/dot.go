// Package dot renders the structure of a block graph as a Graphviz
// node-link diagram. It is a debugging surface: the boxes show block
// types and title previews, missing children render as dashed
// placeholders, and page links are highlighted since they terminate
// traversal.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/notewerk/blocktree/pkg/block"
)

// Options configures diagram generation.
type Options struct {
	// MaxLabel truncates title previews to this many runes.
	// Zero means the default of 24.
	MaxLabel int
}

// ToDOT converts the subtree reachable from rootID to Graphviz DOT.
// Traversal follows content lists depth-first and visits every block at
// most once, so cyclic graphs are safe to diagram (the closing edge is
// drawn, not followed).
func ToDOT(g block.Graph, rootID string, opts Options) string {
	maxLabel := opts.MaxLabel
	if maxLabel <= 0 {
		maxLabel = 24
	}

	var buf bytes.Buffer
	buf.WriteString("digraph blocks {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	visited := map[string]bool{}
	var walk func(id string)
	walk = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true

		b, ok := g.Block(id)
		if !ok {
			fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,dashed\", fontcolor=grey];\n", id, "missing")
			return
		}

		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(nodeAttrs(b, maxLabel), ", "))
		for _, childID := range b.ContentIDs {
			fmt.Fprintf(&buf, "  %q -> %q;\n", id, childID)
			walk(childID)
		}
	}
	walk(rootID)

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(b *block.Block, maxLabel int) []string {
	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(b, maxLabel))}
	switch {
	case b.Type == block.TypePage:
		attrs = append(attrs, "fillcolor=lightyellow")
	case b.Type.IsHeader():
		attrs = append(attrs, "fillcolor=lightblue")
	}
	return attrs
}

func nodeLabel(b *block.Block, maxLabel int) string {
	label := string(b.Type)
	if title := b.Title().TextContent(); title != "" {
		runes := []rune(title)
		if len(runes) > maxLabel {
			title = string(runes[:maxLabel]) + "…"
		}
		label += "\n" + title
	}
	return label
}

// RenderSVG renders a DOT diagram to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
