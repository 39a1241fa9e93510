// Package render provides document rendering for block graphs.
//
// # Overview
//
// This package contains the renderers that turn a traversed block graph
// into output documents:
//
//   - Markdown documents (in [markdown] subpackage)
//   - Graphviz structure diagrams (in [dot] subpackage)
//
// # Markdown
//
// The [markdown] subpackage walks a graph from a root block and emits a
// Markdown document, grouping adjacent list items into runs and mapping
// rich-text decorations to inline Markdown syntax.
//
//	md, err := markdown.Render(g, rootID, nil)
//
// # Structure Diagrams
//
// The [dot] subpackage emits the parent/child structure of a graph in
// Graphviz DOT form and can rasterize it to SVG.
//
//	d := dot.ToDOT(g, rootID, dot.Options{})
//	svg, err := dot.RenderSVG(d)
//
// [markdown]: github.com/notewerk/blocktree/pkg/render/markdown
// [dot]: github.com/notewerk/blocktree/pkg/render/dot
package render
