// Package block models the flat, graph-shaped document representation
// produced by the upstream document service: a mapping from block ID to
// block record, where each record names its children by ID.
//
// # Overview
//
// The central type is [Graph], a map from opaque string IDs to [Block]
// records. A record carries a closed-set [Type] tag, a [Properties] bag
// of rich-text fields keyed by role, optional [Format] presentation
// hints, and the ordered IDs of its children. A child ID listed by a
// parent is allowed to be absent from the graph; consumers treat that as
// a terminal case, never an error.
//
// Rich text is an ordered sequence of [Span] values, each a text run
// plus decoration tuples. [RichText.TextContent] flattens a sequence to
// plain text.
//
// # Serialization
//
// [ReadGraph] and [MarshalGraph] (plus their file variants) convert
// between graphs and the JSON wire shape, with deterministic ID ordering
// on output.
//
// # Building graphs in code
//
//	g := block.Graph{}
//	page := g.Add(block.New(block.TypePage).WithTitle("Notes"))
//	g.AppendChild(page, block.New(block.TypeText).WithTitle("Hello"))
//
// The graph is read-only input to the transform engine in
// package transform; nothing in this module mutates a graph after it is
// handed over.
package block
