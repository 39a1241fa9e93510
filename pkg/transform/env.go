package transform

import "github.com/notewerk/blocktree/pkg/block"

// Env bundles the collaborator hooks the engine calls during traversal.
// Any nil field falls back to the default below, so callers override
// only what they need:
//
//	env := &transform.Env{
//	    MapImageURL: func(src string, b *block.Block) string {
//	        return proxyURL + url.QueryEscape(src)
//	    },
//	}
type Env struct {
	// TextContent flattens a rich-text property before it is placed
	// into extracted content. The default returns the spans as-is.
	TextContent func(rt block.RichText) block.RichText

	// MapImageURL resolves the raw source of an image or video block
	// to a servable URL. The default is a pass-through.
	MapImageURL func(src string, b *block.Block) string

	// FindListIndex computes the start number for a list block. The
	// default returns the block's 1-based position within its
	// contiguous run of same-type siblings.
	FindListIndex func(id string, g block.Graph) int

	// TopLevelPage resolves the nearest top-level page ancestor of a
	// block: following the contained-by-page relation upward, the
	// first page with no further page ancestor. Used by
	// table_of_contents extraction. The default climbs ParentID links.
	TopLevelPage func(b *block.Block, g block.Graph) *block.Block
}

// fill returns a copy of e with nil hooks replaced by defaults. A nil
// receiver yields all defaults.
func (e *Env) fill() Env {
	var out Env
	if e != nil {
		out = *e
	}
	if out.TextContent == nil {
		out.TextContent = func(rt block.RichText) block.RichText { return rt }
	}
	if out.MapImageURL == nil {
		out.MapImageURL = func(src string, _ *block.Block) string { return src }
	}
	if out.FindListIndex == nil {
		out.FindListIndex = DefaultListIndex
	}
	if out.TopLevelPage == nil {
		out.TopLevelPage = DefaultTopLevelPage
	}
	return out
}

// DefaultListIndex returns the 1-based position of the block within the
// contiguous run of same-type siblings it belongs to. A numbered list
// item preceded by two other numbered items yields 3; the first item of
// a run (or a block without a resolvable parent) yields 1.
func DefaultListIndex(id string, g block.Graph) int {
	b, ok := g.Block(id)
	if !ok {
		return 1
	}
	parent, ok := g.Block(b.ParentID)
	if !ok {
		return 1
	}

	index := 1
	for _, sibID := range parent.ContentIDs {
		if sibID == id {
			return index
		}
		sib, ok := g.Block(sibID)
		switch {
		case !ok:
			// Missing siblings do not break the run.
		case sib.Type == b.Type:
			index++
		default:
			index = 1
		}
	}
	return index
}

// DefaultTopLevelPage climbs ParentID links from b and returns the last
// page block found before the chain leaves the graph, i.e. the page with
// no further page ancestor. Returns nil when no page ancestor exists.
func DefaultTopLevelPage(b *block.Block, g block.Graph) *block.Block {
	var top *block.Block
	if b.Type == block.TypePage {
		top = b
	}
	seen := map[string]bool{b.ID: true}
	cur := b
	for {
		parent, ok := g.Block(cur.ParentID)
		if !ok || seen[parent.ID] {
			return top
		}
		seen[parent.ID] = true
		if parent.Type == block.TypePage {
			top = parent
		}
		cur = parent
	}
}
