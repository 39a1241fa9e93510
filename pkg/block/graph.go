package block

import (
	"maps"
	"slices"
)

// Graph is the full mapping of block IDs to block records for a document
// and its descendants. Lookups are by ID only; insertion order carries no
// meaning. The graph is a plain map so callers can build it directly, but
// [Graph.Add] and the [New] helpers keep IDs and parent links consistent.
//
// Graph is not safe for concurrent mutation. Concurrent reads are fine.
type Graph map[string]*Block

// Block returns the record for id and true, or nil and false when the ID
// is absent. Absence is a valid terminal case, not an error: a parent may
// list children that have been deleted or are inaccessible.
func (g Graph) Block(id string) (*Block, bool) {
	b, ok := g[id]
	return b, ok
}

// Add inserts the block under its own ID and returns it. A block with an
// empty ID is ignored.
func (g Graph) Add(b *Block) *Block {
	if b == nil || b.ID == "" {
		return b
	}
	g[b.ID] = b
	return b
}

// AppendChild links child under parent: the child's ID is appended to the
// parent's content list and its ParentID is set. Both blocks must already
// carry IDs. Returns the child for chaining.
func (g Graph) AppendChild(parent, child *Block) *Block {
	parent.ContentIDs = append(parent.ContentIDs, child.ID)
	child.ParentID = parent.ID
	g.Add(parent)
	g.Add(child)
	return child
}

// IDs returns all block IDs in sorted order. Sorting makes iteration
// deterministic where the map order would not be.
func (g Graph) IDs() []string {
	return slices.Sorted(maps.Keys(g))
}
