package transform

import "github.com/notewerk/blocktree/pkg/block"

// GroupSiblings partitions an ordered list of sibling IDs into maximal
// runs of contiguous same-type blocks. A new run starts exactly at each
// type change, judged by each child's own type tag. IDs that do not
// resolve to a block in the graph are skipped without breaking the run
// on either side.
//
// Rendering layers use the runs to cluster adjacent same-type siblings,
// e.g. wrapping consecutive list items in a single list container.
func GroupSiblings(g block.Graph, ids []string) [][]string {
	var (
		runs    [][]string
		current []string
		prev    block.Type
	)
	for _, id := range ids {
		b, ok := g.Block(id)
		if !ok {
			continue
		}
		if len(current) > 0 && b.Type != prev {
			runs = append(runs, current)
			current = nil
		}
		current = append(current, id)
		prev = b.Type
	}
	if len(current) > 0 {
		runs = append(runs, current)
	}
	return runs
}

// GroupAll applies [GroupSiblings] to the child list of every block in
// the graph that has children, returning one flat collection that mixes
// the runs of every parent (runs are not nested per parent; callers that
// need per-parent runs should call GroupSiblings with the parent's own
// child list). Parents are visited in sorted ID order so the output is
// deterministic.
func GroupAll(g block.Graph) [][]string {
	var runs [][]string
	for _, id := range g.IDs() {
		b := g[id]
		if len(b.ContentIDs) == 0 {
			continue
		}
		runs = append(runs, GroupSiblings(g, b.ContentIDs)...)
	}
	return runs
}
