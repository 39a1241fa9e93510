// Package transform converts a flat block graph into an arbitrary typed
// output tree, driven by a caller-supplied set of per-kind building
// rules.
//
// # Overview
//
// [Transform] recursively walks a [block.Graph] from a root ID. For each
// visited block it resolves an output [Kind], extracts the kind-specific
// [Content] payload, transforms the children where the kind recurses,
// and invokes the matching [Builder] from the caller's [Rules]. The
// output type is fully generic; the engine never inspects it.
//
// Two traversal rules are deliberately special-cased:
//
//   - A page block below the root resolves to [KindPageLink] and becomes
//     a leaf. Only the document root expands into its children.
//   - A table_of_contents block ignores its own children and instead
//     scans the direct children of its containing top-level page for
//     header-family blocks.
//
// # Skips and errors
//
// Missing blocks and unregistered kinds are skips, not errors: the node
// simply produces no output and is dropped from its parent's children.
// Real errors are typed: [CyclicGraphError] when a block is reachable
// from itself, and [MalformedBlockError] when a variant-required field
// is absent. Unrecognized type tags resolve to [KindUnknown] so callers
// can opt in to handling them.
//
// # Collaborators
//
// Text flattening, image URL mapping, list start numbering and
// top-level-page resolution are pluggable through [Env]; each has a
// sensible default.
//
// # Grouping
//
// [GroupSiblings] is the companion run-grouping algorithm: it partitions
// an ordered sibling list into maximal runs of contiguous same-type
// blocks, which rendering layers use for visual grouping. [GroupAll] is
// the whole-graph variant.
package transform
