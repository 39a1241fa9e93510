// Package pkg provides the core libraries for Blocktree document rendering.
//
// # Overview
//
// Blocktree converts block-based document graphs (pages built from typed
// blocks that reference their children by ID) into rendered documents.
// The pkg directory is organized into five main areas:
//
//  1. [block] - Graph model (blocks, rich text, JSON wire format)
//  2. [transform] - Graph traversal and typed content extraction
//  3. [render] - Output renderers (Markdown, Graphviz)
//  4. [pipeline] - Cached render orchestration shared by CLI and server
//  5. [cache], [source] - Storage backends for artifacts and documents
//
// [block]: github.com/notewerk/blocktree/pkg/block
// [transform]: github.com/notewerk/blocktree/pkg/transform
// [render]: github.com/notewerk/blocktree/pkg/render
// [pipeline]: github.com/notewerk/blocktree/pkg/pipeline
// [cache]: github.com/notewerk/blocktree/pkg/cache
// [source]: github.com/notewerk/blocktree/pkg/source
package pkg
