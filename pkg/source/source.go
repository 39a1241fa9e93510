// Package source abstracts where block graphs come from. The engine
// itself only ever sees a fully-populated in-memory graph; a Source is
// the collaborator that materializes one by document ID.
//
// Two implementations are provided: [FileSource] reads a directory of
// graph JSON files, [MongoSource] reads graphs stored in a MongoDB
// collection. Both are read-only; writing documents is out of scope for
// this module.
package source

import (
	"context"
	"errors"

	"github.com/notewerk/blocktree/pkg/block"
)

// ErrNotFound is returned by [Source.Load] when no document exists
// under the requested ID.
var ErrNotFound = errors.New("document not found")

// Source lists and loads block-graph documents.
type Source interface {
	// List returns the available document IDs in sorted order.
	List(ctx context.Context) ([]string, error)

	// Load materializes the graph for one document.
	// Returns ErrNotFound when the ID is unknown.
	Load(ctx context.Context, id string) (block.Graph, error)
}
