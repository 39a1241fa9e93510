package transform

import "fmt"

// CyclicGraphError reports a child ID that is reachable from itself. ID
// names the block that closes the cycle. The engine refuses to recurse
// into such graphs instead of running unbounded.
type CyclicGraphError struct {
	ID string
}

func (e *CyclicGraphError) Error() string {
	return fmt.Sprintf("block graph cycle closed at %q", e.ID)
}

// MalformedBlockError reports a block missing a field its variant
// assumes to be present (e.g. a bookmark without a link property).
type MalformedBlockError struct {
	ID    string
	Field string
}

func (e *MalformedBlockError) Error() string {
	return fmt.Sprintf("block %q: missing required %s property", e.ID, e.Field)
}
