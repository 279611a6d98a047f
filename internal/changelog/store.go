// Package changelog stores the mutation history of schemas. Each canvas
// operation contributes one entry; hosts query the log for audit views and
// undo-style tooling.
package changelog

import (
	"context"
	"time"

	"github.com/matthewbaird/formcanvas/internal/event"
)

// Entry is one recorded mutation.
type Entry = event.ChangeEvent

// QueryOptions filter a change-log query.
type QueryOptions struct {
	Since *time.Time
	Until *time.Time
	Ops   []event.Op
	Limit int // 0 means the default page size
}

// DefaultLimit caps a query when no explicit limit is given.
const DefaultLimit = 100

// Store persists change entries.
type Store interface {
	// Append writes entries in order.
	Append(ctx context.Context, entries []Entry) error
	// BySchema returns a schema's entries, newest first.
	BySchema(ctx context.Context, schemaID string, opts QueryOptions) ([]Entry, error)
}
