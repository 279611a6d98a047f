package changelog

import (
	"context"
	"sort"
	"sync"

	"github.com/matthewbaird/formcanvas/internal/event"
)

// MemoryLog implements Store using an in-memory slice. The default for a
// single editing session; nothing outlives the process.
type MemoryLog struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryLog creates an empty MemoryLog.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (l *MemoryLog) Append(_ context.Context, entries []Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entries...)
	return nil
}

func (l *MemoryLog) BySchema(_ context.Context, schemaID string, opts QueryOptions) ([]Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var matched []Entry
	for _, e := range l.entries {
		if e.SchemaID != schemaID {
			continue
		}
		if opts.Since != nil && e.OccurredAt.Before(*opts.Since) {
			continue
		}
		if opts.Until != nil && e.OccurredAt.After(*opts.Until) {
			continue
		}
		if len(opts.Ops) > 0 && !containsOp(opts.Ops, e.Op) {
			continue
		}
		matched = append(matched, e)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].OccurredAt.After(matched[j].OccurredAt)
	})

	limit := opts.Limit
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func containsOp(ops []event.Op, op event.Op) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}
