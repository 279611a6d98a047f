// Package eventbus is an in-process pub/sub bus for schema change events.
// The canvas publishes after each committed mutation; subscribers (autosave,
// logging, host integrations) process the stream off the editing path.
package eventbus

import (
	"context"
	"log"
	"sync"

	"github.com/matthewbaird/formcanvas/internal/event"
)

// Handler processes a change event. Implementations must be safe for
// concurrent calls from different goroutines.
type Handler interface {
	HandleChange(ctx context.Context, evt event.ChangeEvent) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, evt event.ChangeEvent) error

func (f HandlerFunc) HandleChange(ctx context.Context, evt event.ChangeEvent) error {
	return f(ctx, evt)
}

// Bus delivers change events to all subscribers through one buffered channel
// and a single consumer goroutine. Serialized dispatch keeps subscribers
// from observing two mutations out of order.
type Bus struct {
	mu          sync.RWMutex
	subscribers []namedHandler
	events      chan event.ChangeEvent
	done        chan struct{}
}

type namedHandler struct {
	name    string
	handler Handler
}

// New creates a Bus with the given channel buffer size.
func New(bufSize int) *Bus {
	if bufSize < 1 {
		bufSize = 256
	}
	return &Bus{
		events: make(chan event.ChangeEvent, bufSize),
		done:   make(chan struct{}),
	}
}

// Subscribe registers a named handler. Must be called before Start.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, namedHandler{name: name, handler: h})
}

// Publish sends an event to the bus. Non-blocking: if the buffer is full the
// event is dropped with a warning, never stalling the editor.
func (b *Bus) Publish(ctx context.Context, evt event.ChangeEvent) {
	select {
	case b.events <- evt:
	default:
		log.Printf("eventbus: buffer full, dropping %s (%s)", evt.Op, evt.ID)
	}
}

// Start begins the consumer goroutine. It processes events until the context
// is cancelled or Stop is called.
func (b *Bus) Start(ctx context.Context) {
	go func() {
		defer close(b.done)
		for {
			select {
			case evt, ok := <-b.events:
				if !ok {
					return
				}
				b.dispatch(ctx, evt)
			case <-ctx.Done():
				// Drain what is already queued before exiting.
				for {
					select {
					case evt := <-b.events:
						b.dispatch(ctx, evt)
					default:
						return
					}
				}
			}
		}
	}()
}

// Stop closes the bus and waits for the consumer goroutine to finish.
func (b *Bus) Stop() {
	close(b.events)
	<-b.done
}

func (b *Bus) dispatch(ctx context.Context, evt event.ChangeEvent) {
	b.mu.RLock()
	subs := b.subscribers
	b.mu.RUnlock()

	for _, s := range subs {
		if err := s.handler.HandleChange(ctx, evt); err != nil {
			log.Printf("eventbus: %s handler error for %s: %v", s.name, evt.Op, err)
		}
	}
}
