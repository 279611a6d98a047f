package event

import "context"

// Recorder accepts change events from the canvas.
type Recorder interface {
	Record(ctx context.Context, evt ChangeEvent) error
}

// Publisher sends change events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, evt ChangeEvent)
}

// Appender is the slice of the change-log store the recorder needs.
// Satisfied by changelog.Store.
type Appender interface {
	Append(ctx context.Context, entries []ChangeEvent) error
}

// LogRecorder implements Recorder by writing each event to the change log,
// then publishing to the bus if one is attached. Publication only happens
// after a successful write so consumers never see an unlogged change.
type LogRecorder struct {
	log Appender
	bus Publisher
}

// NewLogRecorder creates a recorder backed by the given change log.
func NewLogRecorder(log Appender) *LogRecorder {
	return &LogRecorder{log: log}
}

// SetPublisher attaches an event bus.
func (r *LogRecorder) SetPublisher(p Publisher) {
	r.bus = p
}

func (r *LogRecorder) Record(ctx context.Context, evt ChangeEvent) error {
	if err := r.log.Append(ctx, []ChangeEvent{evt}); err != nil {
		return err
	}
	if r.bus != nil {
		r.bus.Publish(ctx, evt)
	}
	return nil
}
