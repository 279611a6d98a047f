package eventbus

import (
	"context"
	"log"

	"github.com/matthewbaird/formcanvas/internal/event"
)

// LogConsumer prints every change event. Useful when developing a host
// integration against the editor.
func LogConsumer() Handler {
	return HandlerFunc(func(_ context.Context, evt event.ChangeEvent) error {
		log.Printf("change %s schema=%s item=%s: %s", evt.Op, evt.SchemaID, evt.ItemID, evt.Summary)
		return nil
	})
}
