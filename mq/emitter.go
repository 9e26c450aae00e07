package mq

import (
	"context"
	"encoding/json"
	"log"

	"parkscout/models"
	"parkscout/rdx"
)

// Channel carrying saved-park and session change events. Consumers subscribe
// here instead of watching shared storage.
const eventChannel = "park-events"

// Emit publishes a typed change event to Redis.
func Emit(ctx context.Context, eventName string, content models.Event) {
	content.Method = eventName

	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, eventChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event to Redis: %v", err)
		return
	}
}

// Subscribe returns a channel of decoded events. The returned channel closes
// when ctx is cancelled.
func Subscribe(ctx context.Context) <-chan models.Event {
	sub := rdx.Conn.Subscribe(ctx, eventChannel)
	out := make(chan models.Event)

	go func() {
		defer close(out)
		defer sub.Close()
		for msg := range sub.Channel() {
			var event models.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[Subscribe] Failed to parse event: %v", err)
				continue
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
