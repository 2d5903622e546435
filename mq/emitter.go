package mq

import (
	"context"
	"encoding/json"
	"log"
	"medibook/models"
	"medibook/rdx"
)

const channel = "appointment-events"

// Notify is a best-effort broadcast hook; failures are logged, never propagated.
func Notify(eventName string, content models.Index) {
	log.Printf("[mq] %s %+v", eventName, content)
}

// Emit publishes a domain event to the Redis event channel.
func Emit(ctx context.Context, eventName string, content models.Index) {
	content.Method = eventName

	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[mq] failed to marshal %s event: %v", eventName, err)
		return
	}

	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[mq] failed to publish %s event: %v", eventName, err)
	}
}

// StartEventWorker consumes the event channel and logs appointment lifecycle
// events. It blocks; run it in its own goroutine.
func StartEventWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[mq] listening for appointment events...")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[mq] failed to parse event: %v", err)
			continue
		}
		Notify(event.Method, event)
	}
}
