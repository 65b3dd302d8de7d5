package events

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish marshals an envelope and publishes it on the viewer event topic.
// Renderer adapters and the simulation CLI are the only publishers.
func Publish(publisher message.Publisher, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal viewer event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := publisher.Publish(Topic, msg); err != nil {
		return fmt.Errorf("failed to publish viewer event: %w", err)
	}
	return nil
}
