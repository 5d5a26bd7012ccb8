package events

import (
	"context"
	"encoding/json"

	"mesa/config"
	"mesa/infras/kafka"
	"mesa/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Broadcaster fans a serialized event out to connected clients.
type Broadcaster interface {
	Broadcast(topic string, payload []byte)
}

type relay struct {
	cfg         *config.Config
	broadcaster Broadcaster
	producer    kafka.Client
}

// NewRelay wires the publisher to the websocket hub and, when enabled,
// the Kafka producer for external consumers.
func NewRelay(cfg *config.Config, broadcaster Broadcaster, producer kafka.Client) Publisher {
	return &relay{
		cfg:         cfg,
		broadcaster: broadcaster,
		producer:    producer,
	}
}

// Publish delivers the event asynchronously. Failures are logged and
// swallowed so a broken subscriber can never fail the write that
// triggered the event.
func (r *relay) Publish(ctx context.Context, topic string, payload any) {
	envelope := Envelope{
		Topic:     topic,
		Payload:   payload,
		EmittedAt: timezone.Now(),
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to marshal event")

		return
	}

	detached := context.WithoutCancel(ctx)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Any("panic", rec).Str("topic", topic).Msg("event delivery panicked")
			}
		}()

		r.broadcaster.Broadcast(topic, data)

		if r.cfg.Kafka.Enable && r.producer != nil {
			message := kafka.Message{
				Key:   topic,
				Value: envelope,
			}

			if err := r.producer.SendMessages(detached, r.cfg.Kafka.Topic, message); err != nil {
				log.Error().Err(err).Str("topic", topic).Msg("failed to produce event to kafka")
			}
		}
	}()
}
