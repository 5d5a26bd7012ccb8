package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mesa/config"
	"mesa/infras/kafka"
	kafkaMocks "mesa/infras/kafka/mocks"
	"mesa/internal/events"
)

type captureBroadcaster struct {
	frames chan broadcastFrame
}

type broadcastFrame struct {
	topic   string
	payload []byte
}

func newCaptureBroadcaster() *captureBroadcaster {
	return &captureBroadcaster{frames: make(chan broadcastFrame, 8)}
}

func (c *captureBroadcaster) Broadcast(topic string, payload []byte) {
	c.frames <- broadcastFrame{topic: topic, payload: payload}
}

func (c *captureBroadcaster) wait(t *testing.T) broadcastFrame {
	t.Helper()

	select {
	case frame := <-c.frames:
		return frame
	case <-time.After(2 * time.Second):
		t.Fatal("no broadcast received")

		return broadcastFrame{}
	}
}

func TestRelay_PublishBroadcastsAnEnvelope(t *testing.T) {
	broadcaster := newCaptureBroadcaster()

	cfg := &config.Config{}

	relay := events.NewRelay(cfg, broadcaster, nil)
	relay.Publish(context.Background(), "reservation.created", map[string]string{"id": "r1"})

	frame := broadcaster.wait(t)
	assert.Equal(t, "reservation.created", frame.topic)

	var envelope events.Envelope

	require.NoError(t, json.Unmarshal(frame.payload, &envelope))
	assert.Equal(t, "reservation.created", envelope.Topic)
	assert.False(t, envelope.EmittedAt.IsZero())
}

func TestRelay_PublishProducesToKafkaWhenEnabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	broadcaster := newCaptureBroadcaster()
	producer := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Enable = true
	cfg.Kafka.Topic = "mesa-events"

	produced := make(chan kafka.Message, 1)

	producer.EXPECT().
		SendMessages(gomock.Any(), "mesa-events", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			produced <- messages[0]

			return nil
		})

	relay := events.NewRelay(cfg, broadcaster, producer)
	relay.Publish(context.Background(), "tables.occupancy", map[string]int{"occupied": 3})

	broadcaster.wait(t)

	select {
	case message := <-produced:
		assert.Equal(t, "tables.occupancy", message.Key)
	case <-time.After(2 * time.Second):
		t.Fatal("no kafka message produced")
	}
}

func TestRelay_PublishSkipsKafkaWhenDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	broadcaster := newCaptureBroadcaster()
	producer := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Enable = false

	relay := events.NewRelay(cfg, broadcaster, producer)
	relay.Publish(context.Background(), "tables.occupancy", map[string]int{"occupied": 3})

	// The broadcast still happens; the producer must stay untouched.
	broadcaster.wait(t)
}
