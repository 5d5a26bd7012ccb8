// Package events is the outbound port for domain notifications.
// Services publish here after a successful write; delivery is
// best-effort and never influences the request outcome.
package events

import (
	"context"
	"time"
)

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

const (
	TopicReservationCreated   = "reservation.created"
	TopicReservationUpdated   = "reservation.updated"
	TopicReservationCancelled = "reservation.cancelled"
	TopicTablesOccupancy      = "tables.occupancy"
	TopicOccupancyChanged     = "tables.occupancyChanged"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, payload any)
}

// Envelope is the wire shape fanned out to subscribers.
type Envelope struct {
	Topic     string    `json:"topic"`
	Payload   any       `json:"payload"`
	EmittedAt time.Time `json:"emitted_at"`
}

// OccupancyChange is the delta payload for TopicOccupancyChanged.
type OccupancyChange struct {
	TableID  string    `json:"table_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}
