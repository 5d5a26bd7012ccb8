package model

import (
	"time"

	"mesa/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID         = "id"
	FieldCustomerID = "customer_id"
	FieldTableID    = "table_id"
	FieldPartySize  = "party_size"
	FieldStartsAt   = "starts_at"
	FieldEndsAt     = "ends_at"
	FieldStatus     = "status"
)

const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusNoShow    = "NOSHOW"
	StatusDone      = "DONE"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusNoShow, StatusDone:
		return true
	default:
		return false
	}
}

// Reservation holds one table for one customer over [StartsAt, EndsAt).
type Reservation struct {
	ID         string    `db:"id"`
	CustomerID string    `db:"customer_id"`
	TableID    string    `db:"table_id"`
	PartySize  int       `db:"party_size"`
	StartsAt   time.Time `db:"starts_at"`
	EndsAt     time.Time `db:"ends_at"`
	Status     string    `db:"status"`
	Notes      *string   `db:"notes"`
	model.Metadata
}

// Finished reports whether the reservation has fully elapsed at ref.
func (r Reservation) Finished(ref time.Time) bool {
	return !r.EndsAt.After(ref)
}
