package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mesa/internal/domains/reservation/model"
	"mesa/internal/domains/reservation/model/dto"
)

func TestCreateReservationRequest_ToModel(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		req := dto.CreateReservationRequest{
			CustomerID: "5f9c2d6e-0000-4000-8000-000000000002",
			TableID:    "5f9c2d6e-0000-4000-8000-000000000001",
			PartySize:  2,
			StartsAt:   "2026-09-02T19:00:00Z",
		}

		reservation, err := req.ToModel()

		assert.NoError(t, err)
		assert.NotEmpty(t, reservation.ID, "expected ID to be generated")
		assert.Equal(t, model.StatusPending, reservation.Status)
		assert.True(t, reservation.EndsAt.IsZero(), "expected missing ends_at to stay zero")
		assert.False(t, reservation.CreatedAt.IsZero(), "expected CreatedAt to be set")
	})

	t.Run("keeps an explicit status and end", func(t *testing.T) {
		endsAt := "2026-09-02T21:00:00Z"

		req := dto.CreateReservationRequest{
			CustomerID: "5f9c2d6e-0000-4000-8000-000000000002",
			TableID:    "5f9c2d6e-0000-4000-8000-000000000001",
			PartySize:  2,
			StartsAt:   "2026-09-02T19:00:00Z",
			EndsAt:     &endsAt,
			Status:     model.StatusConfirmed,
		}

		reservation, err := req.ToModel()

		assert.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, reservation.Status)
		assert.Equal(t, time.Date(2026, 9, 2, 21, 0, 0, 0, time.UTC), reservation.EndsAt.UTC())
	})

	t.Run("rejects a malformed start", func(t *testing.T) {
		req := dto.CreateReservationRequest{
			CustomerID: "5f9c2d6e-0000-4000-8000-000000000002",
			TableID:    "5f9c2d6e-0000-4000-8000-000000000001",
			PartySize:  2,
			StartsAt:   "tonight",
		}

		_, err := req.ToModel()

		assert.Error(t, err)
	})
}

func TestUpdateReservationRequest_ApplyTo(t *testing.T) {
	base := func() model.Reservation {
		return model.Reservation{
			ID:         "reservation-id",
			CustomerID: "5f9c2d6e-0000-4000-8000-000000000002",
			TableID:    "5f9c2d6e-0000-4000-8000-000000000001",
			PartySize:  2,
			StartsAt:   time.Date(2026, 9, 2, 19, 0, 0, 0, time.UTC),
			EndsAt:     time.Date(2026, 9, 2, 21, 0, 0, 0, time.UTC),
			Status:     model.StatusPending,
		}
	}

	t.Run("moving the start alone resets the end", func(t *testing.T) {
		reservation := base()
		startsAt := "2026-09-02T12:00:00Z"

		req := dto.UpdateReservationRequest{StartsAt: &startsAt}

		assert.NoError(t, req.ApplyTo(&reservation))
		assert.Equal(t, time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC), reservation.StartsAt.UTC())
		assert.True(t, reservation.EndsAt.IsZero(), "expected ends_at to be rederived later")
	})

	t.Run("moving both keeps the explicit end", func(t *testing.T) {
		reservation := base()
		startsAt := "2026-09-02T12:00:00Z"
		endsAt := "2026-09-02T14:30:00Z"

		req := dto.UpdateReservationRequest{StartsAt: &startsAt, EndsAt: &endsAt}

		assert.NoError(t, req.ApplyTo(&reservation))
		assert.Equal(t, time.Date(2026, 9, 2, 14, 30, 0, 0, time.UTC), reservation.EndsAt.UTC())
	})

	t.Run("untouched fields survive", func(t *testing.T) {
		reservation := base()
		partySize := 4

		req := dto.UpdateReservationRequest{PartySize: &partySize}

		assert.NoError(t, req.ApplyTo(&reservation))
		assert.Equal(t, 4, reservation.PartySize)
		assert.Equal(t, base().StartsAt, reservation.StartsAt)
		assert.Equal(t, base().EndsAt, reservation.EndsAt)
		assert.Equal(t, model.StatusPending, reservation.Status)
	})

	t.Run("rejects a malformed end", func(t *testing.T) {
		reservation := base()
		endsAt := "later"

		req := dto.UpdateReservationRequest{EndsAt: &endsAt}

		assert.Error(t, req.ApplyTo(&reservation))
	})
}

func TestReservationResponse_FromModel(t *testing.T) {
	notes := "window seat"

	reservation := model.Reservation{
		ID:         "reservation-id",
		CustomerID: "5f9c2d6e-0000-4000-8000-000000000002",
		TableID:    "5f9c2d6e-0000-4000-8000-000000000001",
		PartySize:  2,
		StartsAt:   time.Date(2026, 9, 2, 19, 0, 0, 0, time.UTC),
		EndsAt:     time.Date(2026, 9, 2, 20, 0, 0, 0, time.UTC),
		Status:     model.StatusConfirmed,
		Notes:      &notes,
	}

	var response dto.ReservationResponse
	response.FromModel(reservation)

	assert.Equal(t, reservation.ID, response.ID)
	assert.Equal(t, reservation.Status, response.Status)
	assert.Equal(t, &notes, response.Notes)

	startsAt, err := time.Parse(time.RFC3339, response.StartsAt)
	assert.NoError(t, err)
	assert.True(t, startsAt.Equal(reservation.StartsAt), "expected the instant to survive formatting")
}

func TestGetReservationsResponse_FromModels(t *testing.T) {
	var response dto.GetReservationsResponse
	response.FromModels([]model.Reservation{{ID: "a"}, {ID: "b"}})

	assert.Equal(t, 2, response.TotalData)
	assert.Len(t, response.Reservations, 2)
}
