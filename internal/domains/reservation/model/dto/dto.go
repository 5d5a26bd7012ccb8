package dto

import (
	"time"

	"mesa/internal/domains/reservation/model"
	"mesa/shared/constant"
	gDto "mesa/shared/dto"
	gModel "mesa/shared/model"
	"mesa/shared/timezone"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	CustomerID string  `json:"customer_id" validate:"required,uuid4"`
	TableID    string  `json:"table_id"    validate:"required,uuid4"`
	PartySize  int     `json:"party_size"  validate:"required,gt=0"`
	StartsAt   string  `json:"starts_at"   validate:"required"`
	EndsAt     *string `json:"ends_at"     validate:"omitempty"`
	Status     string  `json:"status"      validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED NOSHOW DONE"`
	Notes      *string `json:"notes"       validate:"omitempty,max=500"`
}

// ToModel parses the instants and fills defaults. A nil EndsAt leaves
// the zero time for the service to derive from the slot duration.
func (c *CreateReservationRequest) ToModel() (model.Reservation, error) {
	startsAt, err := time.Parse(constant.DateFormat, c.StartsAt)
	if err != nil {
		return model.Reservation{}, err //nolint:wrapcheck
	}

	var endsAt time.Time
	if c.EndsAt != nil {
		endsAt, err = time.Parse(constant.DateFormat, *c.EndsAt)
		if err != nil {
			return model.Reservation{}, err //nolint:wrapcheck
		}
	}

	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	now := timezone.Now()

	return model.Reservation{
		ID:         uuid.NewString(),
		CustomerID: c.CustomerID,
		TableID:    c.TableID,
		PartySize:  c.PartySize,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		Status:     status,
		Notes:      c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}, nil
}

type UpdateReservationRequest struct {
	CustomerID *string `json:"customer_id" validate:"omitempty,uuid4"`
	TableID    *string `json:"table_id"    validate:"omitempty,uuid4"`
	PartySize  *int    `json:"party_size"  validate:"omitempty,gt=0"`
	StartsAt   *string `json:"starts_at"   validate:"omitempty"`
	EndsAt     *string `json:"ends_at"     validate:"omitempty"`
	Status     *string `json:"status"      validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED NOSHOW DONE"`
	Notes      *string `json:"notes"       validate:"omitempty,max=500"`
}

// ApplyTo merges the non-nil fields into the current reservation.
// Supplying starts_at without ends_at resets the end so the service
// re-derives it from the slot duration.
func (u *UpdateReservationRequest) ApplyTo(reservation *model.Reservation) error {
	if u.CustomerID != nil {
		reservation.CustomerID = *u.CustomerID
	}

	if u.TableID != nil {
		reservation.TableID = *u.TableID
	}

	if u.PartySize != nil {
		reservation.PartySize = *u.PartySize
	}

	if u.StartsAt != nil {
		startsAt, err := time.Parse(constant.DateFormat, *u.StartsAt)
		if err != nil {
			return err //nolint:wrapcheck
		}

		reservation.StartsAt = startsAt

		if u.EndsAt == nil {
			reservation.EndsAt = time.Time{}
		}
	}

	if u.EndsAt != nil {
		endsAt, err := time.Parse(constant.DateFormat, *u.EndsAt)
		if err != nil {
			return err //nolint:wrapcheck
		}

		reservation.EndsAt = endsAt
	}

	if u.Status != nil {
		reservation.Status = *u.Status
	}

	if u.Notes != nil {
		reservation.Notes = u.Notes
	}

	return nil
}

type ReservationResponse struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customer_id"`
	TableID    string  `json:"table_id"`
	PartySize  int     `json:"party_size"`
	StartsAt   string  `json:"starts_at"`
	EndsAt     string  `json:"ends_at"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(mod model.Reservation) {
	r.ID = mod.ID
	r.CustomerID = mod.CustomerID
	r.TableID = mod.TableID
	r.PartySize = mod.PartySize
	r.StartsAt = timezone.Format(mod.StartsAt, constant.DateFormat)
	r.EndsAt = timezone.Format(mod.EndsAt, constant.DateFormat)
	r.Status = mod.Status
	r.Notes = mod.Notes
	r.Metadata.FromModel(mod.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation) {
	r.TotalData = len(models)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

// UpcomingGroup is one future day's reservations on the dashboard.
type UpcomingGroup struct {
	Date         string                `json:"date"`
	Reservations []ReservationResponse `json:"reservations"`
}

type DashboardOverviewResponse struct {
	Date             string                `json:"date"`
	Today            []ReservationResponse `json:"today"`
	Upcoming         []UpcomingGroup       `json:"upcoming"`
	OccupancyPercent int                   `json:"occupancy_percent"`
}
