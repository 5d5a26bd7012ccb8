package dto

import (
	"time"

	"mesa/internal/domains/table/model"
	gDto "mesa/shared/dto"
	gModel "mesa/shared/model"
	"mesa/shared/timezone"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	Number   int    `json:"number"   validate:"required,gt=0"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
	Location string `json:"location" validate:"omitempty,max=120"`
	Active   *bool  `json:"active"   validate:"omitempty"`
}

func (c *CreateTableRequest) ToModel() model.Table {
	now := timezone.Now()

	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Table{
		ID:       uuid.NewString(),
		Number:   c.Number,
		Capacity: c.Capacity,
		Location: c.Location,
		Active:   active,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

type UpdateTableRequest struct {
	Number   *int    `json:"number"   validate:"omitempty,gt=0"`
	Capacity *int    `json:"capacity" validate:"omitempty,gt=0"`
	Location *string `json:"location" validate:"omitempty,max=120"`
	Active   *bool   `json:"active"   validate:"omitempty"`
}

// ApplyTo merges the non-nil fields into the current table.
func (u *UpdateTableRequest) ApplyTo(table *model.Table) {
	if u.Number != nil {
		table.Number = *u.Number
	}

	if u.Capacity != nil {
		table.Capacity = *u.Capacity
	}

	if u.Location != nil {
		table.Location = *u.Location
	}

	if u.Active != nil {
		table.Active = *u.Active
	}
}

type TableResponse struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
	Location string `json:"location"`
	Active   bool   `json:"active"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(mod model.Table) {
	r.ID = mod.ID
	r.Number = mod.Number
	r.Capacity = mod.Capacity
	r.Location = mod.Location
	r.Active = mod.Active
	r.Metadata.FromModel(mod.Metadata)
}

type GetTablesResponse struct {
	Tables []TableResponse `json:"tables"`
}

func (r *GetTablesResponse) FromModels(models []model.Table) {
	r.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}

// TableOccupancy is one table's state inside an occupancy snapshot.
type TableOccupancy struct {
	TableID  string `json:"table_id"`
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
	Occupied bool   `json:"occupied"`
}

type OccupancySnapshotResponse struct {
	Reference time.Time        `json:"reference"`
	Total     int              `json:"total"`
	Occupied  int              `json:"occupied"`
	Tables    []TableOccupancy `json:"tables"`
}

func (r *OccupancySnapshotResponse) FromModels(models []model.Table, occupiedIDs map[string]bool, reference time.Time) {
	r.Reference = timezone.ToAppTime(reference)
	r.Total = len(models)
	r.Tables = make([]TableOccupancy, len(models))

	for i, mod := range models {
		occupied := occupiedIDs[mod.ID]
		if occupied {
			r.Occupied++
		}

		r.Tables[i] = TableOccupancy{
			TableID:  mod.ID,
			Number:   mod.Number,
			Capacity: mod.Capacity,
			Occupied: occupied,
		}
	}
}
