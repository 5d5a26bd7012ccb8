package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mesa/shared/model"
)

const (
	TableName  = "settings"
	EntityName = "schedule"

	FieldID             = "id"
	FieldOpenTime       = "open_time"
	FieldCloseTime      = "close_time"
	FieldTimezone       = "timezone"
	FieldSlotMinutes    = "slot_minutes"
	FieldClosedWeekdays = "closed_weekdays"
)

// Defaults seeded on first access of a fresh deployment.
const (
	DefaultOpenTime    = "10:00"
	DefaultCloseTime   = "22:00"
	DefaultTimezone    = "America/Guatemala"
	DefaultSlotMinutes = 60
)

// DefaultClosedWeekdays closes Mondays.
func DefaultClosedWeekdays() Weekdays { return Weekdays{1} }

// Weekdays is a set of weekday numbers (0=Sunday .. 6=Saturday) stored as jsonb.
type Weekdays []int

func (w Weekdays) Value() (driver.Value, error) {
	if w == nil {
		w = Weekdays{}
	}

	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal closed weekdays: %w", err)
	}

	return data, nil
}

func (w *Weekdays) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*w = Weekdays{}

		return nil
	case []byte:
		return json.Unmarshal(value, w) //nolint:wrapcheck
	case string:
		return json.Unmarshal([]byte(value), w) //nolint:wrapcheck
	default:
		return errors.New("unsupported source type for closed weekdays")
	}
}

func (w Weekdays) Contains(day time.Weekday) bool {
	for _, closed := range w {
		if closed == int(day) {
			return true
		}
	}

	return false
}

// Schedule is the singleton business schedule governing valid reservation times.
type Schedule struct {
	ID             string   `db:"id"`
	OpenTime       string   `db:"open_time"`
	CloseTime      string   `db:"close_time"`
	Timezone       string   `db:"timezone"`
	SlotMinutes    int      `db:"slot_minutes"`
	ClosedWeekdays Weekdays `db:"closed_weekdays"`
	model.Metadata
}

// Location resolves the schedule timezone.
func (s Schedule) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule timezone: %w", err)
	}

	return loc, nil
}
