package policy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mesa/internal/domains/schedule/model"
	"mesa/internal/domains/schedule/policy"
)

func utcSchedule() model.Schedule {
	return model.Schedule{
		OpenTime:       "10:00",
		CloseTime:      "22:00",
		Timezone:       "UTC",
		SlotMinutes:    60,
		ClosedWeekdays: model.Weekdays{1},
	}
}

func TestWithinSchedule(t *testing.T) {
	sched := utcSchedule()

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{
			name: "inside business hours",
			// 2026-09-02 is a Wednesday.
			at:   time.Date(2026, 9, 2, 19, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "exactly at opening",
			at:   time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "exactly at closing",
			at:   time.Date(2026, 9, 2, 22, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "one minute past closing",
			at:   time.Date(2026, 9, 2, 22, 1, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "before opening",
			at:   time.Date(2026, 9, 2, 9, 59, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "closed weekday",
			// 2026-09-07 is a Monday.
			at:   time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.WithinSchedule(tt.at, sched))
		})
	}
}

func TestWithinSchedule_MalformedScheduleRejects(t *testing.T) {
	tests := []struct {
		name  string
		wreck func(*model.Schedule)
	}{
		{
			name:  "bad timezone",
			wreck: func(s *model.Schedule) { s.Timezone = "Mars/Olympus" },
		},
		{
			name:  "bad open clock",
			wreck: func(s *model.Schedule) { s.OpenTime = "25:99" },
		},
		{
			name:  "bad close clock",
			wreck: func(s *model.Schedule) { s.CloseTime = "not-a-clock" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := utcSchedule()
			tt.wreck(&sched)

			at := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)
			assert.False(t, policy.WithinSchedule(at, sched))
		})
	}
}

func TestSlotEnd(t *testing.T) {
	start := time.Date(2026, 9, 2, 19, 0, 0, 0, time.UTC)

	assert.Equal(t, start.Add(90*time.Minute), policy.SlotEnd(start, 90))
}

func TestEnumerateSlots(t *testing.T) {
	tests := []struct {
		name  string
		sched model.Schedule
		want  []string
	}{
		{
			name: "hourly slots stop before closing",
			sched: model.Schedule{
				OpenTime:    "10:00",
				CloseTime:   "13:00",
				SlotMinutes: 60,
			},
			want: []string{"10:00", "11:00", "12:00"},
		},
		{
			name: "uneven step",
			sched: model.Schedule{
				OpenTime:    "10:00",
				CloseTime:   "12:00",
				SlotMinutes: 45,
			},
			want: []string{"10:00", "10:45", "11:30"},
		},
		{
			name: "malformed open clock yields nothing",
			sched: model.Schedule{
				OpenTime:    "bad",
				CloseTime:   "12:00",
				SlotMinutes: 60,
			},
			want: nil,
		},
		{
			name: "close before open yields nothing",
			sched: model.Schedule{
				OpenTime:    "18:00",
				CloseTime:   "10:00",
				SlotMinutes: 60,
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.EnumerateSlots(tt.sched))
		})
	}
}

func TestEstimateDailySlots(t *testing.T) {
	tests := []struct {
		name  string
		sched model.Schedule
		want  int
	}{
		{
			name: "twelve hourly slots",
			sched: model.Schedule{
				OpenTime:    "10:00",
				CloseTime:   "22:00",
				SlotMinutes: 60,
			},
			want: 12,
		},
		{
			name: "never below one",
			sched: model.Schedule{
				OpenTime:    "10:00",
				CloseTime:   "10:30",
				SlotMinutes: 60,
			},
			want: 1,
		},
		{
			name: "malformed schedule falls back to one",
			sched: model.Schedule{
				OpenTime:    "bad",
				CloseTime:   "22:00",
				SlotMinutes: 60,
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.EstimateDailySlots(tt.sched))
		})
	}
}
