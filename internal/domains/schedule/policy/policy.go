// Package policy holds the pure scheduling rules shared by the
// reservation and availability services. Nothing here touches the
// database; callers load the schedule first and pass it in.
package policy

import (
	"time"

	"mesa/internal/domains/schedule/model"
	"mesa/shared/constant"
)

// WithinSchedule reports whether t is a valid reservation start under
// the given schedule: open weekday and time-of-day inside
// [open_time, close_time], both boundaries inclusive.
//
// A schedule with a malformed timezone or open/close clock rejects
// every time rather than silently accepting it.
func WithinSchedule(t time.Time, sched model.Schedule) bool {
	loc, err := sched.Location()
	if err != nil {
		return false
	}

	local := t.In(loc)
	if sched.ClosedWeekdays.Contains(local.Weekday()) {
		return false
	}

	openMinute, err := clockToMinutes(sched.OpenTime)
	if err != nil {
		return false
	}

	closeMinute, err := clockToMinutes(sched.CloseTime)
	if err != nil {
		return false
	}

	minute := local.Hour()*constant.MinutesPerHour + local.Minute()

	return minute >= openMinute && minute <= closeMinute
}

// SlotEnd derives the exclusive end of the slot starting at start.
func SlotEnd(start time.Time, slotMinutes int) time.Time {
	return start.Add(time.Duration(slotMinutes) * time.Minute)
}

// EnumerateSlots lists the slot start clocks for one business day,
// ascending from open_time, stepping by slot_minutes, strictly before
// close_time. A malformed schedule yields no slots.
func EnumerateSlots(sched model.Schedule) []string {
	openMinute, err := clockToMinutes(sched.OpenTime)
	if err != nil {
		return nil
	}

	closeMinute, err := clockToMinutes(sched.CloseTime)
	if err != nil {
		return nil
	}

	if sched.SlotMinutes <= 0 || openMinute >= closeMinute {
		return nil
	}

	var slots []string
	for minute := openMinute; minute < closeMinute; minute += sched.SlotMinutes {
		slots = append(slots, minutesToClock(minute))
	}

	return slots
}

// EstimateDailySlots approximates how many slots fit in one open day,
// never less than one, used as the occupancy report denominator.
func EstimateDailySlots(sched model.Schedule) int {
	openMinute, errOpen := clockToMinutes(sched.OpenTime)
	closeMinute, errClose := clockToMinutes(sched.CloseTime)

	if errOpen != nil || errClose != nil || sched.SlotMinutes <= 0 || closeMinute <= openMinute {
		return 1
	}

	slots := (closeMinute - openMinute) / sched.SlotMinutes
	if slots < 1 {
		return 1
	}

	return slots
}

func clockToMinutes(clock string) (int, error) {
	parsed, err := time.Parse(constant.ClockFormat, clock)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	return parsed.Hour()*constant.MinutesPerHour + parsed.Minute(), nil
}

func minutesToClock(minute int) string {
	return time.Date(0, 1, 1, minute/constant.MinutesPerHour, minute%constant.MinutesPerHour, 0, 0, time.UTC).
		Format(constant.ClockFormat)
}
