package dto

import (
	"mesa/internal/domains/schedule/model"
	gDto "mesa/shared/dto"
)

type UpdateScheduleRequest struct {
	OpenTime       *string `json:"open_time"       validate:"omitempty,datetime=15:04"`
	CloseTime      *string `json:"close_time"      validate:"omitempty,datetime=15:04"`
	Timezone       *string `json:"timezone"        validate:"omitempty,max=64"`
	SlotMinutes    *int    `json:"slot_minutes"    validate:"omitempty,gte=15,lte=480"`
	ClosedWeekdays *[]int  `json:"closed_weekdays" validate:"omitempty,dive,gte=0,lte=6"`
}

// ApplyTo merges the non-nil fields into the current schedule.
func (u *UpdateScheduleRequest) ApplyTo(sched *model.Schedule) {
	if u.OpenTime != nil {
		sched.OpenTime = *u.OpenTime
	}

	if u.CloseTime != nil {
		sched.CloseTime = *u.CloseTime
	}

	if u.Timezone != nil {
		sched.Timezone = *u.Timezone
	}

	if u.SlotMinutes != nil {
		sched.SlotMinutes = *u.SlotMinutes
	}

	if u.ClosedWeekdays != nil {
		sched.ClosedWeekdays = model.Weekdays(*u.ClosedWeekdays)
	}
}

type ScheduleResponse struct {
	ID             string `json:"id"`
	OpenTime       string `json:"open_time"`
	CloseTime      string `json:"close_time"`
	Timezone       string `json:"timezone"`
	SlotMinutes    int    `json:"slot_minutes"`
	ClosedWeekdays []int  `json:"closed_weekdays"`
	gDto.Metadata
}

func (r *ScheduleResponse) FromModel(mod model.Schedule) {
	r.ID = mod.ID
	r.OpenTime = mod.OpenTime
	r.CloseTime = mod.CloseTime
	r.Timezone = mod.Timezone
	r.SlotMinutes = mod.SlotMinutes
	r.ClosedWeekdays = mod.ClosedWeekdays

	if r.ClosedWeekdays == nil {
		r.ClosedWeekdays = []int{}
	}

	r.Metadata.FromModel(mod.Metadata)
}
