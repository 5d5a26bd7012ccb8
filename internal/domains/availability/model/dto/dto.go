package dto

import (
	tableModel "mesa/internal/domains/table/model"
	tableDto "mesa/internal/domains/table/model/dto"
)

type AvailabilityResponse struct {
	Date      string                   `json:"date"`
	Time      string                   `json:"time"`
	PartySize int                      `json:"party_size"`
	Tables    []tableDto.TableResponse `json:"tables"`
}

func (r *AvailabilityResponse) FromModels(models []tableModel.Table, date, clock string, partySize int) {
	r.Date = date
	r.Time = clock
	r.PartySize = partySize

	r.Tables = make([]tableDto.TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}

// SlotSuggestion pairs a slot start clock with how many tables can
// still take the party at that time.
type SlotSuggestion struct {
	Time           string `json:"time"`
	AvailableCount int    `json:"available_count"`
}

type SlotSuggestionsResponse struct {
	Date      string           `json:"date"`
	PartySize int              `json:"party_size"`
	Slots     []SlotSuggestion `json:"slots"`
}
