package model

import (
	"mesa/shared/model"
)

const (
	TableName  = "tables"
	EntityName = "table"

	FieldID       = "id"
	FieldNumber   = "number"
	FieldCapacity = "capacity"
	FieldLocation = "location"
	FieldActive   = "active"
)

type Table struct {
	ID       string `db:"id"`
	Number   int    `db:"number"`
	Capacity int    `db:"capacity"`
	Location string `db:"location"`
	Active   bool   `db:"active"`
	model.Metadata
}
