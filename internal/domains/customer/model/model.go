package model

import (
	"mesa/shared/model"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID            = "id"
	FieldFullName      = "full_name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldLoyaltyPoints = "loyalty_points"
)

type Customer struct {
	ID            string  `db:"id"`
	FullName      string  `db:"full_name"`
	Email         *string `db:"email"`
	Phone         *string `db:"phone"`
	LoyaltyPoints int     `db:"loyalty_points"`
	model.Metadata
}
