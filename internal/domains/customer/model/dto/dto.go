package dto

import (
	"strings"

	"mesa/internal/domains/customer/model"
	"mesa/shared"
	gDto "mesa/shared/dto"
	gModel "mesa/shared/model"
	"mesa/shared/timezone"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	FullName      string  `json:"full_name"      validate:"required,max=120"`
	Email         *string `json:"email"          validate:"omitempty,email,max=120"`
	Phone         *string `json:"phone"          validate:"omitempty,max=30"`
	LoyaltyPoints int     `json:"loyalty_points" validate:"omitempty,gte=0"`
}

func (c *CreateCustomerRequest) ToModel() model.Customer {
	now := timezone.Now()

	return model.Customer{
		ID:            uuid.NewString(),
		FullName:      strings.TrimSpace(c.FullName),
		Email:         normalizeEmail(c.Email),
		Phone:         c.Phone,
		LoyaltyPoints: c.LoyaltyPoints,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

type UpdateCustomerRequest struct {
	FullName      *string `json:"full_name"      validate:"omitempty,max=120"`
	Email         *string `json:"email"          validate:"omitempty,email,max=120"`
	Phone         *string `json:"phone"          validate:"omitempty,max=30"`
	LoyaltyPoints *int    `json:"loyalty_points" validate:"omitempty,gte=0"`
}

// ApplyTo merges the non-nil fields into the current customer.
func (u *UpdateCustomerRequest) ApplyTo(customer *model.Customer) {
	if u.FullName != nil {
		customer.FullName = strings.TrimSpace(*u.FullName)
	}

	if u.Email != nil {
		customer.Email = normalizeEmail(u.Email)
	}

	if u.Phone != nil {
		customer.Phone = u.Phone
	}

	if u.LoyaltyPoints != nil {
		customer.LoyaltyPoints = *u.LoyaltyPoints
	}
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}

	normalized := strings.ToLower(strings.TrimSpace(*email))
	if normalized == "" {
		return nil
	}

	return &normalized
}

type CustomerResponse struct {
	ID            string  `json:"id"`
	FullName      string  `json:"full_name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	LoyaltyPoints int     `json:"loyalty_points"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(mod model.Customer) {
	r.ID = mod.ID
	r.FullName = mod.FullName
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.LoyaltyPoints = mod.LoyaltyPoints
	r.Metadata.FromModel(mod.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}
