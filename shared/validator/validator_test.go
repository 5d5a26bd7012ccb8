package validator_test

import (
	"strings"
	"testing"

	"mesa/shared/validator"
)

type reservationPayload struct {
	CustomerID string `validate:"required,uuid4"           json:"customer_id"`
	PartySize  int    `validate:"required,gt=0"            json:"party_size"`
	Status     string `validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED" json:"status"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *reservationPayload
		expectError bool
	}{
		{
			name: "valid payload",
			data: &reservationPayload{
				CustomerID: "5f9c2d6e-0000-4000-8000-000000000002",
				PartySize:  2,
				Status:     "PENDING",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &reservationPayload{
				PartySize: 2,
			},
			expectError: true,
		},
		{
			name: "not a uuid",
			data: &reservationPayload{
				CustomerID: "not-a-uuid",
				PartySize:  2,
			},
			expectError: true,
		},
		{
			name: "party size must be positive",
			data: &reservationPayload{
				CustomerID: "5f9c2d6e-0000-4000-8000-000000000002",
				PartySize:  0,
			},
			expectError: true,
		},
		{
			name: "unknown status",
			data: &reservationPayload{
				CustomerID: "5f9c2d6e-0000-4000-8000-000000000002",
				PartySize:  2,
				Status:     "BOOKED",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected an error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name:        "valid body",
			body:        `{"customer_id":"5f9c2d6e-0000-4000-8000-000000000002","party_size":4}`,
			expectError: false,
		},
		{
			name:        "malformed json",
			body:        `{"customer_id":`,
			expectError: true,
		},
		{
			name:        "fails validation",
			body:        `{"customer_id":"5f9c2d6e-0000-4000-8000-000000000002","party_size":0}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload reservationPayload

			err := validator.Validate(strings.NewReader(tt.body), &payload)

			if tt.expectError && err == nil {
				t.Error("expected an error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("staff@example.com", "email"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := validator.ValidateVar("not-an-email", "email"); err == nil {
		t.Error("expected an error, got nil")
	}
}
