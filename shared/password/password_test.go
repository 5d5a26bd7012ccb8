package password_test

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"mesa/shared/password"
)

func TestConstants(t *testing.T) {
	if password.DefaultCost != bcrypt.DefaultCost {
		t.Errorf("expected DefaultCost to be %d, got %d", bcrypt.DefaultCost, password.DefaultCost)
	}
}

func TestHash(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{name: "valid password", password: "validPassword123"},
		{name: "empty password", password: "", expectError: true},
		{name: "short password", password: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectError {
				if err == nil {
					t.Error("expected an error, got nil")
				}

				return
			}

			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if hash == tt.password {
				t.Error("expected hash to differ from the plain password")
			}
			if !strings.HasPrefix(hash, "$2a$") {
				t.Errorf("expected a bcrypt hash, got %s", hash)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		expected error
	}{
		{name: "matching password", password: "correct horse battery staple", hash: hash, expected: nil},
		{name: "wrong password", password: "incorrect", hash: hash, expected: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, expected: password.ErrInvalidPassword},
		{name: "empty hash", password: "anything", hash: "", expected: password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.expected == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}

				return
			}

			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}
