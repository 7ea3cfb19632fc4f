package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
)

func TestUserIDFromStringSuccess(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "firebase style uid",
			input: "Xk3bq9TzW1ZfQ2aP7mN0cR4sL8v1",
		},
		{
			name:  "single character",
			input: "u",
		},
		{
			name:  "max length",
			input: strings.Repeat("a", 128),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := domain.UserIDFromString(tt.input)

			assert.NoError(t, err)
			assert.Equal(t, tt.input, id.String())
			assert.False(t, id.IsZero())
		})
	}
}

func TestUserIDFromStringError(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "empty string",
			input: "",
		},
		{
			name:  "too long",
			input: strings.Repeat("a", 129),
		},
		{
			name:  "surrounding spaces",
			input: " user-1 ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.UserIDFromString(tt.input)

			assert.ErrorIs(t, err, domain.ErrInvalidUserID)
		})
	}
}
