package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "required query",
			field:    "q",
			message:  `Search query parameter "q" is required`,
			expected: `validation error on field 'q': Search query parameter "q" is required`,
		},
		{
			name:     "invalid sort",
			field:    "sortby",
			message:  "must be one of publishedAt, relevance, popularity",
			expected: "validation error on field 'sortby': must be one of publishedAt, relevance, popularity",
		},
		{
			name:     "empty field name",
			field:    "",
			message:  "test message",
			expected: "validation error on field '': test message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := NewValidationError("title", "Title parameter is required")

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.True(t, errors.Is(fmt.Errorf("by title: %w", err), ErrValidationFailed))
	assert.False(t, errors.Is(errors.New("other"), ErrValidationFailed))
}

func TestValidationError_As(t *testing.T) {
	wrapped := fmt.Errorf("search: %w", NewValidationError("q", "required"))

	var ve *ValidationError
	assert.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, "q", ve.Field)
	assert.Equal(t, "required", ve.Message)
}
