package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "not found error type", errType: ErrTypeNotFound, expected: "NOT_FOUND"},
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
		{name: "empty error type", errType: ErrTypeEmpty, expected: "EMPTY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeValidation,
				Message: "unknown city",
			},
			wantMessage: "[VALIDATION] unknown city",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeParsing,
				Message: "invalid Start Time",
				Cause:   fmt.Errorf("cannot parse \"yesterday\""),
			},
			wantMessage: "[PARSING] invalid Start Time: cannot parse \"yesterday\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestNewDataNotFoundError(t *testing.T) {
	err := NewDataNotFoundError("data/chicago.csv", os.ErrNotExist)

	assert.Equal(t, ErrTypeNotFound, err.Type)
	assert.Equal(t, "data/chicago.csv", err.Context["source"])
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "trip data data/chicago.csv not found")
}

func TestNewParsingError(t *testing.T) {
	err := NewParsingError("invalid Trip Duration", 12, nil)
	assert.Equal(t, ErrTypeParsing, err.Type)
	assert.Equal(t, 12, err.Context["row"])

	noRow := NewParsingError("missing column", 0, nil)
	_, ok := noRow.Context["row"]
	assert.False(t, ok)
}

func TestNewEmptyDatasetError(t *testing.T) {
	err := NewEmptyDatasetError("time")
	assert.Equal(t, ErrTypeEmpty, err.Type)
	assert.Equal(t, "time", err.Context["statistic"])
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeConfig, Message: "bad config"}
	err.WithContext("field", "data.dir").WithContext("value", "")

	require.Len(t, err.Context, 2)
	assert.Equal(t, "data.dir", err.Context["field"])
}

func TestIsType(t *testing.T) {
	notFound := NewDataNotFoundError("washington.csv", os.ErrPermission)
	wrapped := fmt.Errorf("load washington: %w", notFound)
	nested := NewParsingError("failed to read washington.csv", 0, notFound)

	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{name: "direct match", err: notFound, errType: ErrTypeNotFound, want: true},
		{name: "wrapped match", err: wrapped, errType: ErrTypeNotFound, want: true},
		{name: "nested app error", err: nested, errType: ErrTypeNotFound, want: true},
		{name: "outer app error", err: nested, errType: ErrTypeParsing, want: true},
		{name: "different type", err: wrapped, errType: ErrTypeEmpty, want: false},
		{name: "plain error", err: errors.New("boom"), errType: ErrTypeNotFound, want: false},
		{name: "nil", err: nil, errType: ErrTypeNotFound, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsType(tt.err, tt.errType))
		})
	}
}
