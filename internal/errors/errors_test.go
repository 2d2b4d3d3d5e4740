package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	assert.Equal(t, "recipe 4 not found", NotFoundf("recipe %s not found", "4").Error())
}

func TestError_ErrorWithCause(t *testing.T) {
	err := Wrap(New("disk full"), CodeUnavailable, "unable to save")

	assert.Equal(t, "unable to save: disk full", err.Error())
	assert.EqualError(t, Unwrap(err), "disk full")
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("loading week: %w", Validationf("day %s is not in the week", "2024-01-20"))

	assert.True(t, Is(err, ErrValidation))
	assert.False(t, Is(err, ErrNotFound))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(fmt.Errorf("wrapped: %w", ErrNotFound)))
	assert.Equal(t, CodeInternal, CodeOf(New("plain")))
	assert.Equal(t, CodeInternal, CodeOf(nil))
}

func TestCode_ExitCode(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInternal, 1},
		{CodeValidation, 2},
		{CodeNotFound, 3},
		{CodeUnavailable, 4},
		{Code("OTHER"), 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.ExitCode())
		})
	}
}

func TestWithDetails_DoesNotMutate(t *testing.T) {
	base := Validation("validation failed")
	detailed := base.WithDetails(map[string]string{"name": "is required"})

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]string{"name": "is required"}, detailed.Details)
}

func TestWithCause_KeepsCode(t *testing.T) {
	err := ErrUnavailable.WithCause(New("locked"))

	assert.True(t, Is(err, ErrUnavailable))
	assert.Equal(t, "unavailable: locked", err.Error())
	assert.Nil(t, ErrUnavailable.Unwrap())
}

func TestSurface_KeepsCode(t *testing.T) {
	assert.Equal(t, CodeNotFound, Surface(NotFound("no recipe"), "unable to plan").Code)
	assert.Equal(t, CodeInternal, Surface(New("boom"), "unable to plan").Code)
	assert.Equal(t, "unable to plan: boom", Surface(New("boom"), "unable to plan").Error())
}
