package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	err := fmt.Errorf("run: %w", NewAppError(CodeClear, "clear Invoices", ErrDatabase))

	assert.True(t, HasCode(err, CodeClear))
	assert.False(t, HasCode(err, CodeInput))
	assert.ErrorIs(t, err, ErrDatabase)
	assert.EqualError(t, err, "run: CLEAR_ERROR: clear Invoices: database error")
	assert.False(t, HasCode(errors.New("plain"), CodeClear))
	assert.EqualError(t, NewAppError(CodeInput, "no input", nil), "INPUT_ERROR: no input")
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrInvalidInput, ErrInternal, ErrDatabase, ErrValidation}
	for i, a := range sentinels {
		for j, b := range sentinels {
			assert.Equal(t, i == j, errors.Is(a, b), "%v vs %v", a, b)
		}
	}
}
