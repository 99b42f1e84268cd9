package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindMatching(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"validation", Validationf("cannot merge %s into itself", "abc"), KindValidation},
		{"not found", NotFoundf("location %s", "abc"), KindNotFound},
		{"conflict", Conflictf("group has no matching entries"), KindConflict},
		{"external", ExternalService("reverse geocode", errors.New("timeout")), KindExternalService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Is(tt.err, tt.kind))
			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}

func TestWrappedErrorsStillMatch(t *testing.T) {
	inner := NotFoundf("location %s", "l-1")
	wrapped := fmt.Errorf("deleting: %w", inner)

	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(wrapped, KindConflict))
}

func TestUntypedErrorsHaveNoKind(t *testing.T) {
	err := errors.New("disk I/O error")
	assert.Equal(t, Kind(""), KindOf(err))
	assert.False(t, Is(err, KindValidation))
	assert.False(t, Is(nil, KindValidation))
}

func TestExternalServicePreservesCause(t *testing.T) {
	cause := errors.New("429 rate limited")
	err := ExternalService("reverse geocode", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "429")
}
