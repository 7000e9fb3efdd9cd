package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("no")))
	assert.Equal(t, KindInternal, KindOf(errors.New("db down")))

	wrapped := fmt.Errorf("record: %w", Field("correct", "mismatch"))
	assert.Equal(t, KindValidation, KindOf(wrapped))
}

func TestIs_MatchesByKind(t *testing.T) {
	err := fmt.Errorf("share: %w", NotFound("user not found"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrForbidden)

	ae, ok := As(err)
	if assert.True(t, ok) {
		assert.Equal(t, "user not found", ae.Message)
	}
}

func TestInternal_UnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("failed to record session", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}
