package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := New(NotFound, "node %q does not exist", "A")
	assert.Equal(t, NotFound, KindOf(err))
	assert.Equal(t, `node "A" does not exist`, err.Error())

	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := New(Conflict, "shelter full")
	wrapped := fmt.Errorf("check-in failed: %w", err)
	assert.Equal(t, Conflict, KindOf(wrapped))
	assert.True(t, Is(wrapped, Conflict))
	assert.False(t, Is(wrapped, NotFound))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(Internal, cause, "persisting report")

	assert.Equal(t, Internal, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "persisting report")
	assert.Contains(t, err.Error(), "disk full")
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "not found", NotFound.String())
	assert.Equal(t, "conflict", Conflict.String())
	assert.Equal(t, "invalid input", InvalidInput.String())
	assert.Equal(t, "unreachable", Unreachable.String())
	assert.Equal(t, "internal inconsistency", Internal.String())
}
