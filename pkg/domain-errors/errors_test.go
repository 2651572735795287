package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	base := errors.New("boom")

	t.Run("nil error stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("keeps the chain", func(t *testing.T) {
		err := Wrap(base, CodeUnavailable, "store down")
		assert.ErrorIs(t, err, base)
		assert.True(t, HasCode(err, CodeUnavailable))
		assert.Equal(t, "store down: boom", err.Error())
	})

	t.Run("outermost code wins", func(t *testing.T) {
		inner := New(CodeNotFound, "overlay not found")
		err := Wrap(inner, CodeInternal, "reconcile")
		assert.Equal(t, CodeInternal, CodeOf(err))
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeValidation, CodeOf(New(CodeValidation, "bad year")))
}
