package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	inner := fmt.Errorf("%w: amount", ErrInvalidInput)
	err := NewUserError("Invalid amount.", inner)

	assert.Equal(t, "Invalid amount.: invalid input: amount", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "Invalid amount.", UserMessage(err))

	wrapped := fmt.Errorf("shell: %w", err)
	assert.Equal(t, "Invalid amount.", UserMessage(wrapped))
}

func TestUserError_WithoutCause(t *testing.T) {
	err := NewUserError("Nothing to do.", nil)
	assert.Equal(t, "Nothing to do.", err.Error())
}

func TestUserMessage_PlainError(t *testing.T) {
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
}
