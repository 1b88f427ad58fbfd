package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(ValidationError("bad")))
	assert.True(t, IsValidation(fmt.Errorf("wrap: %w", ValidationError("bad"))))
	assert.False(t, IsValidation(ErrNotFound))
	assert.False(t, IsValidation(errors.New("plain")))
}
