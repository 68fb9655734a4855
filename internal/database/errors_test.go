package db

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Resource: "order", Key: "id", Value: "42"}
	assert.Equal(t, "order with id 42 not found", err.Error())

	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("load: %w", err)))
	assert.False(t, IsNotFound(ErrEmptyCart))
	assert.False(t, IsNotFound(nil))
}
