package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBotAuth_IsAdmin(t *testing.T) {
	a := New([]int64{1, 42})

	assert.True(t, a.IsAdmin(1))
	assert.True(t, a.IsAdmin(42))
	assert.False(t, a.IsAdmin(2))

	var empty *BotAuth
	assert.False(t, empty.IsAdmin(1))
	assert.False(t, New(nil).IsAdmin(0))
}
