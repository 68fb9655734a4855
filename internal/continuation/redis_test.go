package continuation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Register(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, time.Hour)

	mock.ExpectSet("continuation:42", `{"state":"confirmation","total":"12.5","invoice_message_id":7}`, time.Hour).SetVal("OK")

	err := store.Register(context.Background(), 42, Continuation{
		State:            "confirmation",
		Total:            decimal.RequireFromString("12.5"),
		InvoiceMessageID: 7,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Take(t *testing.T) {
	cases := map[string]struct {
		setup       func(mock redismock.ClientMock)
		expectFound bool
		expected    Continuation
		expectError bool
	}{
		"found": {
			setup: func(mock redismock.ClientMock) {
				mock.ExpectGetDel("continuation:42").SetVal(`{"state":"phone_number","total":"0"}`)
			},
			expectFound: true,
			expected:    Continuation{State: "phone_number", Total: decimal.Zero},
		},
		"missing": {
			setup: func(mock redismock.ClientMock) {
				mock.ExpectGetDel("continuation:42").RedisNil()
			},
		},
		"redis error": {
			setup: func(mock redismock.ClientMock) {
				mock.ExpectGetDel("continuation:42").SetErr(errors.New("connection refused"))
			},
			expectError: true,
		},
		"broken payload": {
			setup: func(mock redismock.ClientMock) {
				mock.ExpectGetDel("continuation:42").SetVal("{")
			},
			expectError: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			client, mock := redismock.NewClientMock()
			tc.setup(mock)

			c, ok, err := NewRedisStore(client, 0).Take(context.Background(), 42)

			if tc.expectError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.expectFound, ok)
			if tc.expectFound {
				assert.Equal(t, tc.expected.State, c.State)
				assert.True(t, tc.expected.Total.Equal(c.Total))
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRedisStore_GetAndClear(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, 0)
	ctx := context.Background()

	mock.ExpectGet("continuation:7").SetVal(`{"state":"shipping_method","total":"0"}`)
	mock.ExpectDel("continuation:7").SetVal(1)

	c, ok, err := store.Get(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, State("shipping_method"), c.State)

	require.NoError(t, store.Clear(ctx, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}
