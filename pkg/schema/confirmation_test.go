//go:build !integration

package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfirmation(t *testing.T) {
	t.Run("AvroParseV1", func(t *testing.T) {
		require.NotPanics(t, func() {
			_ = mustParse(ConfirmationSchemaTextV1)
		})
	})

	t.Run("CodecKeepsMillisecondTimestamp", func(t *testing.T) {
		in := ConfirmationV1{
			ID:        "pay-1",
			Provider:  "PayPal",
			Amount:    10,
			Message:   "paid 10.00 EUR via PayPal (merchant@example.com)",
			CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 123_456_789, time.UTC),
		}

		b, err := ConfirmationV1AvroEncodeFn()(in)
		require.NoError(t, err)

		var out ConfirmationV1
		require.NoError(t, ConfirmationV1AvroDecodeFn()(b, &out))
		require.Equal(t, in.ID, out.ID)
		require.Equal(t, in.Message, out.Message)
		require.True(t, in.CreatedAt.Truncate(time.Millisecond).Equal(out.CreatedAt))
	})
}
