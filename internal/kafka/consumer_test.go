package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_DecodesReservationEvent(t *testing.T) {
	payload, err := json.Marshal(ReservationEvent{
		Type:          "reservation_confirmed",
		ReservationID: 99,
		FlightID:      4,
		SeatNumber:    "12A",
		Status:        "confirmed",
	})
	require.NoError(t, err)

	var got ReservationEvent
	err = dispatch(context.Background(), payload, func(ctx context.Context, event ReservationEvent) error {
		got = event
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "reservation_confirmed", got.Type)
	assert.Equal(t, int64(99), got.ReservationID)
	assert.Equal(t, "12A", got.SeatNumber)
}

func TestDispatch_DropsMalformedPayload(t *testing.T) {
	called := false
	err := dispatch(context.Background(), []byte("not json"), func(ctx context.Context, event ReservationEvent) error {
		called = true
		return nil
	})

	assert.NoError(t, err)
	assert.False(t, called)
}

func TestDispatch_PropagatesHandlerError(t *testing.T) {
	handlerErr := errors.New("smtp unavailable")
	err := dispatch(context.Background(), []byte(`{"type":"reservation_created"}`), func(ctx context.Context, event ReservationEvent) error {
		return handlerErr
	})

	assert.ErrorIs(t, err, handlerErr)
}
