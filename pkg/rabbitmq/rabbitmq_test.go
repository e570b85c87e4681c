package rabbitmq_test

import (
	"testing"
	"time"

	"cherishedwords/internal/services"
	"cherishedwords/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCardEvent(t *testing.T) {
	now := time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)
	msg, err := rabbitmq.EncodeCardEvent(services.CardEvent{
		Type:   services.EventCardCreated,
		CardID: "card-1",
		UserID: "alice",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, services.EventCardCreated, msg.Type)
	assert.Equal(t, uint8(amqp.Persistent), msg.DeliveryMode)
	assert.Equal(t, now, msg.Timestamp)
	assert.JSONEq(t, `{"type":"card.created","card_id":"card-1","user_id":"alice"}`, string(msg.Body))
	assert.NotContains(t, string(msg.Body), "password")
}

func TestDecodeCardEventFallsBackToMessageType(t *testing.T) {
	event, err := rabbitmq.DecodeCardEvent(amqp.Delivery{
		Type: services.EventCardDeleted,
		Body: []byte(`{"card_id":"card-1","user_id":"alice"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, services.EventCardDeleted, event.Type)
	assert.Equal(t, "card-1", event.CardID)

	_, err = rabbitmq.DecodeCardEvent(amqp.Delivery{Body: []byte("not json")})
	assert.Error(t, err)
}
