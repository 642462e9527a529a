package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/lead-magnet/internal/entity"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func TestProducerPublishesEventAsJSON(t *testing.T) {
	pub := new(MockPublisher)
	var sent amqp.Publishing
	pub.On("PublishWithContext", mock.Anything, ExchangeName, RoutingKey, false, false, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(5).(amqp.Publishing) }).
		Return(nil)

	event := entity.Event{
		Name:       entity.EventLeadCaptured,
		Timestamp:  time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC),
		Properties: map[string]string{"email": "ana@example.com", "country": "spain", "language": "en"},
	}

	require.NoError(t, NewProducer(pub).Track(context.Background(), event))
	pub.AssertExpectations(t)

	assert.Equal(t, "application/json", sent.ContentType)
	assert.Equal(t, entity.EventLeadCaptured, sent.Type)
	assert.Equal(t, amqp.Persistent, sent.DeliveryMode)

	var decoded entity.Event
	require.NoError(t, json.Unmarshal(sent.Body, &decoded))
	assert.Equal(t, event.Name, decoded.Name)
	assert.Equal(t, "spain", decoded.Properties["country"])
}

func TestProducerWrapsPublishError(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("channel closed"))

	err := NewProducer(pub).Track(context.Background(), entity.Event{Name: "x"})
	assert.ErrorContains(t, err, "channel closed")
}

func TestWorkerProcessMessage(t *testing.T) {
	w := NewWorker(nil)

	assert.NoError(t, w.processMessage([]byte(`{"event":"lead_magnet_viewed","timestamp":"2026-02-02T10:00:00Z"}`)))
	assert.Error(t, w.processMessage([]byte(`not json`)))
	assert.Error(t, w.processMessage([]byte(`{"timestamp":"2026-02-02T10:00:00Z"}`)))
}

func TestWorkerStopsWhenContextIsDone(t *testing.T) {
	deliveries := make(chan amqp.Delivery)
	consumer := consumerFunc(func() (<-chan amqp.Delivery, error) { return deliveries, nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, NewWorker(consumer).Start(ctx, QueueName))
}

type consumerFunc func() (<-chan amqp.Delivery, error)

func (f consumerFunc) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return f()
}
