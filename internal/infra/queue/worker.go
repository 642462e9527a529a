package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/lead-magnet/internal/entity"
	"github.com/xavierca1/lead-magnet/internal/infra/http/middleware"
)

// Consumer is the subset of *amqp.Channel the worker needs.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Worker drains the analytics queue and turns events into counters.
type Worker struct {
	Channel Consumer
}

func NewWorker(ch Consumer) *Worker {
	return &Worker{Channel: ch}
}

// Start consumes until ctx is done or the delivery channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf(" [*] Analytics worker waiting on '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Analytics worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				log.Println("⚠️ Analytics worker: delivery channel closed")
				return nil
			}
			if err := w.processMessage(d.Body); err != nil {
				log.Printf("❌ [WORKER] Invalid analytics event: %s", err)
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}
}

func (w *Worker) processMessage(body []byte) error {
	var event entity.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}
	if event.Name == "" {
		return fmt.Errorf("event without name")
	}

	middleware.RecordAnalyticsEvent(event.Name)
	log.Printf("📊 [WORKER] %s at %s %v", event.Name, event.Timestamp.Format("2006-01-02T15:04:05Z07:00"), event.Properties)
	return nil
}
