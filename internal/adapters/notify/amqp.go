package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
	portssvc "github.com/SscSPs/contas_app/internal/core/ports/services"
	"github.com/SscSPs/contas_app/internal/middleware"
	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// channel is the part of *amqp091.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// AMQPNotifier publishes bill events as JSON to a durable direct exchange.
type AMQPNotifier struct {
	conn       *amqp091.Connection
	mu         sync.Mutex // amqp channels are not safe for concurrent publishing
	ch         channel
	exchange   string
	routingKey string
	now        func() time.Time
}

var _ portssvc.BillNotifier = (*AMQPNotifier)(nil)

// NewAMQPNotifier dials url and declares the exchange and queue, bound with the
// queue name as routing key.
func NewAMQPNotifier(url, exchange, queue string) (*AMQPNotifier, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declare(ch, exchange, queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	n := newAMQPNotifier(ch, exchange, queue)
	n.conn = conn
	return n, nil
}

func newAMQPNotifier(ch channel, exchange, routingKey string) *AMQPNotifier {
	return &AMQPNotifier{ch: ch, exchange: exchange, routingKey: routingKey, now: time.Now}
}

func declare(ch *amqp091.Channel, exchange, queue string) error {
	if err := ch.ExchangeDeclare(
		exchange, // name
		"direct", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queue, queue, exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// NotifyBillEvent publishes one persistent message per event.
func (n *AMQPNotifier) NotifyBillEvent(ctx context.Context, event domain.BillEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal bill event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	n.mu.Lock()
	err = n.ch.PublishWithContext(ctx, n.exchange, n.routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    n.now(),
		Type:         string(event.Type),
		MessageId:    string(event.Type) + ":" + event.BillID,
		Body:         body,
	})
	n.mu.Unlock()
	if err != nil {
		return fmt.Errorf("publish bill event: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Published bill event",
		slog.String("event", string(event.Type)),
		slog.String("bill_id", event.BillID),
		slog.String("exchange", n.exchange))
	return nil
}

// Close releases the channel and the connection.
func (n *AMQPNotifier) Close() error {
	if n.ch != nil {
		n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
