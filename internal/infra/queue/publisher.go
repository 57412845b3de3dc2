package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher emits domain events. Implementations must be safe for concurrent use.
type Publisher interface {
	PublishJSON(ctx context.Context, routingKey string, data any) error
}

// AMQPPublisher publishes persistent JSON messages to a topic exchange.
type AMQPPublisher struct {
	exchange string
	log      *zap.Logger

	mu   sync.Mutex
	ch   *amqp.Channel
	conn *amqp.Connection // set when the publisher dialed it
}

// Dial connects to url and returns a publisher that owns the connection.
func Dial(url, exchange string, log *zap.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	p, err := NewPublisher(conn, exchange, log)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// NewPublisher opens a channel on conn and declares exchange as a durable
// topic exchange.
func NewPublisher(conn *amqp.Connection, exchange string, log *zap.Logger) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{exchange: exchange, log: log, ch: ch}, nil
}

func (p *AMQPPublisher) PublishJSON(ctx context.Context, routingKey string, data any) error {
	body, err := sonic.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", routingKey, err)
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	p.log.Debug("event published", zap.String("exchange", p.exchange), zap.String("routing_key", routingKey))
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Shutdown lets the DI container close the publisher.
func (p *AMQPPublisher) Shutdown() error {
	return p.Close()
}
