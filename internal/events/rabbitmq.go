package events

import (
	"fmt"
	"log"
	"sync"

	"github.com/streadway/amqp"

	"github.com/ardlogistics/backoffice/internal/config"
)

type RabbitMQClient struct {
	cfg        config.MessagingConfig
	connection *amqp.Connection
	channel    *amqp.Channel
	mu         sync.RWMutex
	closing    bool
}

func NewRabbitMQClient(cfg config.MessagingConfig) *RabbitMQClient {
	return &RabbitMQClient{cfg: cfg}
}

func (r *RabbitMQClient) Connect() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	connection, err := amqp.Dial(r.cfg.URL)
	if err != nil {
		return fmt.Errorf("connect to rabbitmq: %w", err)
	}

	channel, err := connection.Channel()
	if err != nil {
		connection.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		r.cfg.Exchange, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		connection.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}

	r.connection = connection
	r.channel = channel

	log.Printf("Connected to RabbitMQ, exchange %q", r.cfg.Exchange)
	return nil
}

func (r *RabbitMQClient) Channel() *amqp.Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.channel
}

func (r *RabbitMQClient) IsConnected() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.connection != nil && !r.connection.IsClosed()
}

func (r *RabbitMQClient) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closing {
		return nil
	}
	r.closing = true

	var closeErr error
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			closeErr = fmt.Errorf("close channel: %w", err)
		}
	}
	if r.connection != nil {
		if err := r.connection.Close(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("close connection: %w", err)
		}
	}

	return closeErr
}
