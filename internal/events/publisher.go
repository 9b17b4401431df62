// Package events publishes domain events to a topic exchange so that
// downstream consumers (customer notifications, reporting) can react to
// lifecycle changes. Publishing is best-effort: the owning transaction
// has already committed by the time an event goes out, and a broker
// failure is logged, never surfaced to the caller.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

const (
	RoutingKeyPackageStatusChanged   = "package.status_changed"
	RoutingKeyContainerStatusChanged = "container.status_changed"
	RoutingKeyBatchUnlocked          = "batch.unlocked"
)

type StatusChangedEvent struct {
	ID          uuid.UUID `json:"id"`
	EntityType  string    `json:"entity_type"`
	EntityKey   string    `json:"entity_key"`
	OldStatusID int64     `json:"old_status_id"`
	NewStatusID int64     `json:"new_status_id"`
	ChangedBy   int64     `json:"changed_by"`
	Comment     string    `json:"comment,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type BatchUnlockedEvent struct {
	ID         uuid.UUID `json:"id"`
	BatchID    int64     `json:"batch_id"`
	UnlockedBy int64     `json:"unlocked_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is nil-safe: a nil *Publisher silently drops events, so the
// core runs unchanged without a broker (tests, local development).
type Publisher struct {
	client   *RabbitMQClient
	exchange string
}

func NewPublisher(client *RabbitMQClient, exchange string) *Publisher {
	return &Publisher{client: client, exchange: exchange}
}

func (p *Publisher) publish(routingKey string, payload interface{}) error {
	if p == nil || p.client == nil {
		return nil
	}
	if !p.client.IsConnected() {
		return fmt.Errorf("not connected to rabbitmq")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	return p.client.Channel().Publish(
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.New().String(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *Publisher) PackageStatusChanged(trackingCode string, oldStatusID, newStatusID, changedBy int64, comment string) {
	event := StatusChangedEvent{
		ID:          uuid.New(),
		EntityType:  "package",
		EntityKey:   trackingCode,
		OldStatusID: oldStatusID,
		NewStatusID: newStatusID,
		ChangedBy:   changedBy,
		Comment:     comment,
		OccurredAt:  time.Now(),
	}
	if err := p.publish(RoutingKeyPackageStatusChanged, event); err != nil {
		log.Printf("publish package status event for %s: %v", trackingCode, err)
	}
}

func (p *Publisher) ContainerStatusChanged(containerID int64, oldStatusID, newStatusID, changedBy int64, comment string) {
	event := StatusChangedEvent{
		ID:          uuid.New(),
		EntityType:  "container",
		EntityKey:   fmt.Sprintf("%d", containerID),
		OldStatusID: oldStatusID,
		NewStatusID: newStatusID,
		ChangedBy:   changedBy,
		Comment:     comment,
		OccurredAt:  time.Now(),
	}
	if err := p.publish(RoutingKeyContainerStatusChanged, event); err != nil {
		log.Printf("publish container status event for %d: %v", containerID, err)
	}
}

func (p *Publisher) BatchUnlocked(batchID, unlockedBy int64) {
	event := BatchUnlockedEvent{
		ID:         uuid.New(),
		BatchID:    batchID,
		UnlockedBy: unlockedBy,
		OccurredAt: time.Now(),
	}
	if err := p.publish(RoutingKeyBatchUnlocked, event); err != nil {
		log.Printf("publish batch unlocked event for %d: %v", batchID, err)
	}
}
