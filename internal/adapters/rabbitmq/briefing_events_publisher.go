package rabbitmq

import (
	"briefing-service/internal/constants"
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/contracts"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/port"
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// messagePublisher - то, что адаптеру нужно от rabbitmq_producer.Publisher.
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// BriefingEventsAdapter публикует изменения статусов брифинга в RabbitMQ.
type BriefingEventsAdapter struct {
	producer   messagePublisher
	routingKey string
}

func NewBriefingEventsAdapter(producer messagePublisher, routingKey string) (*BriefingEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &BriefingEventsAdapter{producer: producer, routingKey: routingKey}, nil
}

func (a *BriefingEventsAdapter) PublishStatusChanged(ctx context.Context, event domain.BriefingStatusChanged) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "BriefingEventsAdapter",
		"routing_key": a.routingKey,
		"listing_id":  event.ListingID,
	})

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal event: %w", err)
	}
	// событие, не прошедшее схему, в брокер не отправляется
	if err := contracts.Validate(contracts.BriefingStatusChangedV1, body); err != nil {
		adapterLogger.Error("Event does not match its schema", err, nil)
		return fmt.Errorf("rabbitmq adapter: invalid event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.ChangedAt,
		Headers: amqp.Table{
			constants.HeaderEventType:    constants.EventBriefingStatusChanged,
			constants.HeaderEventVersion: constants.EventVersionV1,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers[constants.HeaderTraceID] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish briefing status event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish event: %w", err)
	}

	adapterLogger.Debug("Briefing status event published", port.Fields{"status": event.Status})
	return nil
}

// NoopEventsAdapter используется, когда RabbitMQ выключен.
type NoopEventsAdapter struct{}

func (NoopEventsAdapter) PublishStatusChanged(context.Context, domain.BriefingStatusChanged) error {
	return nil
}
