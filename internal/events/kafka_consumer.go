package events

import (
	"context"

	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/domain/mascota"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RecentRefresher reloads every open recent records panel except the one of
// session exceptID.
type RecentRefresher interface {
	RefreshAll(ctx context.Context, exceptID string)
}

// IntakeEventConsumer listens to intake events and refreshes open sessions, so
// a record saved by one gateway instance shows up everywhere.
type IntakeEventConsumer struct {
	consumer  *kafka.Consumer
	refresher RecentRefresher
	logger    *zap.Logger
}

// NewIntakeEventConsumer creates a new IntakeEventConsumer.
func NewIntakeEventConsumer(
	brokers []string,
	groupID, topic string,
	refresher RecentRefresher,
	logger *zap.Logger,
) *IntakeEventConsumer {
	return &IntakeEventConsumer{
		consumer:  kafka.NewConsumer(brokers, groupID, topic, logger),
		refresher: refresher,
		logger:    logger,
	}
}

// Start begins consuming intake events. This blocks until the context is cancelled.
func (c *IntakeEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.HandleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *IntakeEventConsumer) Close() error {
	return c.consumer.Close()
}

// HandleMessage processes one raw message from the intake topic.
func (c *IntakeEventConsumer) HandleMessage(ctx context.Context, msg kafkago.Message) error {
	ce, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from intake topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch ce.Type {
	case mascota.EventRegistered, mascota.EventUpdated:
		var evt mascota.IntakeEvent
		if err := ce.ParseData(&evt); err != nil {
			c.logger.Error("failed to parse intake event data", zap.Error(err))
			return nil
		}
		c.logger.Debug("refreshing recent panels",
			zap.String("type", ce.Type),
			zap.Int64("mascota_id", evt.MascotaID),
			zap.String("origin_session", evt.OriginSession),
		)
		c.refresher.RefreshAll(ctx, evt.OriginSession)
		return nil
	default:
		c.logger.Debug("ignoring unhandled intake event type",
			zap.String("type", ce.Type),
		)
		return nil
	}
}
