package events

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/domain/mascota"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/kafka"
	"go.uber.org/zap"
)

// Source identifies this service in emitted CloudEvents.
const Source = "service-shelter-intake"

// EventWriter is the part of the Kafka producer the publisher needs.
type EventWriter interface {
	PublishEvent(ctx context.Context, topic string, ce kafka.CloudEvent) error
}

// IntakePublisher announces saved records on the intake topic.
type IntakePublisher struct {
	writer EventWriter
	topic  string
	logger *zap.Logger
}

// NewIntakePublisher creates a publisher. A nil writer turns it into a no-op.
func NewIntakePublisher(writer EventWriter, topic string, logger *zap.Logger) *IntakePublisher {
	return &IntakePublisher{writer: writer, topic: topic, logger: logger}
}

// PublishIntake wraps evt in a CloudEvent and writes it to the topic.
func (p *IntakePublisher) PublishIntake(ctx context.Context, evt mascota.IntakeEvent) error {
	if p.writer == nil {
		return nil
	}
	ce, err := kafka.NewCloudEvent(Source, evt.Type, evt)
	if err != nil {
		return fmt.Errorf("build intake event: %w", err)
	}
	ce.Subject = strconv.FormatInt(evt.MascotaID, 10)

	if err := p.writer.PublishEvent(ctx, p.topic, ce); err != nil {
		return err
	}
	p.logger.Info("intake event published",
		zap.String("type", evt.Type),
		zap.Int64("mascota_id", evt.MascotaID),
	)
	return nil
}
