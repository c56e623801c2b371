// Package kafka publishes completed assessments to an audit topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/cairnhealth/altitude-risk-service/internal/config"
	"github.com/cairnhealth/altitude-risk-service/internal/domain"
)

// Publisher produces assessment audit messages to a Kafka topic.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured audit topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAuditTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes and writes one assessment to the audit topic. The message
// key is the deterministic assessment ID, so replays are deduplicable.
func (p *Publisher) Publish(ctx context.Context, assessment domain.Assessment) error {
	msg, err := serializeToMessage(assessment)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals an Assessment into a Kafka message.
func serializeToMessage(assessment domain.Assessment) (kafkago.Message, error) {
	data, err := json.Marshal(assessment)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize assessment: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(assessment.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte(assessment.Risk.Level)},
			{Key: "evaluated_at", Value: []byte(assessment.EvaluatedAt.Format(time.RFC3339))},
		},
	}, nil
}
