//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/cairnhealth/altitude-risk-service/internal/adapter/kafka"
	"github.com/cairnhealth/altitude-risk-service/internal/config"
	"github.com/cairnhealth/altitude-risk-service/internal/domain"
	"github.com/cairnhealth/altitude-risk-service/internal/observability"
	"github.com/cairnhealth/altitude-risk-service/internal/service"
)

const testAuditTopic = "test-assessment-audit"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-broker Kafka container and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.6.1",
		tckafka.WithClusterID("test-cluster"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic via the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestAuditPublishRoundTrip runs a full assessment through the service with a
// real Kafka broker and verifies the audit message that lands on the topic.
func TestAuditPublishRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAuditTopic)

	cfg := &config.Config{
		KafkaBrokers:    []string{broker},
		KafkaAuditTopic: testAuditTopic,
	}

	publisher := kafkaadapter.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	metrics := observability.NewMetricsForTesting()
	assessor := service.New(domain.DefaultGuideline(), nil, publisher, nil, metrics, discardLogger())

	elevation := 4200.0
	result, err := assessor.Assess(ctx, service.AssessRequest{
		ElevationMeters: &elevation,
		Profile:         domain.RiskProfile{RapidAscent: true},
		Symptoms:        domain.SymptomSet{Headache: true, Nausea: true, Dizziness: true},
	})
	require.NoError(t, err)
	require.Equal(t, domain.RiskHigh, result.Assessment.Risk.Level)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testAuditTopic,
		GroupID:     fmt.Sprintf("test-audit-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from audit topic")

	assert.Equal(t, result.Assessment.ID, string(msg.Key))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "high", headers["risk_level"])
	_, err = time.Parse(time.RFC3339, headers["evaluated_at"])
	assert.NoError(t, err, "evaluated_at should be valid RFC3339")

	var audited domain.Assessment
	require.NoError(t, json.Unmarshal(msg.Value, &audited))
	assert.Equal(t, result.Assessment.ID, audited.ID)
	assert.Equal(t, "wms-2024", audited.Guideline)
	assert.Equal(t, 4200.0, audited.ElevationMeters)
	assert.Equal(t, "Very High Altitude", audited.Category.Name)
	assert.Equal(t, 3, audited.Severity.LakeLouiseScore)
	assert.True(t, audited.Severity.Classification == domain.MildModerate)
}

// TestAuditPublishIdempotentKey publishes the same input twice and verifies
// both messages carry the same deterministic key.
func TestAuditPublishIdempotentKey(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAuditTopic)

	cfg := &config.Config{
		KafkaBrokers:    []string{broker},
		KafkaAuditTopic: testAuditTopic,
	}

	publisher := kafkaadapter.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	metrics := observability.NewMetricsForTesting()
	assessor := service.New(domain.DefaultGuideline(), nil, publisher, nil, metrics, discardLogger())

	elevation := 2800.0
	req := service.AssessRequest{ElevationMeters: &elevation}

	first, err := assessor.Assess(ctx, req)
	require.NoError(t, err)
	second, err := assessor.Assess(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.Assessment.ID, second.Assessment.ID)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testAuditTopic,
		GroupID:     fmt.Sprintf("test-audit-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	for i := 0; i < 2; i++ {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err)
		assert.Equal(t, first.Assessment.ID, string(msg.Key))
	}
}
