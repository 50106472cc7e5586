//go:build integration

package main_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/apiclient"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/config"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/events"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/handler"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/kafka"
)

const intakeTopic = "shelter.intake.events"

// testInfra holds shared test infrastructure.
type testInfra struct {
	KafkaBrokers []string
	Cleanup      func()
}

// intakeStack holds wired-up gateway components.
type intakeStack struct {
	Sessions        *handler.SessionRegistry
	Consumer        *events.IntakeEventConsumer
	CleanupProducer func()
}

// fakeShelterAPI answers the shelter API routes and counts listings.
type fakeShelterAPI struct {
	*httptest.Server
	listCalls atomic.Int64

	mu      sync.Mutex
	records []map[string]any
}

func newFakeShelterAPI(t *testing.T) *fakeShelterAPI {
	t.Helper()
	api := &fakeShelterAPI{records: []map[string]any{}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload-image", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"url": "/uploads/" + uuid.New().String() + ".png"})
	})
	mux.HandleFunc("POST /mascotas", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
			return
		}
		api.mu.Lock()
		body["id"] = len(api.records) + 1
		api.records = append([]map[string]any{body}, api.records...)
		id := body["id"]
		api.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "message": "Mascota creada exitosamente"})
	})
	mux.HandleFunc("GET /mascotas", func(w http.ResponseWriter, _ *http.Request) {
		api.listCalls.Add(1)
		api.mu.Lock()
		defer api.mu.Unlock()
		writeJSON(w, http.StatusOK, api.records)
	})

	api.Server = httptest.NewServer(mux)
	t.Cleanup(api.Close)
	return api
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// setupContainers starts a Kafka testcontainer and creates the intake topic.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, intakeTopic)

	cleanup := func() {
		if err := testcontainers.TerminateContainer(kafkaContainer); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
	}

	return &testInfra{
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupIntakeStack wires one gateway instance against the fake API and real
// Kafka, joining the per-instance consumer group the server would use.
func setupIntakeStack(t *testing.T, apiURL string, brokers []string) *intakeStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	client, err := apiclient.New(apiclient.Config{BaseURL: apiURL, Timeout: 5 * time.Second}, logger)
	require.NoError(t, err)

	producer := kafka.NewProducer(brokers, logger)
	publisher := events.NewIntakePublisher(producer, intakeTopic, logger)

	sessions, err := handler.NewSessionRegistry(16, client, publisher, logger)
	require.NoError(t, err)

	cfg := &config.ServiceConfig{Kafka: config.KafkaConfig{GroupID: "shelter-intake-gateway"}}
	groupID := cfg.ConsumerGroupID(uuid.New().String())
	consumer := events.NewIntakeEventConsumer(brokers, groupID, intakeTopic, sessions, logger)

	return &intakeStack{
		Sessions:        sessions,
		Consumer:        consumer,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
