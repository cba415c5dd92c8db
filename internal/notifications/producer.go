package notifications

import (
	"context"
	"fmt"
	"time"

	"rently/internal/shared/config"
	"rently/pkg/logger"

	"github.com/IBM/sarama"
)

// Publisher is the contract the approval service publishes decision
// events through.
type Publisher interface {
	PublishDecision(ctx context.Context, event *DecisionEvent) error
	Close() error
}

// KafkaDecisionPublisher publishes decision events to the configured
// Kafka topic using a synchronous idempotent producer.
type KafkaDecisionPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

func NewKafkaDecisionPublisher(cfg *config.KafkaConfig) (*KafkaDecisionPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log := logger.GetDefault()
	log.Info("Kafka decision publisher created", "topic", cfg.DecisionTopic, "brokers", cfg.Brokers)

	return &KafkaDecisionPublisher{
		producer: producer,
		topic:    cfg.DecisionTopic,
		log:      log,
	}, nil
}

func (p *KafkaDecisionPublisher) PublishDecision(ctx context.Context, event *DecisionEvent) error {
	payload, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal decision event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.PartitionKey()),
		Value:     sarama.ByteEncoder(payload),
		Headers:   decisionHeaders(event),
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish decision event: %w", err)
	}

	p.log.Debug("decision event published",
		"type", event.Type,
		"application_id", event.ApplicationID,
		"partition", partition,
		"offset", offset)
	return nil
}

func decisionHeaders(event *DecisionEvent) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(event.ID.String())},
		{Key: []byte("decision_type"), Value: []byte(event.Type)},
		{Key: []byte("application_id"), Value: []byte(event.ApplicationID.String())},
		{Key: []byte("owner_email"), Value: []byte(event.OwnerEmail)},
		{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
	}
}

func (p *KafkaDecisionPublisher) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		p.log.Info("Kafka decision publisher closed")
	}
	return nil
}
