package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rently/internal/shared/config"
	"rently/pkg/logger"

	"github.com/IBM/sarama"
)

// DecisionConsumer drains the decision topic and hands each event to a
// handler. The default handler just logs, which gives operators a
// decision audit trail without any extra infrastructure.
type DecisionConsumer struct {
	group   sarama.ConsumerGroup
	topic   string
	handler func(ctx context.Context, event *DecisionEvent) error
	log     *logger.Logger
	cancel  context.CancelFunc
}

func NewDecisionConsumer(cfg *config.KafkaConfig, handler func(ctx context.Context, event *DecisionEvent) error) (*DecisionConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	log := logger.GetDefault()
	consumer := &DecisionConsumer{
		group: group,
		topic: cfg.DecisionTopic,
		log:   log,
	}
	if handler != nil {
		consumer.handler = handler
	} else {
		consumer.handler = consumer.logDecision
	}
	return consumer, nil
}

// Start consumes until the context is cancelled or Stop is called.
func (c *DecisionConsumer) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)

	go func() {
		for err := range c.group.Errors() {
			c.log.Error("decision consumer error", "error", err)
		}
	}()

	go func() {
		handler := &decisionGroupHandler{consumer: c}
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
				if errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return
				}
				c.log.Error("decision consumer session failed", "error", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	c.log.Info("decision consumer started", "topic", c.topic)
}

func (c *DecisionConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	if err := c.group.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	c.log.Info("decision consumer stopped")
	return nil
}

func (c *DecisionConsumer) logDecision(_ context.Context, event *DecisionEvent) error {
	c.log.Info("application decision received",
		"type", event.Type,
		"application_id", event.ApplicationID,
		"business", event.BusinessName,
		"owner_email", event.OwnerEmail,
		"event", event.EventName,
		"facility", event.FacilityName,
		"reason", event.Reason)
	return nil
}

type decisionGroupHandler struct {
	consumer *DecisionConsumer
}

func (h *decisionGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *decisionGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *decisionGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		event, err := DecisionEventFromJSON(message.Value)
		if err != nil {
			h.consumer.log.Error("failed to decode decision event", "error", err,
				"partition", message.Partition, "offset", message.Offset)
			session.MarkMessage(message, "")
			continue
		}
		if err := h.consumer.handler(session.Context(), event); err != nil {
			h.consumer.log.Error("failed to handle decision event", "error", err,
				"application_id", event.ApplicationID)
		}
		session.MarkMessage(message, "")
	}
	return nil
}
