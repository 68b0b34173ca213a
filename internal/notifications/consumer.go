package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"tixly/internal/shared/config"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// NotificationEvent is the wire shape of a notification-created event on the
// ingestion topic.
type NotificationEvent struct {
	UserID    uuid.UUID            `json:"user_id"`
	Type      NotificationType     `json:"type"`
	Priority  NotificationPriority `json:"priority"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	ActionURL string               `json:"action_url,omitempty"`
}

type IngestConsumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
}

type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	Topics           []string
	SessionTimeoutMs int
	HeartbeatMs      int
	RetryBackoffMs   int
	OffsetOldest     bool
	AutoCommit       bool
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          []string{"localhost:9092"},
		GroupID:          "tixly-notification-workers",
		Topics:           []string{"notifications"},
		SessionTimeoutMs: 30000,
		HeartbeatMs:      3000,
		RetryBackoffMs:   100,
		OffsetOldest:     false,
		AutoCommit:       true,
	}
}

// ConsumerConfigFromApp maps the application config onto a consumer config.
func ConsumerConfigFromApp(cfg config.KafkaConfig) *ConsumerConfig {
	c := DefaultConsumerConfig()
	c.Brokers = cfg.Brokers
	c.Topics = []string{cfg.NotificationTopic}
	c.GroupID = cfg.ConsumerGroupID
	return c
}

type kafkaIngestConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	service       Service
	topics        []string
	cancel        context.CancelFunc
}

func NewKafkaIngestConsumer(config *ConsumerConfig, service Service) (IngestConsumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	if config.AutoCommit {
		saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
		saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &kafkaIngestConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		service:       service,
		topics:        config.Topics,
	}, nil
}

func (kic *kafkaIngestConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	ctx, kic.cancel = context.WithCancel(ctx)

	log.Printf("starting %d notification ingest workers for topics: %v", numWorkers, kic.topics)

	go kic.handleErrors()

	for i := 0; i < numWorkers; i++ {
		go kic.runWorker(ctx, i)
	}

	return nil
}

func (kic *kafkaIngestConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &ingestGroupHandler{
		service:  kic.service,
		workerID: workerID,
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("ingest worker %d shutting down", workerID)
			return
		default:
			if err := kic.consumerGroup.Consume(ctx, kic.topics, handler); err != nil {
				log.Printf("ingest worker %d consume error: %v", workerID, err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (kic *kafkaIngestConsumer) handleErrors() {
	for err := range kic.consumerGroup.Errors() {
		log.Printf("consumer group error: %v", err)
	}
}

func (kic *kafkaIngestConsumer) Stop() error {
	if kic.cancel != nil {
		kic.cancel()
	}
	return kic.consumerGroup.Close()
}

// ingestGroupHandler implements sarama.ConsumerGroupHandler.
type ingestGroupHandler struct {
	service  Service
	workerID int
}

func (h *ingestGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *ingestGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *ingestGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var event NotificationEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			// Malformed events are logged and skipped, never fatal
			log.Printf("worker %d: dropping malformed notification event at %s/%d/%d: %v",
				h.workerID, message.Topic, message.Partition, message.Offset, err)
			session.MarkMessage(message, "")
			continue
		}

		if event.UserID == uuid.Nil || event.Title == "" {
			log.Printf("worker %d: dropping notification event missing user or title", h.workerID)
			session.MarkMessage(message, "")
			continue
		}

		n := &Notification{
			UserID:    event.UserID,
			Type:      event.Type,
			Priority:  event.Priority,
			Title:     event.Title,
			Message:   event.Message,
			ActionURL: event.ActionURL,
		}
		if err := h.service.Ingest(session.Context(), n); err != nil {
			log.Printf("worker %d: failed to ingest notification: %v", h.workerID, err)
			// Leave unmarked so the message is retried after rebalance
			continue
		}

		session.MarkMessage(message, "")
	}
	return nil
}
