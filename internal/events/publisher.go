package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// InvalidationEvent tells cache consumers that a view is stale and should
// be recomputed on next read.
type InvalidationEvent struct {
	EventID string    `json:"event_id"`
	View    string    `json:"view"`
	At      time.Time `json:"at"`
}

// Publisher pushes cache-invalidation events to Kafka. A nil Publisher is
// valid and drops everything, which is how deployments without brokers run.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher connects a producer, or returns nil when no brokers are
// configured.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		log.Println("[EVENTS] [INFO] no brokers configured, cache invalidation disabled")
		return nil, nil
	}

	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to start Sarama producer: %w", err)
	}

	log.Println("[EVENTS] [INFO] Kafka producer connected")
	return &Publisher{producer: producer, topic: topic}, nil
}

// Invalidate publishes one event per view, fire-and-forget. Publish errors
// are logged and never surfaced to the calling workflow.
func (p *Publisher) Invalidate(views ...string) {
	if p == nil || p.producer == nil {
		return
	}

	for _, view := range views {
		event := InvalidationEvent{
			EventID: uuid.NewString(),
			View:    view,
			At:      time.Now().UTC(),
		}
		data, err := json.Marshal(event)
		if err != nil {
			log.Printf("[EVENTS] [ERROR] marshal invalidation for %s: %v", view, err)
			continue
		}

		msg := &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(view),
			Value: sarama.ByteEncoder(data),
		}
		if _, _, err := p.producer.SendMessage(msg); err != nil {
			log.Printf("[EVENTS] [ERROR] publish invalidation for %s: %v", view, err)
		}
	}
}

func (p *Publisher) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
