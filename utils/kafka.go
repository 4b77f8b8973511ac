package utils

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/farhanputra/event-management-backend/config"
)

var kafkaWriter *kafka.Writer

// InitKafka prepares the shared writer for the notification event bus
func InitKafka(cfg *config.Config) {
	if cfg.KafkaBrokers == "" {
		log.Println("⚠️ Kafka brokers not configured, event bus disabled")
		return
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
		Topic:        cfg.KafkaNotificationTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	log.Println("✅ Kafka writer ready")
}

// KafkaEnabled reports whether the event bus writer is configured
func KafkaEnabled() bool {
	return kafkaWriter != nil
}

// PublishEvent writes a JSON message to the notification topic, best effort
func PublishEvent(ctx context.Context, key string, payload interface{}) {
	if kafkaWriter == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	err = kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: raw,
	})
	if err != nil {
		log.Printf("⚠️ Failed to publish kafka message %s: %v", key, err)
	}
}

// NewKafkaReader builds a consumer-group reader for the notification topic
func NewKafkaReader(cfg *config.Config, groupID string) *kafka.Reader {
	if cfg.KafkaBrokers == "" {
		return nil
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(cfg.KafkaBrokers, ","),
		GroupID:  groupID,
		Topic:    cfg.KafkaNotificationTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// CloseKafka flushes and closes the writer
func CloseKafka() {
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			log.Printf("⚠️ Failed to close kafka writer: %v", err)
		}
	}
}
