package config

import (
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/yeremiapane/geprek-app/utils"
)

// NewKafkaWriter mengembalikan nil jika KAFKA_BROKERS kosong
func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	if len(cfg.Brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion:   logKafkaCompletion,
	}
}

// Writer async tidak mengembalikan error ke WriteMessages, jadi dilaporkan di sini
func logKafkaCompletion(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	keys := make([]string, 0, len(messages))
	for _, m := range messages {
		keys = append(keys, string(m.Key))
	}
	utils.ErrorLogger.Errorf("Failed to publish %d event(s) %v to kafka: %v", len(messages), keys, err)
}
