package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

// withdrawalMessage is the Kafka payload handed to the payment worker
type withdrawalMessage struct {
	TxID       string `json:"txid"`
	EnqueuedAt int64  `json:"enqueued_at_unix_ms"`
}

// KafkaWithdrawalQueue implements the WithdrawalQueue interface over a Kafka
// topic. Withdrawals survive process restarts and are processed by whichever
// payment worker picks them up.
type KafkaWithdrawalQueue struct {
	writer *kafka.Writer
}

// NewKafkaWithdrawalQueue creates a queue writing to the given topic
func NewKafkaWithdrawalQueue(brokers, topic string) *KafkaWithdrawalQueue {
	return &KafkaWithdrawalQueue{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

// Enqueue hands a withdrawal txid off for asynchronous processing. Keyed by
// txid so retries of the same withdrawal land on the same partition.
func (q *KafkaWithdrawalQueue) Enqueue(ctx context.Context, txid string) error {
	payload, err := json.Marshal(withdrawalMessage{
		TxID:       txid,
		EnqueuedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal withdrawal message: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(txid),
		Value: payload,
		Time:  time.Now(),
	}

	if err := q.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to enqueue withdrawal %s: %w", txid, err)
	}

	log.WithField("txid", txid).Debug("Enqueued withdrawal for processing")
	return nil
}

// Close flushes and closes the underlying writer
func (q *KafkaWithdrawalQueue) Close() error {
	return q.writer.Close()
}
