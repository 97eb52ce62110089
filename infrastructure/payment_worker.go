package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"betsim/domain/interfaces"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

// PaymentWorker consumes queued withdrawals and resolves them through the
// journal service. CompleteWithdraw is idempotent, so Kafka's at-least-once
// delivery is safe here.
type PaymentWorker struct {
	reader  *kafka.Reader
	journal interfaces.JournalService
}

// NewPaymentWorker creates a worker reading from the withdrawal topic
func NewPaymentWorker(brokers, topic, groupID string, journal interfaces.JournalService) *PaymentWorker {
	return &PaymentWorker{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{brokers},
			Topic:          topic,
			GroupID:        groupID,
			MinBytes:       1,
			MaxBytes:       10e6,
			CommitInterval: time.Second,
		}),
		journal: journal,
	}
}

// Run consumes withdrawals until the context is cancelled
func (w *PaymentWorker) Run(ctx context.Context) error {
	log.Info("Payment worker started")
	defer w.reader.Close()

	for {
		m, err := w.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("Payment worker stopped")
				return ctx.Err()
			}
			log.WithError(err).Warn("Failed to read withdrawal message")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		var msg withdrawalMessage
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			log.WithFields(log.Fields{
				"offset": m.Offset,
				"error":  err,
			}).Warn("Skipping malformed withdrawal message")
			continue
		}

		status, err := w.journal.CompleteWithdraw(ctx, msg.TxID)
		if err != nil {
			log.WithFields(log.Fields{
				"txid":  msg.TxID,
				"error": err,
			}).Error("Failed to complete withdrawal")
			continue
		}

		log.WithFields(log.Fields{
			"txid":   msg.TxID,
			"status": status,
		}).Info("Withdrawal processed")
	}
}
