package handler

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"github.com/hotdrive/rental-service/rental/internal/model"
	"go.uber.org/zap"
)

type deliver func(ctx context.Context, payload model.NotificationPayload) error

// Consumer reads booking notification events and hands them to the mail
// delivery func. The same instance is reused across sessions: the consume
// loop rejoins after every rebalance, so Setup must be re-entrant.
type Consumer struct {
	deliverHandler deliver
	log            *zap.Logger
}

func NewConsumer(deliver deliver, log *zap.Logger) *Consumer {
	return &Consumer{
		deliverHandler: deliver,
		log:            log.Named("consumer"),
	}
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var payload model.NotificationPayload
			if err := json.Unmarshal(message.Value, &payload); err != nil {
				consumer.log.Error("", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if err := consumer.deliverHandler(context.Background(), payload); err != nil {
				// delivery is best-effort, the event is still marked so
				// a dead webhook cannot wedge the partition
				consumer.log.Error("consumer.deliverHandler", zap.Error(err))
			}

			consumer.log.Debug("Message claimed:", zap.String("value", string(message.Value)), zap.Time("timestamp", message.Timestamp), zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
