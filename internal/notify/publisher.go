// Package notify hands e-mail notifications to an external mailer through Redis.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pracor/pracor/internal/redis"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// Channel is the Redis channel the mailer subscribes to.
const Channel = "notifications"

// Message is one e-mail to be sent.
type Message struct {
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sentAt"`
}

// Publisher publishes notification messages.
type Publisher struct {
	client rueidis.Client
	logger *zap.Logger
}

// NewPublisher creates a publisher on the notification connection.
func NewPublisher(redisManager *redis.Manager, logger *zap.Logger) (*Publisher, error) {
	client, err := redisManager.GetClient(redis.NotifyDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get Redis client: %w", err)
	}

	return &Publisher{
		client: client,
		logger: logger.Named("notify"),
	}, nil
}

// Publish sends the message to the notification channel. Messages without a
// recipient are dropped.
func (p *Publisher) Publish(ctx context.Context, msg *Message) error {
	if msg.Recipient == "" {
		p.logger.Debug("Dropping notification without recipient", zap.String("subject", msg.Subject))
		return nil
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now().UTC()
	}

	data, err := sonic.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = p.client.Do(ctx, p.client.B().Publish().Channel(Channel).Message(rueidis.BinaryString(data)).Build()).Error()
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	p.logger.Debug("Published notification",
		zap.String("recipient", msg.Recipient),
		zap.String("subject", msg.Subject))

	return nil
}
