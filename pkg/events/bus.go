package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// NotificationMessage is the wire format fanned out to console listeners.
type NotificationMessage struct {
	ID        uint                   `json:"id"`
	CompanyID uint                   `json:"company_id,omitempty"`
	Category  string                 `json:"category"`
	EventType string                 `json:"event_type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Created   int64                  `json:"created"`
}

// Bus publishes platform notifications over redis pub/sub so every server
// instance and websocket listener sees them.
type Bus struct {
	client *redis.Client
	prefix string
}

// NewBus wraps an existing redis client.
func NewBus(client *redis.Client, prefix string) *Bus {
	if prefix == "" {
		prefix = "merchflow"
	}
	return &Bus{
		client: client,
		prefix: prefix,
	}
}

func (b *Bus) channel() string {
	return fmt.Sprintf("%s:notifications:platform", b.prefix)
}

// PublishPlatformNotification fans a notification out to live listeners.
func (b *Bus) PublishPlatformNotification(msg *NotificationMessage) error {
	if msg.Created == 0 {
		msg.Created = time.Now().Unix()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return b.client.Publish(ctx, b.channel(), data).Err()
}

// SubscribePlatformNotifications opens a pub/sub subscription. The caller owns
// the returned subscription and must Close it.
func (b *Bus) SubscribePlatformNotifications(ctx context.Context) *redis.PubSub {
	return b.client.Subscribe(ctx, b.channel())
}

// Decode parses a raw pub/sub payload.
func Decode(payload string) (*NotificationMessage, error) {
	var msg NotificationMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
