// Package notify creates notification rows and fans them out to RabbitMQ.
// The database row is the source of truth; queue publishing is fire-and-forget
// and a publish failure never fails the triggering request.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/DashCode47/espebackend/internal/models"
	"github.com/DashCode47/espebackend/internal/repositories"
)

// QueueName is the queue notification events are published to.
const QueueName = "notifications"

// Event is the payload published for each created notification.
type Event struct {
	NotificationID string    `json:"notificationId"`
	UserID         string    `json:"userId"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Notifier writes notification rows and optionally publishes events.
type Notifier struct {
	repo    repositories.NotificationRepository
	channel *amqp.Channel // nil when RabbitMQ is not configured
}

// NewNotifier creates a Notifier. channel may be nil.
func NewNotifier(repo repositories.NotificationRepository, channel *amqp.Channel) *Notifier {
	if channel != nil {
		// Durable so events survive broker restarts. Declaration is idempotent.
		if _, err := channel.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
			log.Printf("rabbitmq: queue declare failed, publishing disabled: %v", err)
			channel = nil
		}
	}
	return &Notifier{repo: repo, channel: channel}
}

// Notify inserts a notification row for userID and publishes an event.
// The row insert error is returned; callers that want fire-and-forget
// semantics ignore it, matching how the triggering flows behave.
func (n *Notifier) Notify(ctx context.Context, userID, message string) error {
	notification := &models.Notification{
		UserID:  userID,
		Message: message,
	}
	if err := n.repo.CreateNotification(notification); err != nil {
		return err
	}

	n.publish(ctx, Event{
		NotificationID: notification.ID,
		UserID:         notification.UserID,
		Message:        notification.Message,
		CreatedAt:      notification.CreatedAt,
	})
	return nil
}

func (n *Notifier) publish(ctx context.Context, event Event) {
	if n.channel == nil {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return
	}

	err = n.channel.PublishWithContext(ctx,
		"",        // default exchange
		QueueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
	}
}
