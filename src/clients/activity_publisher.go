package clients

import (
	"encoding/json"
	"fmt"
	"time"

	"recipebox-svc/src/internal/config"
	"recipebox-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// ActivityPublisher publishes audit activity messages to RabbitMQ. When the
// broker is unavailable the publisher is a no-op: audit is best-effort and
// must never block a login or a recipe mutation.
type ActivityPublisher struct {
	channel *amqp.Channel
	cfg     *config.RabbitMQConfig
}

func NewActivityPublisher(cfg *config.Configuration, channel *amqp.Channel) *ActivityPublisher {
	return &ActivityPublisher{
		channel: channel,
		cfg:     &cfg.Queue.RabbitMQ,
	}
}

// Publish sends an activity message for the given action.
func (p *ActivityPublisher) Publish(userID, username, serviceName, action string) error {
	return p.PublishWithDetails(userID, username, serviceName, action, "", "")
}

// PublishWithDetails sends an activity message including IP and UserAgent.
func (p *ActivityPublisher) PublishWithDetails(userID, username, serviceName, action, ipAddress, userAgent string) error {
	if p.channel == nil {
		logrus.WithField("action", action).Debug("RabbitMQ not connected, skipping activity publish")
		return nil
	}

	message := models.ActivityMessage{
		UserID:      userID,
		Username:    username,
		ServiceName: serviceName,
		Action:      action,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Timestamp:   time.Now(),
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal activity message: %w", err)
	}

	err = p.channel.Publish(
		p.cfg.Exchange,
		p.cfg.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)

	if err != nil {
		logrus.WithError(err).Error("Failed to publish activity message")
		return fmt.Errorf("failed to publish activity message: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"username":    username,
		"service":     serviceName,
		"action":      action,
		"exchange":    p.cfg.Exchange,
		"routing_key": p.cfg.RoutingKey,
	}).Debug("Activity message published")

	return nil
}
