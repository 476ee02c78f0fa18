package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/customer-service/internal/config"
	"github.com/spec-kit/customer-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventCustomerCreated, n.handleCustomerCreated)
	n.dispatcher.Subscribe(events.EventCustomerUpdated, n.handleCustomerUpdated)
	n.dispatcher.Subscribe(events.EventCustomerDeleted, n.handleCustomerDeleted)
	n.dispatcher.Subscribe(events.EventBulkCreateCompleted, n.handleBulkCreateCompleted)
}

func (n *NotificationService) handleCustomerCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("CustomerCreated", zap.String("customer_id", event.CustomerID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleCustomerUpdated(ctx context.Context, event events.Event) error {
	n.logger.Info("CustomerUpdated", zap.String("customer_id", event.CustomerID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleCustomerDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("CustomerDeleted", zap.String("customer_id", event.CustomerID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleBulkCreateCompleted(ctx context.Context, event events.Event) error {
	n.logger.Info("BulkCreateCompleted", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("customer_id", event.CustomerID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("customer_id", event.CustomerID),
		zap.String("event_type", string(event.Type)))
}
