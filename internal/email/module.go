package email

import (
	"context"

	"shopwise_backend/internal/events"
	"shopwise_backend/platform/config"
	"shopwise_backend/platform/logger"
)

// Module subscribes to domain events and sends transactional mail. It
// registers no HTTP routes.
type Module struct {
	sender Sender
	cfg    config.NotificationConfig
	log    *logger.Logger
}

// NewModule creates the email module. sender may be nil when SMTP is not
// configured; events are then logged and dropped.
func NewModule(sender Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	return &Module{sender: sender, cfg: cfg, log: log}
}

// RegisterHandlers subscribes the module to the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.UserRegistered{}.EventName(), events.HandlerFunc(m.handleUserRegistered))
}

func (m *Module) handleUserRegistered(ctx context.Context, event events.Event) error {
	registered, ok := event.(events.UserRegistered)
	if !ok {
		return nil
	}

	if m.sender == nil {
		m.log.Debug("email disabled, skipping welcome mail", "email", registered.Email)
		return nil
	}

	if err := m.sender.SendWelcomeEmail(ctx, registered.Email, registered.FullName, m.cfg.GetAppBaseURL()); err != nil {
		m.log.Error("welcome email failed", "email", registered.Email, "error", err)
		return err
	}

	m.log.Info("welcome email sent", "email", registered.Email)
	return nil
}
