package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/smtp"
	"strconv"
	"time"

	"github.com/jordan-wright/email"
	"github.com/marifyahya/test-backenddev/domain"
	"github.com/marifyahya/test-backenddev/internal/config"
)

// sender is satisfied by *email.Pool
type sender interface {
	Send(e *email.Email, timeout time.Duration) error
}

// EmailServiceImpl implements domain.NotificationService over an SMTP connection pool
type EmailServiceImpl struct {
	pool       sender
	from       string
	toOverride string
	timeout    time.Duration
}

// NewEmailService creates the notification service for the configured mail driver
func NewEmailService(cfg *config.Config) (domain.NotificationService, error) {
	switch cfg.MailDriver {
	case config.MailDriverLog:
		slog.Warn("mail driver is log, emails will not be delivered")
		return NewLogMailer(slog.Default()), nil
	case config.MailDriverSMTP, "":
	default:
		return nil, fmt.Errorf("unsupported mail driver: %s", cfg.MailDriver)
	}
	if cfg.MailHost == "" {
		return nil, fmt.Errorf("smtp mail driver requires a host")
	}

	var auth smtp.Auth
	if cfg.MailUsername != "" || cfg.MailPassword != "" {
		auth = smtp.PlainAuth("", cfg.MailUsername, cfg.MailPassword, cfg.MailHost)
	}
	tlsOpts := &tls.Config{
		InsecureSkipVerify: cfg.MailInsecureTLS,
		ServerName:         cfg.MailHost,
	}

	addr := cfg.MailHost + ":" + strconv.Itoa(cfg.MailPort)
	pool, err := email.NewPool(addr, cfg.MailConnections, auth, tlsOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to set up smtp pool: %w", err)
	}

	return newEmailService(pool, cfg.MailFrom, cfg.MailToOverride, cfg.MailSendTimeout), nil
}

func newEmailService(pool sender, from, toOverride string, timeout time.Duration) *EmailServiceImpl {
	return &EmailServiceImpl{
		pool:       pool,
		from:       from,
		toOverride: toOverride,
		timeout:    timeout,
	}
}

// SendEmail implements domain.NotificationService
func (s *EmailServiceImpl) SendEmail(ctx context.Context, to, subject, body string) error {
	recipient := to
	if s.toOverride != "" {
		recipient = s.toOverride
	}

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	e := &email.Email{
		To:      []string{recipient},
		From:    s.from,
		Subject: subject,
		Text:    []byte(body),
	}
	if err := s.pool.Send(e, timeout); err != nil {
		slog.Error("error when trying to send email",
			slog.String("error", err.Error()),
			slog.String("to", recipient))
		return fmt.Errorf("%w: send email: %v", domain.ErrUpstream, err)
	}
	return nil
}

// LogMailer implements domain.NotificationService by logging the envelope. The body is
// never logged since it carries reset codes.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a mailer that records every message on logger
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// SendEmail implements domain.NotificationService
func (m *LogMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	m.logger.InfoContext(ctx, "email not sent, log mail driver",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Int("body_bytes", len(body)))
	return nil
}
