package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"folio.backend/internal/config"
	"folio.backend/pkg/logger"
	"go.uber.org/zap"
)

// Mailer dispatches verification emails. The core only guarantees the
// dispatch call itself succeeded or failed; delivery is the relay's problem.
type Mailer interface {
	SendVerification(ctx context.Context, to, verifyURL string) error
}

// New selects the mailer for the configured mode. Anything other than
// "smtp" falls back to the log mailer, which is the development default.
func New(cfg config.EmailConfig) Mailer {
	if cfg.Mode == "smtp" {
		return &SMTPMailer{cfg: cfg}
	}
	return &LogMailer{from: cfg.From}
}

// LogMailer writes the would-be email to the structured log instead of
// sending it. Development mode only.
type LogMailer struct {
	from string
}

func (m *LogMailer) SendVerification(ctx context.Context, to, verifyURL string) error {
	logger.Info(ctx, "verification email (log mode, not sent)",
		zap.String("from", m.from),
		zap.String("to", to),
		zap.String("verify_url", verifyURL),
	)
	return nil
}

// SMTPMailer sends verification emails through an SMTP relay.
type SMTPMailer struct {
	cfg config.EmailConfig
}

var smtpSendMail = smtp.SendMail

func (m *SMTPMailer) SendVerification(ctx context.Context, to, verifyURL string) error {
	if m.cfg.SMTPHost == "" {
		return errors.New("smtp host not configured")
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Verify your email address\r\nContent-Type: text/plain; charset=utf-8\r\n\r\nWelcome!\r\n\r\nClick this link to verify your email:\r\n%s\r\n",
		m.cfg.From, to, verifyURL)

	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	}

	addr := net.JoinHostPort(m.cfg.SMTPHost, strconv.Itoa(m.cfg.SMTPPort))
	if err := smtpSendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	logger.Info(ctx, "verification email dispatched", zap.String("to", to))
	return nil
}
