// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

// Package email sends the notification that goes out after an approved
// verification.
package email

import (
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/mcubecollections/selfie-verification/internal/config"
)

// Service sends approval notifications via SMTP.
type Service struct {
	cfg        config.SMTPConfig
	recipients []string
	now        func() time.Time
}

// NewService creates an email service. An incomplete SMTP configuration is
// allowed; sends are skipped with a warning instead of failing the
// verification flow.
func NewService(cfg config.SMTPConfig, recipients []string) *Service {
	return &Service{cfg: cfg, recipients: recipients, now: time.Now}
}

// Notification describes one completed verification.
type Notification struct {
	Name      string
	Email     string
	SessionID string
	Status    string
}

// SendApprovalNotification emails the configured recipients about a
// successful verification.
func (s *Service) SendApprovalNotification(n Notification) error {
	if len(s.recipients) == 0 {
		return nil
	}
	if s.cfg.Host == "" || s.cfg.Username == "" || s.cfg.From == "" {
		slog.Warn("email configuration is incomplete; skipping approval notification")
		return nil
	}

	name := n.Name
	if name == "" {
		name = "Unknown"
	}
	completedAt := s.now().UTC().Format(time.RFC3339)

	textLines := []string{
		"A user has successfully completed KYC selfie verification.",
		"",
		"Name: " + name,
		"Email: " + n.Email,
		"Session ID: " + n.SessionID,
		"Status: " + n.Status,
		"Completed At: " + completedAt,
	}

	htmlParts := []string{
		"<p>A user has successfully completed KYC selfie verification.</p>",
		"<ul>",
		"<li><strong>Name:</strong> " + html.EscapeString(name) + "</li>",
		"<li><strong>Email:</strong> " + html.EscapeString(n.Email) + "</li>",
		"<li><strong>Session ID:</strong> " + html.EscapeString(n.SessionID) + "</li>",
		"<li><strong>Status:</strong> " + html.EscapeString(n.Status) + "</li>",
		"<li><strong>Completed At:</strong> " + completedAt + "</li>",
		"</ul>",
	}

	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}
	if err := msg.To(s.recipients...); err != nil {
		return fmt.Errorf("setting to addresses: %w", err)
	}

	msg.Subject("KYC selfie verification success: " + name)
	msg.SetBodyString(mail.TypeTextPlain, strings.Join(textLines, "\n"))
	msg.AddAlternativeString(mail.TypeTextHTML, strings.Join(htmlParts, ""))

	client, err := s.client()
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}

func (s *Service) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Implicit TLS for the SMTPS port, STARTTLS for everything else
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	return mail.NewClient(s.cfg.Host, opts...)
}
