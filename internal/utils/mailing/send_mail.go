package mailing

import (
	"QR-Ordering-Backend/internal/utils"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// Mailer sends mail through the configured SMTP relay.
type Mailer struct {
	config MailConfig
}

// NewMailer returns nil when SMTP is not configured.
func NewMailer() *Mailer {
	cfg := LoadMailConfig()
	if cfg.SMTPHost == "" {
		return nil
	}
	return &Mailer{config: cfg}
}

func (m *Mailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	from := m.config.SMTPEmail
	if m.config.SMTPSender != "" {
		from = mailer.FormatAddress(m.config.SMTPEmail, m.config.SMTPSender)
	}
	mailer.SetHeader("From", from)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP port %q: %w", m.config.SMTPPort, err)
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}
