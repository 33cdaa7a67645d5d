package mailer

import (
	"crypto/tls"

	"github.com/Pincessis17/MerchFlow/pkg/config"
	"github.com/Pincessis17/MerchFlow/pkg/logger"

	"gopkg.in/gomail.v2"
)

// Mailer sends plain-text notification mail over SMTP. When SMTP is not
// configured every send is skipped and logged, mirroring dev environments.
type Mailer struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	useTLS    bool
}

// NewMailer builds a mailer from config.
func NewMailer(cfg *config.Config) *Mailer {
	fromEmail := cfg.SMTP.FromEmail
	if fromEmail == "" {
		fromEmail = cfg.SMTP.Username
	}
	return &Mailer{
		host:      cfg.SMTP.Host,
		port:      cfg.SMTP.Port,
		username:  cfg.SMTP.Username,
		password:  cfg.SMTP.Password,
		fromEmail: fromEmail,
		useTLS:    cfg.SMTP.UseTLS,
	}
}

// Enabled reports whether SMTP is configured.
func (m *Mailer) Enabled() bool {
	return m.host != "" && m.fromEmail != ""
}

// Send delivers one message. Best effort: failures are logged, never returned up.
func (m *Mailer) Send(toEmail, subject, body string) bool {
	if !m.Enabled() || toEmail == "" {
		logger.GetLogger().Infof("SMTP not configured; skipped email '%s' to %s", subject, toEmail)
		return false
	}

	message := gomail.NewMessage()
	message.SetHeader("From", m.fromEmail)
	message.SetHeader("To", toEmail)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if m.useTLS {
		dialer.TLSConfig = &tls.Config{ServerName: m.host}
	}

	if err := dialer.DialAndSend(message); err != nil {
		logger.GetLogger().Warnf("Email notification failed: %v", err)
		return false
	}
	return true
}
