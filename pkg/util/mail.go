package util

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/brightbuy/brightbuy-backend/pkg/logger"
)

// MailSettings is the SMTP account used for outgoing mail.
type MailSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Configured reports whether credentials are present. Without them mail is only logged.
func (m MailSettings) Configured() bool {
	return m.Host != "" && m.Username != "" && m.Password != ""
}

// BuildHTMLMessage renders RFC 5322 headers followed by an HTML body.
func BuildHTMLMessage(from, fromName, to, subject, body string) []byte {
	sender := from
	if fromName != "" {
		sender = fmt.Sprintf("%s <%s>", fromName, from)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", sender)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// SendHTMLMail delivers an HTML message over SMTP with PLAIN auth.
func SendHTMLMail(settings MailSettings, to, subject, body string) error {
	if !settings.Configured() {
		logger.Info("[DEV MODE] SMTP not configured, mail not sent", map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
		return nil
	}

	from := settings.From
	if from == "" {
		from = settings.Username
	}

	auth := smtp.PlainAuth("", settings.Username, settings.Password, settings.Host)
	addr := fmt.Sprintf("%s:%d", settings.Host, settings.Port)
	msg := BuildHTMLMessage(from, settings.FromName, to, subject, body)

	if err := smtp.SendMail(addr, auth, from, []string{to}, msg); err != nil {
		logger.Error("Failed to send mail", err, map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
		return fmt.Errorf("failed to send mail: %w", err)
	}

	logger.Info("Mail sent", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}
