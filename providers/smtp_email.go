package providers

import (
	"fmt"
	"net/smtp"
	"strings"

	"weatherbot.app/config"
	"weatherbot.app/errors"
)

// SMTPEmailProvider implements EmailProvider using SMTP
type SMTPEmailProvider struct {
	addr        string
	auth        smtp.Auth
	fromName    string
	fromAddress string
}

// NewSMTPEmailProvider creates a new SMTP email provider
func NewSMTPEmailProvider(config *config.EmailConfig) *SMTPEmailProvider {
	return &SMTPEmailProvider{
		addr:        fmt.Sprintf("%s:%d", config.SMTPHost, config.SMTPPort),
		auth:        smtp.PlainAuth("", config.SMTPUsername, config.SMTPPassword, config.SMTPHost),
		fromName:    config.FromName,
		fromAddress: config.FromAddress,
	}
}

// SendEmail sends an email using SMTP
func (p *SMTPEmailProvider) SendEmail(to, subject, body string, isHTML bool) error {
	if to == "" {
		return errors.NewValidationError("recipient email cannot be empty")
	}
	if subject == "" {
		return errors.NewValidationError("email subject cannot be empty")
	}

	message := p.buildMessage(to, subject, body, isHTML)

	if err := smtp.SendMail(p.addr, p.auth, p.fromAddress, []string{to}, message); err != nil {
		return errors.NewEmailError("failed to send email", err)
	}

	return nil
}

func (p *SMTPEmailProvider) buildMessage(to, subject, body string, isHTML bool) []byte {
	contentType := "text/plain"
	if isHTML {
		contentType = "text/html"
	}

	// Strip line breaks from the subject to prevent header injection
	subject = strings.NewReplacer("\r", "", "\n", "").Replace(subject)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", p.fromName, p.fromAddress)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: %s; charset=UTF-8\r\n\r\n", contentType)
	msg.WriteString(body)

	return []byte(msg.String())
}
