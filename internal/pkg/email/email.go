package email

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// Sender delivers match notification emails over SMTP. When credentials are
// not configured it logs the message instead of sending, so development
// environments work without a mail server.
type Sender struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSender creates a new email sender
func NewSender(config SMTPConfig, logger zerolog.Logger) *Sender {
	return &Sender{
		config: config,
		logger: logger,
	}
}

// SendMatchApprovedEmail notifies one party that their pairing was approved
func (s *Sender) SendMatchApprovedEmail(toEmail, toName, studentName, volunteerName string) error {
	subject := "Your Kesher match has been approved"
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"Good news! The pairing between %s and %s has been approved by our team.\r\n"+
			"A coordinator will reach out shortly with next steps.\r\n\r\n"+
			"The Kesher team",
		toName, studentName, volunteerName)

	return s.send(toEmail, subject, body)
}

func (s *Sender) send(toEmail, subject, body string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - notification logged instead of sent")
		return nil
	}

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		s.config.FromName, s.config.FromEmail, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{toEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
