package mailer

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
)

// Mailer delivers confirmation codes out of band.
type Mailer interface {
	SendConfirmationCode(ctx context.Context, email, username, code string) error
}

// SMTPMailer sends plain-text mail through a configured SMTP relay.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTP builds a mailer for the given relay. user may be empty for
// unauthenticated relays.
func NewSMTP(host, port, user, pass, from string) *SMTPMailer {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}
	return &SMTPMailer{
		addr: host + ":" + port,
		auth: auth,
		from: from,
	}
}

// SendConfirmationCode emails the code to the user.
func (m *SMTPMailer) SendConfirmationCode(_ context.Context, email, username, code string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: ReviewHub registration\r\n\r\nHi %s,\r\n\r\nYour confirmation code: %s\r\n",
		m.from, email, username, code,
	)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}
	return nil
}

// LogMailer writes codes to the process log instead of sending mail.
// Intended for local runs without an SMTP relay.
type LogMailer struct{}

// SendConfirmationCode logs the code.
func (LogMailer) SendConfirmationCode(_ context.Context, email, username, code string) error {
	log.Printf("confirmation code for %s <%s>: %s", username, email, code)
	return nil
}
