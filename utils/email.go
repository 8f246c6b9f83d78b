package utils

import (
	"context"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer sends a single HTML message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMTPMailer struct {
	From   string
	dialer *gomail.Dialer
}

func NewSMTPMailer(host string, port int, user, pass string) *SMTPMailer {
	return &SMTPMailer{
		From:   user,
		dialer: gomail.NewDialer(host, port, user, pass),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}

// NoopMailer logs instead of sending; used when SMTP is not configured.
type NoopMailer struct{}

func (NoopMailer) Send(ctx context.Context, to, subject, body string) error {
	Log.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("mail disabled, message dropped")
	return nil
}
