package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// VerificationSender delivers email verification links.
type VerificationSender interface {
	SendVerification(to, link string) error
}

// Mailer sends verification links over SMTP. Without a host it only logs
// the link, which is enough for local development.
type Mailer struct {
	host     string
	port     int
	from     string
	password string
}

var _ VerificationSender = (*Mailer)(nil)

func NewMailer(host string, port int, from, password string) *Mailer {
	return &Mailer{host: host, port: port, from: from, password: password}
}

func (m *Mailer) SendVerification(to, link string) error {
	if m.host == "" {
		zap.L().Info("Email verification link", zap.String("email", to), zap.String("link", link))
		return nil
	}

	if to == m.from {
		return errors.New("invalid email address")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Verify your email to start using SafeGlow")
	msg.SetBody("text/html", fmt.Sprintf("Click <a href='%v'>here</a> to verify your account.\n\nThis link will expire in 1 hour", link))

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send verification mail, %w", err)
	}

	return nil
}
