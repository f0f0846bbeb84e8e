package services

import (
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"inkwell/internal/config"
)

// ErrDeliveryFailed wraps every mail transport fault. Callers only need to
// know the message did not go out.
var ErrDeliveryFailed = errors.New("message delivery failed")

// MailService relays contact-form submissions to a fixed address over SMTP.
// The send is synchronous and is not retried.
type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	To       string
	Enabled  bool

	// send is swappable for tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailService(cfg *config.Config) *MailService {
	enabled := cfg.SMTPHost != "" && cfg.SMTPPort != "" && cfg.SMTPUser != "" &&
		cfg.SMTPPass != "" && cfg.SMTPFrom != "" && cfg.ContactTo != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
		To:       cfg.ContactTo,
		Enabled:  enabled,
		send:     smtp.SendMail,
	}
}

// SendContactMessage formats and delivers one contact-form submission.
func (s *MailService) SendContactMessage(name, email, phone, message string) error {
	if !s.Enabled {
		return fmt.Errorf("%w: mail service not configured", ErrDeliveryFailed)
	}

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)
	msg := s.buildMessage(name, email, phone, message)

	if err := s.send(addr, auth, s.From, []string{s.To}, msg); err != nil {
		log.Printf("Failed to send contact message from %s: %v", email, err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	log.Printf("Contact message sent from %s", email)
	return nil
}

func (s *MailService) buildMessage(name, email, phone, message string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", s.To)
	fmt.Fprintf(&b, "From: Inkwell Contact Form <%s>\r\n", s.From)
	fmt.Fprintf(&b, "Subject: New message from %s\r\n", name)
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Email: %s\n", email)
	fmt.Fprintf(&b, "Phone: %s\n", phone)
	fmt.Fprintf(&b, "Message:\n%s\n", message)
	return []byte(b.String())
}
