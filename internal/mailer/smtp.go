package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

// Message is a single outbound email. HTML selects the content type.
type Message struct {
	To      string
	Subject string
	Body    string
	HTML    bool
}

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender delivers through an SMTP relay using STARTTLS, or implicit TLS
// when the port is 465.
type SMTPSender struct {
	cfg      *Config
	sendMail sendMailFunc
}

func NewSMTPSender(cfg *Config) (*SMTPSender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw := s.compose(msg)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)

	if s.cfg.Port == "465" {
		return s.sendImplicitTLS(auth, msg.To, raw)
	}
	if err := s.sendMail(s.cfg.Addr(), auth, s.cfg.From, []string{msg.To}, raw); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func (s *SMTPSender) compose(msg Message) []byte {
	contentType := "text/plain"
	if msg.HTML {
		contentType = "text/html"
	}
	var b strings.Builder
	b.WriteString("From: \"Voxhire\" <" + s.cfg.From + ">\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: " + contentType + "; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(msg.Body + "\r\n")
	return []byte(b.String())
}

func (s *SMTPSender) sendImplicitTLS(auth smtp.Auth, to string, raw []byte) error {
	conn, err := tls.Dial("tcp", s.cfg.Addr(), &tls.Config{ServerName: s.cfg.Host})
	if err != nil {
		return err
	}
	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	wc, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := wc.Write(raw); err != nil {
		return err
	}
	return wc.Close()
}
