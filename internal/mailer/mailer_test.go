package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/models"
)

type recordingSender struct {
	mu      sync.Mutex
	sent    []Message
	failFor map[string]error
}

func (r *recordingSender) Send(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failFor[msg.To]; ok {
		return err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestSendOTP(t *testing.T) {
	rs := &recordingSender{}
	m := New(rs, "hr@voxhire.io", zap.NewNop())

	if err := m.SendOTP(context.Background(), "a@x.com", "042917"); err != nil {
		t.Fatalf("SendOTP: %v", err)
	}
	if len(rs.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(rs.sent))
	}
	got := rs.sent[0]
	if got.Subject != "Your OTP" || got.Body != "Your OTP is 042917." || got.HTML {
		t.Fatalf("unexpected message %+v", got)
	}
}

func TestSendOTPPropagatesError(t *testing.T) {
	rs := &recordingSender{failFor: map[string]error{"a@x.com": errors.New("relay down")}}
	m := New(rs, "", zap.NewNop())

	if err := m.SendOTP(context.Background(), "a@x.com", "111111"); err == nil {
		t.Fatal("expected error")
	}
}

func TestSendInvitationsCollectsFailures(t *testing.T) {
	rs := &recordingSender{failFor: map[string]error{"b@x.com": errors.New("mailbox full")}}
	m := New(rs, "hr@voxhire.io", zap.NewNop())

	session := &models.InterviewSession{
		ID:       "s1",
		Post:     "Backend <Engineer>",
		Date:     time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		Time:     "10:00",
		Duration: 45,
	}
	invs := []models.Invitation{{Email: "a@x.com"}, {Email: "b@x.com"}, {Email: "c@x.com"}}

	report := m.SendInvitations(context.Background(), session, invs)
	if report.Sent != 2 {
		t.Fatalf("expected 2 sent, got %d", report.Sent)
	}
	if len(report.Failed) != 1 || report.Failed[0].Email != "b@x.com" || report.Failed[0].Error != "mailbox full" {
		t.Fatalf("unexpected failures %+v", report.Failed)
	}

	msg := rs.sent[0]
	if msg.Subject != "Voxhire Interview Invitation" || !msg.HTML {
		t.Fatalf("unexpected message %+v", msg)
	}
	for _, want := range []string{"Backend &lt;Engineer&gt;", "2030-01-01", "10:00", "45 minutes", "hr@voxhire.io"} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("body missing %q:\n%s", want, msg.Body)
		}
	}
}

func TestSMTPSenderComposesMessage(t *testing.T) {
	cfg := &Config{Host: "smtp.test", Port: "587", User: "u", Pass: "p", From: "noreply@voxhire.io"}
	s, err := NewSMTPSender(cfg)
	if err != nil {
		t.Fatalf("NewSMTPSender: %v", err)
	}

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	s.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err = s.Send(context.Background(), Message{To: "a@x.com", Subject: "Hi", Body: "<p>x</p>", HTML: true})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAddr != "smtp.test:587" || gotFrom != "noreply@voxhire.io" || len(gotTo) != 1 || gotTo[0] != "a@x.com" {
		t.Fatalf("unexpected envelope %s %s %v", gotAddr, gotFrom, gotTo)
	}
	raw := string(gotMsg)
	for _, want := range []string{"Subject: Hi\r\n", "Content-Type: text/html", "<p>x</p>"} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestNewSMTPSenderRequiresCredentials(t *testing.T) {
	if _, err := NewSMTPSender(&Config{Host: "h", Port: "587"}); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SMTP_USER", "bot@voxhire.io")
	t.Setenv("SMTP_PASS", "pw")
	t.Setenv("SMTP_FROM", "")

	cfg := NewConfig()
	if cfg.Addr() != "smtp.gmail.com:587" || cfg.From != "bot@voxhire.io" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
