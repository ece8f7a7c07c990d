package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/metrics"
	"github.com/dhruvi159/Voxhire-Project/internal/models"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

const (
	otpSubject        = "Your OTP"
	invitationSubject = "Voxhire Interview Invitation"
)

var invitationTmpl = template.Must(template.New("invitation").Parse(`<p>Dear Candidate,</p>
<p>You have been invited to an interview for the position of <b>{{.Post}}</b>.</p>
<p><b>Date:</b> {{.Date}}</p>
<p><b>Time:</b> {{.Time}}</p>
<p><b>Duration:</b> {{.Duration}} minutes</p>
<br>
<p>If you have any questions, please contact us at {{.Contact}}.</p>
<p>Best Regards,<br>Voxhire Team</p>`))

type invitationData struct {
	Post     string
	Date     string
	Time     string
	Duration int
	Contact  string
}

// Mailer renders Voxhire's transactional emails and hands them to a Sender.
type Mailer struct {
	sender  Sender
	contact string
	logger  *zap.Logger
}

func New(sender Sender, contact string, logger *zap.Logger) *Mailer {
	return &Mailer{sender: sender, contact: contact, logger: utils.OrDefault(logger)}
}

// SendOTP delivers a registration code. Errors go back to the caller.
func (m *Mailer) SendOTP(ctx context.Context, email, code string) error {
	return m.sender.Send(ctx, Message{
		To:      email,
		Subject: otpSubject,
		Body:    fmt.Sprintf("Your OTP is %s.", code),
	})
}

// SendInvitations emails every recipient independently. A failed recipient
// never stops the rest; failures are collected in the report.
func (m *Mailer) SendInvitations(ctx context.Context, session *models.InterviewSession, invitations []models.Invitation) models.DispatchReport {
	report := models.DispatchReport{Failed: []models.DispatchFailure{}}

	body, err := m.renderInvitation(session)
	if err != nil {
		m.logger.Error("Failed to render invitation email", zap.Error(err))
		for _, inv := range invitations {
			report.Failed = append(report.Failed, models.DispatchFailure{Email: inv.Email, Error: err.Error()})
			metrics.Detached("invitation_email", err)
		}
		return report
	}

	for _, inv := range invitations {
		err := m.sender.Send(ctx, Message{To: inv.Email, Subject: invitationSubject, Body: body, HTML: true})
		metrics.Detached("invitation_email", err)
		if err != nil {
			m.logger.Warn("Invitation email failed",
				zap.String("session_id", session.ID),
				zap.String("email", inv.Email),
				zap.Error(err))
			report.Failed = append(report.Failed, models.DispatchFailure{Email: inv.Email, Error: err.Error()})
			continue
		}
		report.Sent++
	}
	return report
}

func (m *Mailer) renderInvitation(session *models.InterviewSession) (string, error) {
	var buf bytes.Buffer
	err := invitationTmpl.Execute(&buf, invitationData{
		Post:     session.Post,
		Date:     session.Date.Format(models.DateLayout),
		Time:     session.Time,
		Duration: session.Duration,
		Contact:  m.contact,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
