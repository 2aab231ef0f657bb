package notify

import (
	"context"
	"fmt"

	"github.com/tourbook/tourbook-api/internal/domain/entity"
	"github.com/tourbook/tourbook-api/pkg/helpers"
	"github.com/tourbook/tourbook-api/pkg/mailer"
	tpl "github.com/tourbook/tourbook-api/pkg/mailer/templates"
)

// EmailNotifier delivers account emails. Verification mail is enqueued on
// RabbitMQ for the email worker; reset mail is sent synchronously through
// Mailgun so the caller sees delivery failure.
type EmailNotifier struct {
	Queue       *helpers.RabbitPublisher
	Mail        *mailer.Mailgun
	AppName     string
	FrontendURL string
	Enabled     bool
}

func NewEmailNotifier(queue *helpers.RabbitPublisher, mail *mailer.Mailgun, appName, frontendURL string, enabled bool) *EmailNotifier {
	return &EmailNotifier{Queue: queue, Mail: mail, AppName: appName, FrontendURL: frontendURL, Enabled: enabled}
}

func (n *EmailNotifier) verifyLink(token string) string {
	return n.FrontendURL + "/api/auth/verify-email?token=" + token
}

func (n *EmailNotifier) resetLink(token string) string {
	return n.FrontendURL + "/api/auth/reset-password?token=" + token
}

// SendVerificationEmail enqueues the verify-email job. Publish failure is
// reported but the register flow treats it as non-fatal.
func (n *EmailNotifier) SendVerificationEmail(ctx context.Context, u *entity.User, token string) error {
	if !n.Enabled {
		return nil
	}
	if n.Queue == nil {
		return fmt.Errorf("email queue not configured")
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: tpl.VerifyEmail,
		Data: tpl.ToMap(tpl.EmailData{
			AppName:       n.AppName,
			FirstName:     u.FirstName,
			ActionURL:     n.verifyLink(token),
			ExpiresInText: "24 hours",
		}),
	}
	return n.Queue.PublishJSON(ctx, job)
}

// SendPasswordResetEmail renders and sends the reset mail inline.
func (n *EmailNotifier) SendPasswordResetEmail(ctx context.Context, u *entity.User, token string) error {
	if !n.Enabled {
		return nil
	}
	if n.Mail == nil {
		return fmt.Errorf("mailgun not configured")
	}
	html, err := tpl.RenderHTML(tpl.ResetPassword, tpl.EmailData{
		AppName:       n.AppName,
		FirstName:     u.FirstName,
		ActionURL:     n.resetLink(token),
		ExpiresInText: "10 minutes",
	})
	if err != nil {
		return err
	}
	subject := tpl.Subject(tpl.ResetPassword, n.AppName)
	return n.Mail.Send(ctx, u.Email, subject, "", html)
}
