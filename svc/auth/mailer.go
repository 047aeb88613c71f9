package auth

import (
	"context"
	"fmt"

	"github.com/netman-app/authkit/pkg/email"
	"github.com/netman-app/authkit/pkg/email/templates"
)

// ActivationMailer delivers activation links. It must report delivery
// failures so Register can roll back.
type ActivationMailer interface {
	SendActivationMail(ctx context.Context, to, link string) error
}

// EmailActivationMailer renders the activation mail and hands it to an
// email.EmailSender.
type EmailActivationMailer struct {
	sender  email.EmailSender
	product string
}

// NewEmailActivationMailer returns a mailer over sender. product is the
// service name shown in the mail body.
func NewEmailActivationMailer(sender email.EmailSender, product string) *EmailActivationMailer {
	return &EmailActivationMailer{sender: sender, product: product}
}

// SendActivationMail renders the activation mail for link and sends it to
// to. Render and delivery errors are returned as is.
func (m *EmailActivationMailer) SendActivationMail(ctx context.Context, to, link string) error {
	body, err := templates.Render(ctx, templates.Activation(templates.ActivationParams{
		Link:    link,
		Product: m.product,
	}))
	if err != nil {
		return fmt.Errorf("render activation mail: %w", err)
	}

	return m.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   to,
		Subject:  templates.ActivationSubject,
		BodyHTML: body,
		Tag:      "activation",
	})
}
