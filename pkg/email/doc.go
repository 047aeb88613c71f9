// Package email sends transactional mail for authkit.
//
// EmailSender is the single collaborator interface. Two implementations are
// provided:
//
//   - NewPostmarkClient returns a Postmark-backed sender for deployed
//     environments.
//   - DevSender writes each message to disk as an HTML body plus a JSON
//     envelope, so activation links can be followed locally without a mail
//     provider.
//
// Config.UseDevSender picks between them: without a Postmark server token
// the dev sender is used.
//
// # Usage
//
//	var sender email.EmailSender
//	if cfg.Email.UseDevSender() {
//	    sender = email.NewDevSender(cfg.Email.DevOutputDir)
//	} else {
//	    sender, err = email.NewPostmarkClient(cfg.Email)
//	    if err != nil {
//	        return err
//	    }
//	}
//
// Sending a message:
//
//	err := sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   "user@example.com",
//	    Subject:  templates.ActivationSubject,
//	    BodyHTML: body,
//	    Tag:      "activation",
//	})
//
// # Templates
//
// HTML bodies are built from templ components in the templates subpackage
// and rendered to a string with templates.Render.
//
// # Errors
//
// SendEmailParams.Validate rejects messages without a valid recipient,
// subject or body with ErrInvalidParams. Delivery failures from either
// sender wrap ErrFailedToSendEmail; a misconfigured Postmark client yields
// ErrInvalidConfig.
package email
