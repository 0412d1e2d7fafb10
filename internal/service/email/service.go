package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"tailpair/internal/config"
)

type Service interface {
	SendAdoptionApproved(ctx context.Context, toEmail, adopterName, animalName, shelterName string) error
	SendAdoptionRejected(ctx context.Context, toEmail, adopterName, animalName, reason string) error
	SendWelcome(ctx context.Context, toEmail, firstName string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

func (s *service) send(toEmail, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Tailpair <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    html,
	}

	_, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *service) SendAdoptionApproved(ctx context.Context, toEmail, adopterName, animalName, shelterName string) error {
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Great news! Your adoption request for <strong>%s</strong> has been approved by %s. They will contact you to arrange the handover.</p>`,
		adopterName, animalName, shelterName,
	)
	return s.send(toEmail, fmt.Sprintf("Your adoption request for %s was approved", animalName), html)
}

func (s *service) SendAdoptionRejected(ctx context.Context, toEmail, adopterName, animalName, reason string) error {
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Unfortunately your adoption request for <strong>%s</strong> was not approved.</p><p>Reason: %s</p>`,
		adopterName, animalName, reason,
	)
	return s.send(toEmail, fmt.Sprintf("Update on your adoption request for %s", animalName), html)
}

func (s *service) SendWelcome(ctx context.Context, toEmail, firstName string) error {
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Welcome to Tailpair! Browse available animals and find your new companion.</p>`,
		firstName,
	)
	return s.send(toEmail, "Welcome to Tailpair", html)
}
