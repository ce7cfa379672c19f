package services

import (
	"context"
	"fmt"
	"log/slog"

	"rsvp/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendEventLinks sends the organizer the RSVP and dashboard links using the "event_links" template.
func (s *emailService) SendEventLinks(ctx context.Context, data *domain.EventLinksEmailData) error {
	if data == nil {
		return fmt.Errorf("event links email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_links", data)
	if err != nil {
		return fmt.Errorf("failed to render event_links template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send event links email: %w", err)
	}
	s.logger.Info("event links email sent", "to", data.Email, "event", data.EventName)
	return nil
}
