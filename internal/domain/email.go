package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventLinksEmailData holds data for the email sent to an organizer after creating an event.
type EventLinksEmailData struct {
	Email         string
	EventName     string
	EventDate     string
	RSVPLink      string
	DashboardLink string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEventLinks(ctx context.Context, data *EventLinksEmailData) error
}
