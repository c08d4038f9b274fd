package email

import "shelter_backend/internal/logger"

// NoopProvider is used when SMTP is not configured. Messages are logged
// and dropped.
type NoopProvider struct{}

func (p *NoopProvider) Send(email *Email) error {
	logger.Info("email delivery disabled, dropping message",
		"to", email.To, "subject", email.Subject)
	return nil
}

func (p *NoopProvider) SendWithTemplate(templateName string, data TemplateData, email *Email) error {
	logger.Info("email delivery disabled, dropping templated message",
		"to", email.To, "template", templateName)
	return nil
}

func (p *NoopProvider) Validate() error { return nil }
