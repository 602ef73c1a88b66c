package core

import (
	"context"
	"text/template"
	"time"
)

const MAILER_SERVICE = "mailer"

const MAILER_TPL_VERIFY_EMAIL = "verify_email"
const MAILER_TPL_PASSWORD_RESET = "password_reset"

type MailerTemplateData = map[string]any

type MailerTemplate interface {
	Subject() *template.Template
	Body() *template.Template
}

type MailerService interface {
	TemplateSend(template string, subjectVars MailerTemplateData, bodyVars MailerTemplateData, to string) error

	// TemplateSendRetry sends with up to attempts tries and a fixed delay
	// between them. The delay waits on the context, so a shutdown or
	// request cancellation stops the retry loop instead of blocking it.
	TemplateSendRetry(ctx context.Context, template string, subjectVars MailerTemplateData, bodyVars MailerTemplateData, to string, attempts int, delay time.Duration) error

	TemplateRegister(name string, template MailerTemplate) error

	Service
}
