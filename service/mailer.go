package service

import (
	"context"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
	"go.convislabs.com/registration/core"
	"go.convislabs.com/registration/service/internal/mailer"
	"go.uber.org/zap"
)

var _ core.MailerService = (*Mailer)(nil)

func init() {
	core.RegisterService(core.ServiceInfo{
		ID: core.MAILER_SERVICE,
		Factory: func() (core.Service, []core.ContextBuilderOption, error) {
			return NewMailerService(NewMailerTemplateRegistry())
		},
	})
}

type Mailer struct {
	ctx              core.Context
	logger           *core.Logger
	client           *mail.Client
	templateRegistry *mailer.TemplateRegistry
}

func (m *Mailer) ID() string {
	return core.MAILER_SERVICE
}

func (m *Mailer) TemplateSend(template string, subjectVars core.MailerTemplateData, bodyVars core.MailerTemplateData, to string) error {
	email, err := m.templateRegistry.RenderTemplate(template, subjectVars, bodyVars)
	if err != nil {
		return err
	}

	email.SetFrom(m.ctx.Config().Config().Core.Mail.From)
	email.SetTo(to)

	msg, err := email.ToMessage()
	if err != nil {
		return err
	}

	return m.client.DialAndSend(msg)
}

func (m *Mailer) TemplateSendRetry(ctx context.Context, template string, subjectVars core.MailerTemplateData, bodyVars core.MailerTemplateData, to string, attempts int, delay time.Duration) error {
	return SendWithRetry(ctx, attempts, delay, func(attempt int) error {
		err := m.TemplateSend(template, subjectVars, bodyVars, to)
		if err != nil {
			m.logger.Warn("email send attempt failed",
				zap.String("template", template),
				zap.Int("attempt", attempt),
				zap.Int("attempts", attempts),
				zap.Error(err))
		}

		return err
	})
}

func (m *Mailer) TemplateRegister(name string, template core.MailerTemplate) error {
	m.templateRegistry.RegisterTemplate(name, template)

	return nil
}

// SendWithRetry runs send up to attempts times with a fixed delay
// between tries. The wait observes ctx, so cancellation stops the loop
// early. The last send error is returned once attempts are exhausted.
func SendWithRetry(ctx context.Context, attempts int, delay time.Duration, send func(attempt int) error) error {
	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		err = send(attempt)
		if err == nil {
			return nil
		}

		if attempt == attempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}

	return err
}

func NewMailerService(templateRegistry *mailer.TemplateRegistry) (*Mailer, []core.ContextBuilderOption, error) {
	m := &Mailer{
		templateRegistry: templateRegistry,
	}

	opts := core.ContextOptions(
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			m.ctx = ctx
			m.logger = ctx.ServiceLogger(m)
			return nil
		}),
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			return m.templateRegistry.LoadEmbedded()
		}),
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			var options []mail.Option

			cfg := ctx.Config()

			if cfg.Config().Core.Mail.Port != 0 {
				options = append(options, mail.WithPort(cfg.Config().Core.Mail.Port))
			}

			if cfg.Config().Core.Mail.AuthType != "" {
				options = append(options, mail.WithSMTPAuth(mail.SMTPAuthType(strings.ToUpper(cfg.Config().Core.Mail.AuthType))))
			}

			if cfg.Config().Core.Mail.SSL {
				options = append(options, mail.WithSSLPort(true))
			}

			options = append(options, mail.WithUsername(cfg.Config().Core.Mail.Username))
			options = append(options, mail.WithPassword(cfg.Config().Core.Mail.Password))

			client, err := mail.NewClient(cfg.Config().Core.Mail.Host, options...)
			if err != nil {
				return err
			}

			m.client = client

			return nil
		}),
		core.ContextWithExitFunc(func(ctx core.Context) error {
			err := m.client.Close()
			if err != nil && err != mail.ErrNoActiveConnection {
				return err
			}

			return nil
		}),
	)

	return m, opts, nil
}

func NewMailerTemplateRegistry() *mailer.TemplateRegistry {
	return mailer.NewTemplateRegistry()
}
