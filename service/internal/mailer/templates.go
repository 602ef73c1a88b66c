package mailer

import (
	"embed"
	"errors"
	"io/fs"
	"strings"
	"sync"
	"text/template"

	"go.convislabs.com/registration/core"
)

const EMAIL_FS_PREFIX = "templates/"

//go:embed templates/*
var templateFS embed.FS

var _ core.MailerTemplate = (*EmailTemplate)(nil)

type EmailTemplate struct {
	subject *template.Template
	body    *template.Template
}

func (et *EmailTemplate) Subject() *template.Template {
	return et.subject
}

func (et *EmailTemplate) Body() *template.Template {
	return et.body
}

func NewMailerTemplate(subject *template.Template, body *template.Template) *EmailTemplate {
	return &EmailTemplate{
		subject: subject,
		body:    body,
	}
}

var ErrTemplateNotFound = errors.New("template not found")

type TemplateRegistry struct {
	templates   map[string]core.MailerTemplate
	templatesMu sync.RWMutex
}

func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates:   make(map[string]core.MailerTemplate),
		templatesMu: sync.RWMutex{},
	}
}

func (tr *TemplateRegistry) RegisterTemplate(name string, template core.MailerTemplate) {
	tr.templatesMu.Lock()
	defer tr.templatesMu.Unlock()
	tr.templates[name] = template
}

// LoadEmbedded registers the templates shipped with the binary. Each
// template is a *_subject.tpl and *_body.tpl pair under templates/.
func (tr *TemplateRegistry) LoadEmbedded() error {
	subjectTemplates, err := fs.Glob(templateFS, EMAIL_FS_PREFIX+"*_subject.tpl")
	if err != nil {
		return err
	}

	for _, subjectTemplate := range subjectTemplates {
		templateName := strings.TrimSuffix(strings.TrimPrefix(subjectTemplate, EMAIL_FS_PREFIX), "_subject.tpl")

		subjectContent, err := fs.ReadFile(templateFS, subjectTemplate)
		if err != nil {
			return err
		}

		subjectTmpl, err := template.New(templateName).Parse(string(subjectContent))
		if err != nil {
			return err
		}

		bodyContent, err := fs.ReadFile(templateFS, strings.TrimSuffix(subjectTemplate, "_subject.tpl")+"_body.tpl")
		if err != nil {
			return err
		}

		bodyTmpl, err := template.New(templateName).Parse(string(bodyContent))
		if err != nil {
			return err
		}

		tr.RegisterTemplate(templateName, NewMailerTemplate(subjectTmpl, bodyTmpl))
	}

	return nil
}

func (tr *TemplateRegistry) RenderTemplate(templateName string, subjectVars core.MailerTemplateData, bodyVars core.MailerTemplateData) (*Email, error) {
	tr.templatesMu.RLock()
	tmpl, ok := tr.templates[templateName]
	tr.templatesMu.RUnlock()

	if !ok {
		return nil, ErrTemplateNotFound
	}

	var subjectBuilder strings.Builder
	err := tmpl.Subject().Execute(&subjectBuilder, subjectVars)
	if err != nil {
		return nil, err
	}

	var bodyBuilder strings.Builder
	err = tmpl.Body().Execute(&bodyBuilder, bodyVars)
	if err != nil {
		return nil, err
	}

	return NewEmail(subjectBuilder.String(), bodyBuilder.String()), nil
}
