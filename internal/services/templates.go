package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osteele/liquid"

	"github.com/diewo77/go-photodesk/internal/models"
)

const (
	renderTimeout   = 2 * time.Second
	maxTemplateSize = 64 * 1024
)

// ErrTemplateTooLarge is returned for subjects or bodies above the limit.
var ErrTemplateTooLarge = errors.New("template too large")

// Preview is a template rendered for one client.
type Preview struct {
	Subject string
	Body    string
}

// TemplateService checks and renders the Liquid in e-mail templates.
type TemplateService struct {
	engine  *liquid.Engine
	timeout time.Duration
}

func NewTemplateService() *TemplateService {
	return &TemplateService{engine: liquid.NewEngine(), timeout: renderTimeout}
}

// Check parses source without rendering it.
func (s *TemplateService) Check(source string) error {
	if len(source) > maxTemplateSize {
		return ErrTemplateTooLarge
	}
	if _, err := s.engine.ParseString(source); err != nil {
		return fmt.Errorf("parse template: %w", err)
	}
	return nil
}

// Bindings exposes client.name, client.email, client.phone and
// photographer.email. A nil client renders as blanks.
func Bindings(client *models.Client, photographerEmail string) map[string]any {
	c := map[string]any{"name": "", "email": "", "phone": ""}
	if client != nil {
		c["name"], c["email"], c["phone"] = client.Name, client.Email, client.Phone
	}
	return map[string]any{
		"client":       c,
		"photographer": map[string]any{"email": photographerEmail},
	}
}

// Preview renders subject and body of tpl for client.
func (s *TemplateService) Preview(ctx context.Context, tpl models.EmailTemplate, client *models.Client, photographerEmail string) (Preview, error) {
	b := Bindings(client, photographerEmail)
	subject, err := s.render(ctx, tpl.Subject, b)
	if err != nil {
		return Preview{}, fmt.Errorf("subject: %w", err)
	}
	body, err := s.render(ctx, tpl.Body, b)
	if err != nil {
		return Preview{}, fmt.Errorf("body: %w", err)
	}
	return Preview{Subject: subject, Body: body}, nil
}

// render guards against runaway templates with a size cap and a deadline.
func (s *TemplateService) render(ctx context.Context, source string, b map[string]any) (string, error) {
	if len(source) > maxTemplateSize {
		return "", ErrTemplateTooLarge
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("panic during liquid rendering: %v", r)}
			}
		}()
		out, err := s.engine.ParseAndRenderString(source, b)
		if err != nil {
			done <- result{err: err}
			return
		}
		done <- result{out: out}
	}()

	select {
	case r := <-done:
		return r.out, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("liquid rendering: %w", ctx.Err())
	}
}
