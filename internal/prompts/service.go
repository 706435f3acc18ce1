package prompts

import (
	"context"
	"fmt"
	"strings"
	"text/template"
)

type service struct {
	tmpl *template.Template
}

// NewService загружает и компилирует шаблон один раз при старте.
func NewService(ctx context.Context, repo Repo) (Service, error) {
	raw, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("persona").Option("missingkey=error").Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse persona prompt: %w", err)
	}
	return &service{tmpl: tmpl}, nil
}

func (s *service) Build(in Input) (string, error) {
	var b strings.Builder
	if err := s.tmpl.Execute(&b, in); err != nil {
		return "", fmt.Errorf("render persona prompt: %w", err)
	}
	return b.String(), nil
}
