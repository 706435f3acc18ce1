package prompts

import "context"

// Repo: откуда берётся шаблон персоны
type Repo interface {
	Load(ctx context.Context) (string, error)
}

type Service interface {
	Build(in Input) (string, error)
}

// Input: всё, что подставляется в шаблон персоны.
type Input struct {
	AssistantName string
	Transcript    string
	DisplayName   string
	Message       string
}
