package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// geminiModels: подмножество *genai.Models, которое нам нужно
type geminiModels interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

type GeminiClient struct {
	models geminiModels
	model  string
	config *genai.GenerateContentConfig
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGeminiClient(client.Models, model), nil
}

func newGeminiClient(models geminiModels, model string) *GeminiClient {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{
		models: models,
		model:  model,
		config: generationConfig(),
	}
}

// все фильтры отключены: отказы всё равно приходят через finish reason
func generationConfig() *genai.GenerateContentConfig {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}

	safety := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		safety = append(safety, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}

	return &genai.GenerateContentConfig{
		Temperature:     ptr[float32](0.7),
		TopP:            ptr[float32](1),
		TopK:            ptr[float32](1),
		MaxOutputTokens: 2048,
		SafetySettings:  safety,
	}
}

func (c *GeminiClient) Complete(ctx context.Context, prompt string) (Completion, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := c.models.GenerateContent(ctx, c.model, contents, c.config)
	if err != nil {
		return Completion{}, fmt.Errorf("gemini generate (%s): %w", c.model, err)
	}
	return parseGeminiResponse(resp), nil
}

func parseGeminiResponse(resp *genai.GenerateContentResponse) Completion {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		out := Completion{FinishReason: "UNKNOWN"}
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			out.FinishReason = string(resp.PromptFeedback.BlockReason)
			out.BlockDetails = "Bloqueado por seguridad."
		}
		return out
	}

	cand := resp.Candidates[0]
	out := Completion{FinishReason: string(cand.FinishReason)}
	if out.FinishReason == "" {
		out.FinishReason = "UNKNOWN"
	}

	switch cand.FinishReason {
	case genai.FinishReasonStop:
		out.Text = candidateText(cand)
	case genai.FinishReasonSafety:
		out.BlockDetails = blockedCategories(cand.SafetyRatings)
	}
	return out
}

func candidateText(cand *genai.Candidate) string {
	if cand.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, p := range cand.Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

func blockedCategories(ratings []*genai.SafetyRating) string {
	var blocked []string
	for _, r := range ratings {
		if r == nil || !r.Blocked {
			continue
		}
		cat := strings.TrimPrefix(string(r.Category), "HARM_CATEGORY_")
		blocked = append(blocked, fmt.Sprintf("%s: %s", cat, r.Probability))
	}

	if len(blocked) == 0 {
		return "Bloqueado por seguridad."
	}
	return "Bloqueado por: " + strings.Join(blocked, ", ")
}

func ptr[T any](v T) *T { return &v }
