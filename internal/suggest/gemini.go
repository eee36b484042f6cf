package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/lfmotta/livrocaixa/internal/models"
)

// GeminiClassifier asks a Gemini model to map statement descriptions to
// chart-of-accounts codes.
type GeminiClassifier struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// NewGeminiClassifier builds a classifier backed by the Gemini API.
func NewGeminiClassifier(ctx context.Context, apiKey, model string, log *zap.Logger) (*GeminiClassifier, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiClassifier{client: client, model: model, log: log}, nil
}

func (g *GeminiClassifier) Classify(ctx context.Context, descriptions []string, options []models.CoaOption) (map[string]string, error) {
	prompt := buildClassifyPrompt(descriptions, options)

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var out map[string]string
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("unmarshal model response: %w", err)
	}
	return out, nil
}

func buildClassifyPrompt(descriptions []string, options []models.CoaOption) string {
	var b strings.Builder
	b.WriteString("Você é um assistente de contabilidade pessoal brasileiro.\n\n")
	b.WriteString("Tarefa: classificar descrições de lançamentos de extrato bancário no plano de contas abaixo.\n\n")
	b.WriteString("Plano de contas (código - nome):\n")
	for _, o := range options {
		fmt.Fprintf(&b, "- %s - %s\n", o.Code, o.Name)
	}
	b.WriteString("\nDescrições:\n")
	for i, d := range descriptions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, d)
	}
	b.WriteString("\nRegras:\n")
	b.WriteString("- Responda APENAS com JSON válido, sem comentários e sem texto extra.\n")
	b.WriteString("- O JSON é um objeto mapeando cada descrição, exatamente como escrita acima, para um código do plano de contas.\n")
	b.WriteString("- Use somente códigos presentes na lista acima.\n")
	b.WriteString("- Omita descrições que você não conseguir classificar com confiança.\n")
	b.WriteString("- NÃO use cercas de código Markdown. A resposta começa com \"{\" e termina com \"}\".\n")
	return b.String()
}

// cleanModelJSON strips Markdown fences and surrounding junk when the
// model ignores the raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
