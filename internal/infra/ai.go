package infra

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Sergiotsk/TecFlow/internal/model"
)

// ErrExtraction marks any failure of the AI collaborator. It is surfaced to
// the user as its own message and never falls back to spreadsheet parsing.
var ErrExtraction = errors.New("infra: el servicio de IA no está disponible")

// Extractor is the AI price-list extraction collaborator: raw document
// bytes in, a list of {description, unitPrice, code?, stock?} out. The
// unitPrice strings are raw text — the importer runs them through the same
// price parser as spreadsheet cells.
type Extractor interface {
	ExtractPriceList(ctx context.Context, data []byte, mimeType string) ([]model.ExtractedItem, error)
}

// Polisher rewrites free text (diagnosis, notes) in a professional register.
type Polisher interface {
	Polish(ctx context.Context, text, promptContext string) (string, error)
}

// AIClient talks to an OpenAI-compatible endpoint for both extraction and
// text polishing. All calls go through the circuit breaker so a dead or
// rate-limited endpoint fails fast instead of stalling every import.
type AIClient struct {
	client *openai.Client
	model  string
	cb     *CircuitBreaker
}

func NewAIClient(apiKey, baseURL, modelName string, cb *CircuitBreaker) *AIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &AIClient{client: openai.NewClientWithConfig(cfg), model: modelName, cb: cb}
}

const extractPrompt = `Extraé la lista de productos de esta imagen o documento de lista de precios de un proveedor.
Respondé ÚNICAMENTE con un array JSON válido, sin texto adicional ni markdown.
Cada elemento: {"description": string, "unitPrice": string, "code": string opcional, "stock": number opcional}.
unitPrice debe ser el texto del precio tal como aparece en el documento, sin convertir.`

func (c *AIClient) ExtractPriceList(ctx context.Context, data []byte, mimeType string) ([]model.ExtractedItem, error) {
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	var content string
	err := c.cb.Execute(func() error {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: extractPrompt},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURI}},
				},
			}},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return errors.New("respuesta vacía")
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	var items []model.ExtractedItem
	if err := json.Unmarshal([]byte(stripFences(content)), &items); err != nil {
		return nil, fmt.Errorf("%w: respuesta no es JSON válido: %v", ErrExtraction, err)
	}
	return items, nil
}

// Rewriting prompts per context, kept in the voice the business uses with
// its clients. The shared rule pins the model to raw rewritten text.
const polishSharedRules = "IMPORTANTE: Tu respuesta debe ser ÚNICAMENTE el texto mejorado, sin introducciones, sin comillas y sin explicaciones adicionales. Máximo 500 caracteres."

var polishPrompts = map[string]string{
	"technical_diagnosis": "Actuá como un técnico experto. Reescribí este diagnóstico técnico para un informe, usando terminología precisa y tono profesional.",
	"technical_issue":     "Actuá como un técnico recepcionista. Reescribí esta descripción del problema reportado por el cliente para que sea clara y concisa en el informe de ingreso.",
	"work_report":         "Actuá como un técnico experto. Reescribí este informe de trabajo realizado detallando las tareas y materiales usados de forma profesional para el cliente.",
	"professional_note":   "Actuá como un dueño de negocio. Reescribí esta nota para que suene cortés, profesional y amable.",
}

func (c *AIClient) Polish(ctx context.Context, text, promptContext string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	lead, ok := polishPrompts[promptContext]
	if !ok {
		lead = polishPrompts["professional_note"]
	}
	prompt := fmt.Sprintf("%s %s Texto original: %q", lead, polishSharedRules, text)

	var out string
	err := c.cb.Execute(func() error {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			}},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return errors.New("respuesta vacía")
		}
		out = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if out == "" {
		return text, nil
	}
	return out, nil
}

// stripFences removes a ```json … ``` wrapper when the model ignores the
// raw-JSON instruction.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
