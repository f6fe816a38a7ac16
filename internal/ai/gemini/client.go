package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/resume-matcher/internal/ai"
)

const (
	// Provider is the name used in logs and configuration.
	Provider = "gemini"

	defaultModel = "gemini-2.5-flash"
)

// models is the part of the genai client the package uses. *genai.Models satisfies it.
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Sampling holds the generation parameters sent with every prompt.
type Sampling struct {
	Temperature float32
	TopP        float32
	TopK        float32
}

// DefaultSampling favours focused but not repetitive feedback.
var DefaultSampling = Sampling{Temperature: 0.7, TopP: 0.9, TopK: 20}

// harmCategories are all sent with the BLOCK_NONE threshold.
var harmCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// NewClient creates a genai client configured for the Gemini API backend.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return client, nil
}

// Generator wraps the Gemini models API to provide simple prompt-based interactions.
type Generator struct {
	models    models
	modelName string
	sampling  Sampling
	logger    *zap.Logger
}

// NewGenerator returns a Generator bound to one model. An empty model selects the default.
func NewGenerator(client *genai.Client, model string, logger *zap.Logger) (*Generator, error) {
	if client == nil || client.Models == nil {
		return nil, errors.New("genai client is not initialized")
	}
	return newGenerator(client.Models, model, logger), nil
}

func newGenerator(m models, model string, logger *zap.Logger) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{models: m, modelName: model, sampling: DefaultSampling, logger: logger}
}

// GenerateContent sends the prompt to Gemini and returns the joined text of all candidates.
// A prompt rejected by safety filters yields ai.ErrBlocked, an answer without text ai.ErrEmptyResponse.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), g.config())
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if resp == nil {
		return "", ai.ErrEmptyResponse
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		g.logger.Warn("gemini blocked the prompt",
			zap.String("block_reason", string(fb.BlockReason)),
			zap.String("block_message", fb.BlockReasonMessage),
		)
		return "", fmt.Errorf("%w: %s", ai.ErrBlocked, fb.BlockReason)
	}

	var builder strings.Builder
	blocked := false
	for _, candidate := range resp.Candidates {
		if candidate == nil {
			continue
		}
		if candidate.FinishReason == genai.FinishReasonSafety {
			blocked = true
		}
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		if blocked {
			return "", fmt.Errorf("%w: %s", ai.ErrBlocked, genai.FinishReasonSafety)
		}
		return "", ai.ErrEmptyResponse
	}

	return output, nil
}

func (g *Generator) config() *genai.GenerateContentConfig {
	safety := make([]*genai.SafetySetting, 0, len(harmCategories))
	for _, category := range harmCategories {
		safety = append(safety, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}

	return &genai.GenerateContentConfig{
		Temperature:    genai.Ptr(g.sampling.Temperature),
		TopP:           genai.Ptr(g.sampling.TopP),
		TopK:           genai.Ptr(g.sampling.TopK),
		SafetySettings: safety,
	}
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
