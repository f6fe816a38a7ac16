package gemini

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/resume-matcher/internal/ai"
)

type fakeModels struct {
	genResp   *genai.GenerateContentResponse
	genErr    error
	embedResp *genai.EmbedContentResponse
	embedErr  error

	lastModel  string
	lastConfig *genai.GenerateContentConfig
	lastEmbed  *genai.EmbedContentConfig
	lastPrompt string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.lastModel = model
	f.lastConfig = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.lastPrompt = contents[0].Parts[0].Text
	}
	return f.genResp, f.genErr
}

func (f *fakeModels) EmbedContent(_ context.Context, model string, _ []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	f.lastModel = model
	f.lastEmbed = config
	return f.embedResp, f.embedErr
}

func textResponse(texts ...string) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, &genai.Part{Text: text})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestGeneratorGenerateContent(t *testing.T) {
	fake := &fakeModels{genResp: textResponse(" - strong python ", "", "- add kubernetes")}
	g := newGenerator(fake, "", zap.NewNop())

	out, err := g.GenerateContent(context.Background(), "  review this  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "- strong python\n- add kubernetes" {
		t.Fatalf("unexpected output %q", out)
	}

	if fake.lastModel != defaultModel {
		t.Fatalf("expected default model, got %q", fake.lastModel)
	}

	if fake.lastPrompt != "review this" {
		t.Fatalf("expected trimmed prompt, got %q", fake.lastPrompt)
	}

	cfg := fake.lastConfig
	if cfg == nil || *cfg.Temperature != 0.7 || *cfg.TopP != 0.9 || *cfg.TopK != 20 {
		t.Fatalf("unexpected sampling config: %+v", cfg)
	}

	if len(cfg.SafetySettings) != len(harmCategories) {
		t.Fatalf("expected %d safety settings, got %d", len(harmCategories), len(cfg.SafetySettings))
	}
	for _, setting := range cfg.SafetySettings {
		if setting.Threshold != genai.HarmBlockThresholdBlockNone {
			t.Fatalf("unexpected threshold for %s: %s", setting.Category, setting.Threshold)
		}
	}
}

func TestGeneratorErrors(t *testing.T) {
	tests := []struct {
		name   string
		fake   *fakeModels
		prompt string
		is     error
	}{
		{
			name:   "empty prompt",
			fake:   &fakeModels{},
			prompt: "  ",
		},
		{
			name:   "transport error",
			fake:   &fakeModels{genErr: errors.New("quota exceeded")},
			prompt: "p",
		},
		{
			name: "prompt blocked",
			fake: &fakeModels{genResp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
			}},
			prompt: "p",
			is:     ai.ErrBlocked,
		},
		{
			name: "candidate stopped by safety",
			fake: &fakeModels{genResp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			}},
			prompt: "p",
			is:     ai.ErrBlocked,
		},
		{
			name:   "no text",
			fake:   &fakeModels{genResp: textResponse("   ")},
			prompt: "p",
			is:     ai.ErrEmptyResponse,
		},
		{
			name:   "nil response",
			fake:   &fakeModels{},
			prompt: "p",
			is:     ai.ErrEmptyResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGenerator(tt.fake, "gemini-pro", nil)
			_, err := g.GenerateContent(context.Background(), tt.prompt)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("expected %v, got %v", tt.is, err)
			}
		})
	}
}

func TestEmbedder(t *testing.T) {
	fake := &fakeModels{embedResp: &genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: []float32{0.5, -0.25, 1}}},
	}}

	e, err := newEmbedder(fake, "", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, err := e.Embed(context.Background(), "python docker")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(v) != 3 || v[0] != 0.5 || v[1] != -0.25 || v[2] != 1 {
		t.Fatalf("unexpected vector %v", v)
	}

	if fake.lastModel != defaultEmbeddingModel {
		t.Fatalf("expected default embedding model, got %q", fake.lastModel)
	}

	if fake.lastEmbed == nil || fake.lastEmbed.OutputDimensionality == nil || *fake.lastEmbed.OutputDimensionality != 3 {
		t.Fatalf("expected output dimensionality 3, got %+v", fake.lastEmbed)
	}

	if _, err := newEmbedder(fake, "", 0); err == nil {
		t.Fatalf("expected error for zero dimension")
	}

	empty, _ := newEmbedder(&fakeModels{embedResp: &genai.EmbedContentResponse{}}, "", 3)
	if _, err := empty.Embed(context.Background(), "python"); err == nil {
		t.Fatalf("expected error for empty embeddings")
	}
}
