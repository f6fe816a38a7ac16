package cmd

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/ai/gemini"
	"github.com/spigell/resume-matcher/internal/analyzer"
	"github.com/spigell/resume-matcher/internal/embedding"
	"github.com/spigell/resume-matcher/internal/embedding/sentence"
	"github.com/spigell/resume-matcher/internal/feedback"
	"github.com/spigell/resume-matcher/internal/secrets"
	"github.com/spigell/resume-matcher/internal/skills"
	"github.com/spigell/resume-matcher/internal/textnorm"
)

// newAnalyzer builds the analysis pipeline shared by the serve and analyze commands.
// The returned cleanup releases the embedding model and must be called once the analyzer is done.
func newAnalyzer(ctx context.Context, config *Config, logger *zap.Logger) (*analyzer.Analyzer, func(), error) {
	vocabulary := config.Analysis.Skills
	if len(vocabulary) == 0 {
		vocabulary = skills.DefaultVocabulary
	}

	var lemmatizer textnorm.Lemmatizer
	if config.Analysis.Lemmatize {
		logger.Debug("loading lemma dictionary")
		l, err := textnorm.NewDictionaryLemmatizer()
		if err != nil {
			return nil, nil, err
		}
		lemmatizer = l
	}
	// skill words keep their surface form so that "aws" never becomes "aw"
	normalizer := textnorm.New(lemmatizer, vocabulary...)

	mode, err := skills.ParseMatchMode(config.Analysis.SkillMatch)
	if err != nil {
		return nil, nil, err
	}
	extractor := skills.NewExtractor(vocabulary, mode, normalizer.Normalize)

	client, err := newGeminiClient(ctx, config.AI.Gemini)
	if err != nil {
		return nil, nil, err
	}

	embedder, err := newEmbedder(client, config.Embedding, logger)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		closer, ok := embedder.(io.Closer)
		if !ok {
			return
		}
		if err := closer.Close(); err != nil {
			logger.Warn("failed to release embedding model", zap.Error(err))
		}
	}

	var reviewer ai.Reviewer
	if client != nil {
		r, err := newReviewer(client, config, logger)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		reviewer = r
	} else {
		logger.Info("gemini api key is not configured, AI feedback is disabled")
	}

	logger.Info("analysis pipeline ready",
		zap.String("skill_match", string(extractor.Mode())),
		zap.Int("vocabulary", len(extractor.Vocabulary())),
		zap.String("embedding_provider", config.Embedding.Provider),
		zap.Int("embedding_dimension", embedder.Dimension()),
		zap.Bool("lemmatize", config.Analysis.Lemmatize),
		zap.Bool("ai_feedback", reviewer != nil),
	)

	an, err := analyzer.New(analyzer.Deps{
		Normalizer: normalizer,
		Extractor:  extractor,
		Embeddings: embedding.NewService(embedder),
		Advisor:    feedback.NewAdvisor(reviewer, config.Analysis.PromptCharLimit, logger),
		Logger:     logger,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return an, cleanup, nil
}

// newGeminiClient returns nil without an error when no api key is configured.
func newGeminiClient(ctx context.Context, cfg *GeminiConfig) (*genai.Client, error) {
	apiKey, err := secrets.LoadOptional(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		return nil, nil
	}

	return gemini.NewClient(ctx, apiKey)
}

func newEmbedder(client *genai.Client, cfg *EmbeddingConfig, logger *zap.Logger) (embedding.Embedder, error) {
	switch cfg.Provider {
	case EmbeddingProviderSentence, "":
		e, err := sentence.New(sentence.Config{
			Model:     cfg.Model,
			ModelDir:  cfg.ModelDir,
			Dimension: cfg.Dimension,
			Download:  cfg.Download,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("loading sentence embedding model: %w", err)
		}
		return e, nil
	case EmbeddingProviderGemini:
		if client == nil {
			return nil, fmt.Errorf("embedding provider %q requires a gemini api key (set ai.gemini.api-key-file or GEMINI_API_KEY)", cfg.Provider)
		}
		return gemini.NewEmbedder(client, cfg.Model, cfg.Dimension)
	case EmbeddingProviderHashing:
		return embedding.NewHashingEmbedder(cfg.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

func newReviewer(client *genai.Client, config *Config, logger *zap.Logger) (*gemini.Reviewer, error) {
	generator, err := gemini.NewGenerator(client, config.AI.Gemini.Model, logger)
	if err != nil {
		return nil, fmt.Errorf("creating gemini generator: %w", err)
	}

	return gemini.NewReviewer(generator, config.AI.Gemini.MaxLogLength, logger), nil
}
