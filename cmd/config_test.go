package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/analyzer"
	"github.com/spigell/resume-matcher/internal/embedding"
)

func newTestViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()

	v := viper.New()
	require.NoError(t, setupViper(v))

	if yaml != "" {
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	}

	return v
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY_FILE", "")
	t.Setenv("PORT", "")

	config, err := loadConfig(newTestViper(t, ""))
	require.NoError(t, err)

	assert.Equal(t, ":5000", config.Server.Addr)
	assert.Equal(t, 16, config.Server.MaxUploadMB)
	assert.Equal(t, []string{"*"}, config.Server.AllowedOrigins)
	assert.Equal(t, "substring", config.Analysis.SkillMatch)
	assert.True(t, config.Analysis.Lemmatize)
	assert.Equal(t, 4000, config.Analysis.PromptCharLimit)
	assert.Equal(t, EmbeddingProviderSentence, config.Embedding.Provider)
	assert.Equal(t, embedding.DefaultDimension, config.Embedding.Dimension)
	assert.Equal(t, "models", config.Embedding.ModelDir)
	assert.True(t, config.Embedding.Download)
	assert.Empty(t, config.AI.Gemini.APIKey)
}

func TestLoadConfigFromYAML(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PORT", "")

	config, err := loadConfig(newTestViper(t, `
server:
  addr: 127.0.0.1:8080
  max-upload-mb: 4
  allowed-origins:
    - https://app.example.com
  read-timeout: 5s
analysis:
  skill-match: phrase
  skills: [go, kubernetes, "machine learning"]
  lemmatize: false
embedding:
  dimension: 128
ai:
  gemini:
    model: gemini-2.5-pro
    max-log-length: 50
`))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", config.Server.Addr)
	assert.Equal(t, 4, config.Server.MaxUploadMB)
	assert.Equal(t, []string{"https://app.example.com"}, config.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, "phrase", config.Analysis.SkillMatch)
	assert.Equal(t, []string{"go", "kubernetes", "machine learning"}, config.Analysis.Skills)
	assert.False(t, config.Analysis.Lemmatize)
	assert.Equal(t, 128, config.Embedding.Dimension)
	assert.Equal(t, "gemini-2.5-pro", config.AI.Gemini.Model)
	assert.Equal(t, 50, config.AI.Gemini.MaxLogLength)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("GEMINI_API_KEY_FILE", "/run/secrets/gemini")
	t.Setenv("PORT", "8081")

	config, err := loadConfig(newTestViper(t, "server:\n  addr: :9000\n"))
	require.NoError(t, err)

	assert.Equal(t, ":8081", config.Server.Addr)
	assert.Equal(t, "env-key", config.AI.Gemini.APIKey)
	assert.Equal(t, "/run/secrets/gemini", config.AI.Gemini.APIKeyFile)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Setenv("PORT", "")

	tests := map[string]string{
		"unknown skill match": "analysis:\n  skill-match: fuzzy\n",
		"unknown provider":    "embedding:\n  provider: openai\n",
		"zero dimension":      "embedding:\n  dimension: 0\n",
		"zero upload limit":   "server:\n  max-upload-mb: 0\n",
		"empty address":       "server:\n  addr: \"\"\n",
	}

	for name, yaml := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(newTestViper(t, yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validating config")
		})
	}
}

func TestNewEmbedder(t *testing.T) {
	logger := zap.NewNop()

	e, err := newEmbedder(nil, &EmbeddingConfig{Provider: EmbeddingProviderHashing, Dimension: 64}, logger)
	require.NoError(t, err)
	assert.Equal(t, 64, e.Dimension())

	_, err = newEmbedder(nil, &EmbeddingConfig{Provider: EmbeddingProviderGemini, Dimension: 64}, logger)
	assert.ErrorContains(t, err, "requires a gemini api key")

	_, err = newEmbedder(nil, &EmbeddingConfig{Provider: "openai", Dimension: 64}, logger)
	assert.ErrorContains(t, err, "unknown embedding provider")

	_, err = newEmbedder(nil, &EmbeddingConfig{
		Provider:  EmbeddingProviderSentence,
		Dimension: 384,
		ModelDir:  t.TempDir(),
	}, logger)
	assert.ErrorContains(t, err, "loading sentence embedding model")
}

func TestNewGeminiClientWithoutKey(t *testing.T) {
	client, err := newGeminiClient(t.Context(), &GeminiConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)

	empty := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o600))

	_, err = newGeminiClient(t.Context(), &GeminiConfig{APIKeyFile: empty})
	assert.Error(t, err)
}

func TestNewAnalyzerOffline(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY_FILE", "")
	t.Setenv("PORT", "")

	config, err := loadConfig(newTestViper(t, "analysis:\n  lemmatize: false\nembedding:\n  provider: hashing\n"))
	require.NoError(t, err)

	an, cleanup, err := newAnalyzer(t.Context(), config, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()
	assert.False(t, an.AIEnabled())

	result, err := an.Analyze(t.Context(), "Python developer with Docker", "Python and Docker")
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "docker"}, result.StrongestMatches)
	assert.Empty(t, result.MissingSkills)
	assert.Nil(t, result.GeminiFeedback)
}

func TestNewAnalyzerLemmatizedKeepsSkillWords(t *testing.T) {
	if testing.Short() {
		t.Skip("loading the lemma dictionary is slow")
	}
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY_FILE", "")
	t.Setenv("PORT", "")

	config, err := loadConfig(newTestViper(t, "embedding:\n  provider: hashing\n"))
	require.NoError(t, err)
	require.True(t, config.Analysis.Lemmatize)

	an, cleanup, err := newAnalyzer(t.Context(), config, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	result, err := an.Analyze(t.Context(),
		"Built Big Data platforms on AWS",
		"AWS, big data and machine learning",
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"aws", "big data"}, result.StrongestMatches)
	assert.Equal(t, []string{"machine learning"}, result.MissingSkills)
}

func TestReadResumeRejectsUnsupported(t *testing.T) {
	_, err := readResume("resume.txt")

	require.Error(t, err)
	assert.Equal(t, "Unsupported file type. Please upload PDF or DOCX.", err.Error())
	assert.Equal(t, 400, analyzer.HTTPStatus(err))
}
