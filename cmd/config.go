package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/spigell/resume-matcher/internal/embedding"
	"github.com/spigell/resume-matcher/internal/embedding/sentence"
	"github.com/spigell/resume-matcher/internal/feedback"
	"github.com/spigell/resume-matcher/internal/skills"
)

const (
	EmbeddingProviderSentence = "sentence"
	EmbeddingProviderHashing  = "hashing"
	EmbeddingProviderGemini   = "gemini"
)

type Config struct {
	Server    *ServerConfig    `mapstructure:"server" validate:"required"`
	Analysis  *AnalysisConfig  `mapstructure:"analysis" validate:"required"`
	Embedding *EmbeddingConfig `mapstructure:"embedding" validate:"required"`
	AI        *AIConfig        `mapstructure:"ai" validate:"required"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr" validate:"required"`
	MaxUploadMB    int           `mapstructure:"max-upload-mb" validate:"gt=0"`
	AllowedOrigins []string      `mapstructure:"allowed-origins" validate:"dive,required"`
	ReadTimeout    time.Duration `mapstructure:"read-timeout" validate:"gte=0"`
	WriteTimeout   time.Duration `mapstructure:"write-timeout" validate:"gte=0"`
}

type AnalysisConfig struct {
	SkillMatch      string   `mapstructure:"skill-match" validate:"oneof=substring phrase"`
	Skills          []string `mapstructure:"skills" validate:"dive,required"`
	Lemmatize       bool     `mapstructure:"lemmatize"`
	PromptCharLimit int      `mapstructure:"prompt-char-limit" validate:"gt=0"`
}

type EmbeddingConfig struct {
	Provider  string `mapstructure:"provider" validate:"oneof=sentence hashing gemini"`
	Dimension int    `mapstructure:"dimension" validate:"gt=0"`
	Model     string `mapstructure:"model"`
	ModelDir  string `mapstructure:"model-dir"`
	Download  bool   `mapstructure:"download"`
}

type AIConfig struct {
	Gemini *GeminiConfig `mapstructure:"gemini" validate:"required"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

// setupViper registers defaults and environment bindings.
func setupViper(v *viper.Viper) error {
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.max-upload-mb", 16)
	v.SetDefault("server.allowed-origins", []string{"*"})
	v.SetDefault("server.read-timeout", 30*time.Second)
	v.SetDefault("server.write-timeout", 120*time.Second)

	v.SetDefault("analysis.skill-match", string(skills.MatchSubstring))
	v.SetDefault("analysis.skills", []string{})
	v.SetDefault("analysis.lemmatize", true)
	v.SetDefault("analysis.prompt-char-limit", feedback.DefaultCharLimit)

	v.SetDefault("embedding.provider", EmbeddingProviderSentence)
	v.SetDefault("embedding.dimension", embedding.DefaultDimension)
	v.SetDefault("embedding.model", "")
	v.SetDefault("embedding.model-dir", sentence.DefaultModelDir)
	v.SetDefault("embedding.download", true)

	v.SetDefault("ai.gemini.api-key", "")
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.gemini.model", "")
	v.SetDefault("ai.gemini.max-log-length", 0)

	bindings := map[string]string{
		"ai.gemini.api-key":      "GEMINI_API_KEY",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"port":                   "PORT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("binding %s environment variable: %w", env, err)
		}
	}

	return nil
}

func getConfig() (*Config, error) {
	return loadConfig(viper.GetViper())
}

func loadConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	err := v.Unmarshal(&config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if config == nil || config.Server == nil {
		return nil, errors.New("config is empty")
	}

	// PORT overrides server.addr.
	if port := strings.TrimSpace(v.GetString("port")); port != "" {
		config.Server.Addr = ":" + port
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return config, nil
}
