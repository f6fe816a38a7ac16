package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Reviewer asks Gemini for a written critique of a resume against a job description.
type Reviewer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Reviewer = (*Reviewer)(nil)

// NewReviewer sends the documents as given; callers bound their size.
func NewReviewer(generator contentGenerator, maxLogLength int, log *zap.Logger) *Reviewer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Reviewer{
		generator: generator,
		logger:    logger.WithCommonFields(log, Provider, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (r *Reviewer) Review(ctx context.Context, req ai.ReviewRequest) (string, error) {
	prompt := buildPrompt(req)

	r.logger.Debug("gemini review request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	r.logger.Debug("gemini review response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	return raw, nil
}

func buildPrompt(req ai.ReviewRequest) string {
	missing := "None"
	if len(req.MissingSkills) > 0 {
		missing = strings.Join(req.MissingSkills, ", ")
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Match score: {{MATCH_SCORE}}%\nMissing skills: {{MISSING_SKILLS}}\n\nResume:\n{{RESUME}}\n\nJob Description:\n{{JOB_DESCRIPTION}}"
	}

	return strings.NewReplacer(
		"{{MATCH_SCORE}}", fmt.Sprintf("%.2f", req.MatchScore),
		"{{MISSING_SKILLS}}", missing,
		"{{RESUME}}", req.ResumeText,
		"{{JOB_DESCRIPTION}}", req.JobDescriptionText,
	).Replace(template)
}
