// Package analyzer scores how well a resume matches a job description.
package analyzer

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/embedding"
	"github.com/spigell/resume-matcher/internal/feedback"
	"github.com/spigell/resume-matcher/internal/skills"
	"github.com/spigell/resume-matcher/internal/textnorm"
)

// Result is the outcome of one analysis.
type Result struct {
	MatchScore       float64  `json:"match_score"`
	MissingSkills    []string `json:"missing_skills"`
	StrongestMatches []string `json:"strongest_matches"`
	Feedback         string   `json:"feedback"`
	GeminiFeedback   *string  `json:"gemini_feedback"`
}

// Deps are the collaborators of an Analyzer. Advisor and Logger are optional.
type Deps struct {
	Normalizer *textnorm.Normalizer
	Extractor  *skills.Extractor
	Embeddings *embedding.Service
	Advisor    *feedback.Advisor
	Logger     *zap.Logger
}

// Analyzer is safe for concurrent use.
type Analyzer struct {
	normalizer *textnorm.Normalizer
	extractor  *skills.Extractor
	embeddings *embedding.Service
	advisor    *feedback.Advisor
	logger     *zap.Logger
}

func New(deps Deps) (*Analyzer, error) {
	if deps.Normalizer == nil {
		return nil, errors.New("analyzer: normalizer is required")
	}
	if deps.Extractor == nil {
		return nil, errors.New("analyzer: skill extractor is required")
	}
	if deps.Embeddings == nil {
		return nil, errors.New("analyzer: embedding service is required")
	}

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Analyzer{
		normalizer: deps.Normalizer,
		extractor:  deps.Extractor,
		embeddings: deps.Embeddings,
		advisor:    deps.Advisor,
		logger:     log,
	}, nil
}

// AIEnabled reports whether results will carry AI feedback.
func (a *Analyzer) AIEnabled() bool {
	return a.advisor.Enabled()
}

// Analyze compares the two texts. Failures are returned as *Error of KindProcessing;
// AI feedback problems end up in the result instead.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jdText string) (*Result, error) {
	started := time.Now()

	resumeNorm := a.normalizer.Normalize(resumeText)
	jdNorm := a.normalizer.Normalize(jdText)

	var resumeVec, jdVec embedding.Vector
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resumeVec, err = a.embeddings.Embed(gctx, resumeNorm)
		return err
	})
	g.Go(func() error {
		var err error
		jdVec, err = a.embeddings.Embed(gctx, jdNorm)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, Processing(err)
	}

	rawScore := embedding.Score(resumeVec, jdVec)
	score := round2(rawScore)

	resumeSkills := a.extractor.Extract(resumeNorm)
	jdSkills := a.extractor.Extract(jdNorm)
	missing := skills.Missing(resumeSkills, jdSkills)
	matched := skills.Matched(resumeSkills, jdSkills)

	result := &Result{
		MatchScore:       score,
		MissingSkills:    missing,
		StrongestMatches: matched,
		Feedback:         feedback.Compose(rawScore, missing),
	}

	a.logger.Debug("analysis computed",
		zap.Float64("match_score", score),
		zap.Strings("missing_skills", missing),
		zap.Strings("strongest_matches", matched),
		zap.Duration("duration", time.Since(started)),
	)

	result.GeminiFeedback = a.advisor.Advise(ctx, ai.ReviewRequest{
		ResumeText:         resumeText,
		JobDescriptionText: jdText,
		MatchScore:         score,
		MissingSkills:      missing,
	})

	return result, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
