// Package feedback turns analysis numbers into advice for the applicant.
package feedback

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/utils"
)

const (
	// DefaultCharLimit caps how many characters of each document reach the reviewer.
	DefaultCharLimit = 4000

	// LowScoreThreshold separates a good match from a weak one.
	LowScoreThreshold = 50

	MessageSuccess       = "Resume analyzed successfully! Review the match score, missing skills, and strong matches."
	MessageLowScore      = "The match score is low. Consider tailoring your resume more closely to the job description's requirements."
	MessageFocusOnSkills = " Focus on gaining or highlighting the missing skills."

	FallbackBlocked = "Gemini feedback blocked due to safety concerns with the prompt."
	FallbackEmpty   = "Gemini could not generate detailed feedback."
	fallbackFailed  = "Could not generate advanced feedback from AI: %s"
)

// Compose returns the templated feedback for a score and the skills the resume lacks.
func Compose(score float64, missing []string) string {
	message := MessageSuccess
	if score < LowScoreThreshold {
		message = MessageLowScore
	}

	if len(missing) > 0 {
		message += MessageFocusOnSkills
	}

	return message
}

// Advisor asks an optional AI reviewer for a narrative critique.
type Advisor struct {
	reviewer  ai.Reviewer
	charLimit int
	logger    *zap.Logger
}

// NewAdvisor returns an Advisor. A nil reviewer disables AI feedback.
// charLimit <= 0 selects DefaultCharLimit.
func NewAdvisor(reviewer ai.Reviewer, charLimit int, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if charLimit <= 0 {
		charLimit = DefaultCharLimit
	}
	return &Advisor{reviewer: reviewer, charLimit: charLimit, logger: logger}
}

// Enabled reports whether a reviewer is configured.
func (a *Advisor) Enabled() bool {
	return a != nil && a.reviewer != nil
}

// Advise returns nil when no reviewer is configured. Both documents are cut to the
// character budget before the reviewer sees them. Otherwise it always returns a message:
// the critique, or a description of why the reviewer could not produce one.
func (a *Advisor) Advise(ctx context.Context, req ai.ReviewRequest) *string {
	if !a.Enabled() {
		return nil
	}

	req.ResumeText = utils.TruncateRunes(req.ResumeText, a.charLimit)
	req.JobDescriptionText = utils.TruncateRunes(req.JobDescriptionText, a.charLimit)

	text, err := a.reviewer.Review(ctx, req)
	if err == nil && text == "" {
		err = ai.ErrEmptyResponse
	}
	if err != nil {
		a.logger.Warn("ai feedback unavailable", zap.Error(err))
		msg := fallback(err)
		return &msg
	}

	return &text
}

func fallback(err error) string {
	switch {
	case errors.Is(err, ai.ErrBlocked):
		return FallbackBlocked
	case errors.Is(err, ai.ErrEmptyResponse):
		return FallbackEmpty
	default:
		return fmt.Sprintf(fallbackFailed, err)
	}
}
