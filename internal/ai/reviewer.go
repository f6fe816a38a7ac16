package ai

import (
	"context"
	"errors"
)

var (
	// ErrBlocked is returned when the provider refuses the prompt on safety grounds.
	ErrBlocked = errors.New("prompt blocked by provider safety filters")
	// ErrEmptyResponse is returned when the provider answered without any text.
	ErrEmptyResponse = errors.New("provider returned empty response")
)

// ReviewRequest carries everything a reviewer may use to critique a resume.
type ReviewRequest struct {
	ResumeText         string
	JobDescriptionText string
	MatchScore         float64
	MissingSkills      []string
}

// Reviewer produces a free-form critique of a resume against a job description.
type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (string, error)
}
