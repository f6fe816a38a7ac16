package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-matcher/internal/ai"
)

func TestCompose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		score   float64
		missing []string
		expect  string
	}{
		{name: "good and complete", score: 80, expect: MessageSuccess},
		{name: "boundary is good", score: 50, expect: MessageSuccess},
		{name: "good with gaps", score: 75, missing: []string{"kubernetes"}, expect: MessageSuccess + MessageFocusOnSkills},
		{name: "low", score: 49.99, expect: MessageLowScore},
		{name: "low with gaps", score: 10, missing: []string{"aws"}, expect: MessageLowScore + MessageFocusOnSkills},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Compose(tt.score, tt.missing); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

type stubReviewer struct {
	text string
	err  error
	got  ai.ReviewRequest
}

func (s *stubReviewer) Review(_ context.Context, req ai.ReviewRequest) (string, error) {
	s.got = req
	return s.text, s.err
}

func TestAdviseWithoutReviewer(t *testing.T) {
	t.Parallel()

	if got := NewAdvisor(nil, 0, nil).Advise(context.Background(), ai.ReviewRequest{}); got != nil {
		t.Fatalf("expected nil feedback, got %q", *got)
	}

	var nilAdvisor *Advisor
	if nilAdvisor.Enabled() {
		t.Fatalf("nil advisor must be disabled")
	}
}

func TestAdvise(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		reviewer *stubReviewer
		expect   string
		warns    int
	}{
		{name: "success", reviewer: &stubReviewer{text: "- Tailor the summary"}, expect: "- Tailor the summary"},
		{name: "blocked", reviewer: &stubReviewer{err: fmt.Errorf("wrapped: %w", ai.ErrBlocked)}, expect: FallbackBlocked, warns: 1},
		{name: "empty", reviewer: &stubReviewer{}, expect: FallbackEmpty, warns: 1},
		{name: "network", reviewer: &stubReviewer{err: errors.New("dial tcp: timeout")}, expect: "Could not generate advanced feedback from AI: dial tcp: timeout", warns: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, observed := observer.New(zapcore.WarnLevel)
			advisor := NewAdvisor(tt.reviewer, 0, zap.New(core))

			req := ai.ReviewRequest{ResumeText: "resume", MatchScore: 42, MissingSkills: []string{"aws"}}
			got := advisor.Advise(context.Background(), req)
			if got == nil {
				t.Fatalf("expected feedback")
			}
			if *got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, *got)
			}
			if tt.reviewer.got.ResumeText != "resume" || strings.Join(tt.reviewer.got.MissingSkills, ",") != "aws" {
				t.Fatalf("request was not forwarded: %+v", tt.reviewer.got)
			}
			if observed.Len() != tt.warns {
				t.Fatalf("expected %d warnings, got %d", tt.warns, observed.Len())
			}
		})
	}
}

func TestAdviseTruncatesDocuments(t *testing.T) {
	t.Parallel()

	reviewer := &stubReviewer{text: "ok"}
	advisor := NewAdvisor(reviewer, 10, nil)

	advisor.Advise(context.Background(), ai.ReviewRequest{
		ResumeText:         strings.Repeat("r", 50),
		JobDescriptionText: "résumé-écrit-à-la-main",
		MissingSkills:      []string{"aws"},
	})

	if reviewer.got.ResumeText != strings.Repeat("r", 10) {
		t.Fatalf("resume was not truncated: %q", reviewer.got.ResumeText)
	}
	if reviewer.got.JobDescriptionText != "résumé-écr" {
		t.Fatalf("job description was not truncated by runes: %q", reviewer.got.JobDescriptionText)
	}

	short := &stubReviewer{text: "ok"}
	NewAdvisor(short, 0, nil).Advise(context.Background(), ai.ReviewRequest{ResumeText: strings.Repeat("x", DefaultCharLimit)})
	if len(short.got.ResumeText) != DefaultCharLimit {
		t.Fatalf("text within the budget must be kept whole, got %d runes", len(short.got.ResumeText))
	}
}
