package skills

import (
	"fmt"
	"strings"
)

// MatchMode selects how a vocabulary entry is looked up in normalized text.
type MatchMode string

const (
	// MatchSubstring accepts an entry found anywhere in the text, so "java" also
	// matches inside "javascript".
	MatchSubstring MatchMode = "substring"
	// MatchPhrase accepts an entry only when its normalized tokens appear as a
	// contiguous run of whole tokens.
	MatchPhrase MatchMode = "phrase"
)

// ParseMatchMode accepts the configuration spelling of a mode. Empty means substring.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchSubstring:
		return MatchSubstring, nil
	case MatchPhrase:
		return MatchPhrase, nil
	default:
		return "", fmt.Errorf("unknown skill match mode %q", s)
	}
}

type entry struct {
	skill  string
	tokens []string
}

// Extractor is immutable after construction and safe for concurrent use.
type Extractor struct {
	mode    MatchMode
	entries []entry
}

// NewExtractor prepares the vocabulary for lookups. normalize is only used in phrase mode,
// where every entry goes through the same normalization as the documents.
// Duplicate and blank entries are dropped; the first occurrence keeps its position.
func NewExtractor(vocabulary []string, mode MatchMode, normalize func(string) string) *Extractor {
	if len(vocabulary) == 0 {
		vocabulary = DefaultVocabulary
	}
	if mode == "" {
		mode = MatchSubstring
	}

	seen := make(map[string]struct{}, len(vocabulary))
	entries := make([]entry, 0, len(vocabulary))
	for _, skill := range vocabulary {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}

		e := entry{skill: skill}
		if mode == MatchPhrase && normalize != nil {
			e.tokens = strings.Fields(normalize(skill))
		}
		entries = append(entries, e)
	}

	return &Extractor{mode: mode, entries: entries}
}

// Vocabulary returns the entries in lookup order.
func (e *Extractor) Vocabulary() []string {
	out := make([]string, 0, len(e.entries))
	for _, en := range e.entries {
		out = append(out, en.skill)
	}
	return out
}

// Mode returns the configured match mode.
func (e *Extractor) Mode() MatchMode { return e.mode }

// Extract returns the vocabulary entries present in the normalized text, in vocabulary order.
// The result is never nil.
func (e *Extractor) Extract(normalized string) []string {
	found := make([]string, 0)
	if normalized == "" {
		return found
	}

	var tokens []string
	if e.mode == MatchPhrase {
		tokens = strings.Fields(normalized)
	}

	for _, en := range e.entries {
		var ok bool
		switch e.mode {
		case MatchPhrase:
			ok = containsRun(tokens, en.tokens)
		default:
			ok = strings.Contains(normalized, en.skill)
		}
		if ok {
			found = append(found, en.skill)
		}
	}

	return found
}

func containsRun(tokens, run []string) bool {
	if len(run) == 0 || len(run) > len(tokens) {
		return false
	}

outer:
	for i := 0; i+len(run) <= len(tokens); i++ {
		for j, want := range run {
			if tokens[i+j] != want {
				continue outer
			}
		}
		return true
	}
	return false
}
