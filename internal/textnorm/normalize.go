// Package textnorm turns raw document text into the normalized token form that the skill
// extractor and the embedders consume.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxLemmaPasses bounds the walk to a lemma fixed point.
const maxLemmaPasses = 4

// Lemmatizer reduces an inflected word to its dictionary form.
type Lemmatizer interface {
	Lemma(word string) string
}

// Normalizer is safe for concurrent use as long as its Lemmatizer is.
type Normalizer struct {
	lemmatizer Lemmatizer
	keep       map[string]struct{}
}

// New returns a Normalizer. A nil lemmatizer keeps tokens as they are.
// Words of the keep phrases pass through unchanged: they are neither lemmatized nor
// dropped as stopwords, so "AWS" stays "aws" and "Big Data" stays "big data".
func New(lemmatizer Lemmatizer, keep ...string) *Normalizer {
	if lemmatizer == nil {
		lemmatizer = IdentityLemmatizer{}
	}

	n := &Normalizer{lemmatizer: lemmatizer, keep: make(map[string]struct{})}
	for _, phrase := range keep {
		for _, word := range strings.Fields(phrase) {
			if word = alphabetic(word); word != "" {
				n.keep[word] = struct{}{}
			}
		}
	}

	return n
}

// Kept reports whether word is passed through unchanged.
func (n *Normalizer) Kept(word string) bool {
	_, ok := n.keep[word]
	return ok
}

// Normalize lowercases text, drops everything except letters and whitespace, removes
// stopwords and lemmatizes the remaining tokens. The result is joined with single spaces.
// Normalizing an already normalized text returns it unchanged.
func (n *Normalizer) Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	// cases.Caser keeps state and must not be shared between goroutines.
	lowered := cases.Lower(language.English).String(text)

	stripped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, lowered)

	tokens := strings.Fields(stripped)
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if n.Kept(token) {
			kept = append(kept, token)
			continue
		}
		if IsStopword(token) {
			continue
		}

		lemma := n.lemma(token)
		if lemma == "" || IsStopword(lemma) {
			continue
		}

		kept = append(kept, lemma)
	}

	return strings.Join(kept, " ")
}

// Tokens splits a normalized text into its tokens.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}

func (n *Normalizer) lemma(token string) string {
	current := token
	for range maxLemmaPasses {
		next := alphabetic(n.lemmatizer.Lemma(current))
		if next == "" {
			return current
		}
		if next == current {
			break
		}
		current = next
		if n.Kept(current) {
			break
		}
	}
	return current
}

// alphabetic lowercases s and keeps letters only, so a lemma never reintroduces
// characters the normalizer has already stripped.
func alphabetic(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}
