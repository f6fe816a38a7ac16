package textnorm

import (
	"fmt"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// IdentityLemmatizer returns every word unchanged.
type IdentityLemmatizer struct{}

func (IdentityLemmatizer) Lemma(word string) string { return word }

// NewDictionaryLemmatizer loads the English lemma dictionary. Loading takes a noticeable
// amount of memory and time, so it is meant to be done once per process.
func NewDictionaryLemmatizer() (Lemmatizer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return lemmatizer, nil
}
