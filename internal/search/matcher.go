package search

import (
	"strings"
	"unicode/utf8"

	"github.com/medrelive/medfinder-backend/internal/catalog"
)

const (
	DefaultSuggestionLimit     = 5
	DefaultSuggestionMinLength = 2
)

// Matcher resolves free text to catalog medicines by case-insensitive
// substring match on the name. Ties go to the earliest medicine in catalog order.
type Matcher struct {
	medicines []catalog.Medicine
	folded    []string
}

func NewMatcher(c *catalog.Catalog) *Matcher {
	meds := c.Medicines()
	folded := make([]string, len(meds))
	for i, m := range meds {
		folded[i] = Fold(m.Name)
	}
	return &Matcher{medicines: meds, folded: folded}
}

// Match returns the first medicine whose name contains query. An empty query
// matches nothing.
func (m *Matcher) Match(query string) (catalog.Medicine, bool) {
	if query == "" {
		return catalog.Medicine{}, false
	}
	needle := Fold(query)
	for i, name := range m.folded {
		if strings.Contains(name, needle) {
			return m.medicines[i], true
		}
	}
	return catalog.Medicine{}, false
}

// SuggestOptions bounds the suggestion list.
type SuggestOptions struct {
	Limit     int
	MinLength int
}

func (o SuggestOptions) withDefaults() SuggestOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultSuggestionLimit
	}
	if o.MinLength <= 0 {
		o.MinLength = DefaultSuggestionMinLength
	}
	return o
}

// Suggest lists the names of medicines containing the in-progress input, in
// catalog order. Input is used as typed. Inputs shorter than MinLength runes
// yield no suggestions.
func (m *Matcher) Suggest(input string, opts SuggestOptions) []string {
	opts = opts.withDefaults()
	out := []string{}
	if utf8.RuneCountInString(input) < opts.MinLength {
		return out
	}
	needle := Fold(input)
	for i, name := range m.folded {
		if len(out) == opts.Limit {
			break
		}
		if strings.Contains(name, needle) {
			out = append(out, m.medicines[i].Name)
		}
	}
	return out
}
