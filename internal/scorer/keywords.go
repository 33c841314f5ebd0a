package scorer

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// Tokenize splits text into lowercase word tokens using Unicode word
// segmentation. Tokens without any letter or digit (punctuation,
// whitespace) are dropped, so hyphenated compounds come apart into their
// word parts on both sides of a match.
func Tokenize(text string) []string {
	var tokens []string

	seg := words.FromString(text)
	for seg.Next() {
		tok := strings.ToLower(strings.TrimSpace(seg.Value()))
		if tok == "" || !hasAlphanumeric(tok) {
			continue
		}

		tokens = append(tokens, tok)
	}

	return tokens
}

func hasAlphanumeric(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	})
}

// Matcher matches a configured keyword list against tokenized text on
// word boundaries. Multi-word keywords match as consecutive token
// sequences: "cab" does not match inside "cabinet", while "school bus"
// still matches the two-word phrase.
type Matcher struct {
	keywords  []string
	sequences [][]string
}

// NewMatcher creates a matcher for the given keyword list. Duplicate and
// empty keywords are dropped; list order is preserved.
func NewMatcher(keywords []string) *Matcher {
	m := &Matcher{}
	seen := make(map[string]bool)

	for _, kw := range keywords {
		seq := Tokenize(kw)
		if len(seq) == 0 {
			continue
		}

		key := strings.Join(seq, " ")
		if seen[key] {
			continue
		}

		seen[key] = true
		m.keywords = append(m.keywords, kw)
		m.sequences = append(m.sequences, seq)
	}

	return m
}

// Match returns the distinct keywords found in tokens, in list order.
func (m *Matcher) Match(tokens []string) []string {
	var matched []string

	for i, seq := range m.sequences {
		if containsSequence(tokens, seq) {
			matched = append(matched, m.keywords[i])
		}
	}

	return matched
}

// AnyMatch reports whether any keyword is found in tokens.
func (m *Matcher) AnyMatch(tokens []string) bool {
	for _, seq := range m.sequences {
		if containsSequence(tokens, seq) {
			return true
		}
	}

	return false
}

// Len returns the number of usable keywords in the matcher.
func (m *Matcher) Len() int {
	return len(m.sequences)
}

// containsSequence reports whether seq appears as consecutive tokens.
func containsSequence(tokens, seq []string) bool {
	if len(seq) == 0 || len(seq) > len(tokens) {
		return false
	}

	for i := 0; i+len(seq) <= len(tokens); i++ {
		match := true

		for j, want := range seq {
			if tokens[i+j] != want {
				match = false

				break
			}
		}

		if match {
			return true
		}
	}

	return false
}
