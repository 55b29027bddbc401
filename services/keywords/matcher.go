package keywords

import (
	"fmt"
	"slices"
	"strings"
)

// Matcher finds configured keywords in message text. The keyword list is
// fixed at construction and immutable afterwards.
type Matcher struct {
	keywords []string
}

// NewMatcher creates a Matcher for the given keyword list. Keywords are
// lower-cased once here; the list must be non-empty.
func NewMatcher(keywordList []string) (*Matcher, error) {
	if len(keywordList) == 0 {
		return nil, fmt.Errorf("keyword list must not be empty")
	}

	keywords := make([]string, len(keywordList))
	for i, keyword := range keywordList {
		keywords[i] = strings.ToLower(keyword)
	}

	return &Matcher{keywords: keywords}, nil
}

// Match returns the configured keywords contained in text, preserving the
// configured keyword order. Matching is case-insensitive substring
// containment, so "error" also matches "errors". An empty result means no
// keyword matched - it is not a failure.
func (m *Matcher) Match(text string) []string {
	lowered := strings.ToLower(text)

	var matched []string
	for _, keyword := range m.keywords {
		if strings.Contains(lowered, keyword) {
			matched = append(matched, keyword)
		}
	}
	return matched
}

// Keywords returns a copy of the configured keyword list
func (m *Matcher) Keywords() []string {
	return slices.Clone(m.keywords)
}
