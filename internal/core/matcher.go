package core

import "strings"

// categoryMatch records the terms of a single category found in a message
type categoryMatch struct {
	category KeywordCategory
	terms    []string
}

// matchCategories scans the normalized text against every category and
// returns the non-empty matches in category declaration order. Matching is
// plain substring containment: a term can match inside a larger word, and
// the same stretch of text may satisfy several categories at once.
func matchCategories(text string, categories []KeywordCategory) []categoryMatch {
	var matches []categoryMatch
	for _, cat := range categories {
		var terms []string
		for _, term := range cat.Terms {
			if strings.Contains(text, strings.ToLower(term)) {
				terms = append(terms, term)
			}
		}
		if len(terms) > 0 {
			matches = append(matches, categoryMatch{category: cat, terms: terms})
		}
	}
	return matches
}

// containsAnyTerm reports whether any of the given phrases occurs in the
// normalized text. Used for the spam veto.
func containsAnyTerm(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}
