package pricing

import (
	"strings"

	"homelytics/internal/catalog"
	"homelytics/internal/phrase"
)

const (
	plantKey              = "plant"
	artificialPlantPhrase = "artificial plant"
)

// Match is the outcome of scanning a prompt for catalog trigger phrases.
type Match struct {
	// Keys are the mentioned catalog keys in rule order, each at most once.
	Keys []string
	// Phrases are the literal triggers that fired, lowercased. Text
	// containing any of them is never reported again as a custom item.
	Phrases []string
}

// Matcher scans prompts against a fixed set of keyword rules.
type Matcher struct {
	rules []catalog.KeywordRule
}

// NewMatcher builds a matcher over the given rules. Phrases are lowercased once.
func NewMatcher(rules []catalog.KeywordRule) *Matcher {
	m := &Matcher{rules: make([]catalog.KeywordRule, len(rules))}
	for i, r := range rules {
		phrases := make([]string, len(r.Phrases))
		for j, p := range r.Phrases {
			phrases[j] = strings.ToLower(p)
		}
		m.rules[i] = catalog.KeywordRule{Key: r.Key, Phrases: phrases}
	}
	return m
}

// Match returns the catalog keys mentioned in prompt.
func (m *Matcher) Match(prompt string) Match {
	text := strings.ToLower(strings.TrimSpace(prompt))
	if text == "" {
		return Match{}
	}

	var out Match
	for _, rule := range m.rules {
		for _, p := range rule.Phrases {
			if !phrase.Contains(text, p) {
				continue
			}
			// "artificial plant" is reported under its own key.
			if rule.Key == plantKey && strings.Contains(text, artificialPlantPhrase) {
				out.Phrases = appendUnique(out.Phrases, p)
				continue
			}
			out.Keys = append(out.Keys, rule.Key)
			out.Phrases = appendUnique(out.Phrases, p)
			break
		}
	}
	return out
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
