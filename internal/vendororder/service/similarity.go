package service

import "strings"

// Weights of the composite fuzzy score.
const (
	weightSubstring   = 0.30
	weightJaccard     = 0.30
	weightLevenshtein = 0.20
	weightInitials    = 0.20
)

// substringSimilarity: 1 for equal strings, len(short)/len(long) when one contains the other.
func substringSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		short, long := len(a), len(b)
		if short > long {
			short, long = long, short
		}
		return float64(short) / float64(long)
	}
	return 0
}

func jaccardSimilarity(a, b tokenSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// levenshteinSimilarity in [0..1], 1 meaning identical.
func levenshteinSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 || lb == 0 {
		return 0
	}
	return 1 - float64(levenshtein(a, b))/float64(max(la, lb))
}

// initialsSimilarity compares the sets of first letters of both token sets.
func initialsSimilarity(a, b tokenSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return jaccardSimilarity(initials(a), initials(b))
}

func initials(ts tokenSet) tokenSet {
	out := make(tokenSet, len(ts))
	for t := range ts {
		if t != "" {
			out[t[:1]] = struct{}{}
		}
	}
	return out
}

// compositeScore blends the four signals for an order name against one index key.
func compositeScore(order, key string, orderTokens, keyTokens tokenSet) float64 {
	return weightSubstring*substringSimilarity(order, key) +
		weightJaccard*jaccardSimilarity(orderTokens, keyTokens) +
		weightLevenshtein*levenshteinSimilarity(order, key) +
		weightInitials*initialsSimilarity(orderTokens, keyTokens)
}
