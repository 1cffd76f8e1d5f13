package service

import (
	"strings"

	"github.com/rs/zerolog"

	"vendor-orders/internal/vendororder/model"
)

// DefaultMinFuzzyScore is the lowest composite score a fuzzy candidate may have.
const DefaultMinFuzzyScore = 0.30

// Matcher resolves free-text order names against the reference index.
type Matcher struct {
	idx      *ReferenceIndex
	minScore float64
	log      zerolog.Logger
}

func NewMatcher(idx *ReferenceIndex, minScore float64, logger zerolog.Logger) *Matcher {
	if minScore <= 0 {
		minScore = DefaultMinFuzzyScore
	}
	return &Matcher{idx: idx, minScore: minScore, log: logger}
}

// Match tries, in order: exact normalized name, base name, a key containing every core
// word of the order, and finally the best weighted fuzzy candidate.
// Salads and boxes never match here; they are expanded from the salad table instead.
func (m *Matcher) Match(ordered string) (model.MatchResult, bool) {
	n := Normalize(ordered)
	if n == "" {
		return model.MatchResult{}, false
	}
	if strings.Contains(n, "salad") || strings.Contains(n, "box") {
		m.log.Debug().Str("product", ordered).Msg("salad/box is not vendor-matched")
		return model.MatchResult{}, false
	}

	if e, ok := m.idx.exact(n); ok {
		return m.hit(ordered, model.MatchResult{Entry: e, Method: model.MatchExact, Key: n}), true
	}

	b := BaseNormalize(ordered)
	if b == "" {
		m.log.Debug().Str("product", ordered).Msg("empty base name")
		return model.MatchResult{}, false
	}
	if e, ok := m.idx.base(b); ok {
		return m.hit(ordered, model.MatchResult{Entry: e, Method: model.MatchBase, Key: b}), true
	}

	orderTokens := coreTokens(b)
	if len(orderTokens) == 0 {
		m.log.Debug().Str("product", ordered).Msg("no core tokens")
		return model.MatchResult{}, false
	}
	candidates := m.idx.candidateKeys(orderTokens)

	// shortest containing key wins
	for _, k := range candidates {
		if containsAll(m.idx.keyTokens[k], orderTokens) {
			e, _ := m.idx.base(k)
			return m.hit(ordered, model.MatchResult{Entry: e, Method: model.MatchCoreWord, Key: k}), true
		}
	}

	bestKey := ""
	best := -1.0
	for _, k := range candidates {
		kt := m.idx.keyTokens[k]
		if len(kt) == 0 {
			continue
		}
		if s := compositeScore(b, k, orderTokens, kt); s > best {
			best = s
			bestKey = k
		}
	}
	if bestKey != "" && best >= m.minScore {
		e, _ := m.idx.base(bestKey)
		return m.hit(ordered, model.MatchResult{Entry: e, Method: model.MatchFuzzy, Key: bestKey, Score: best}), true
	}

	m.log.Debug().Str("product", ordered).Float64("best_score", best).Msg("no reliable vendor match")
	return model.MatchResult{}, false
}

func (m *Matcher) hit(ordered string, r model.MatchResult) model.MatchResult {
	r.Entry.VendorKey = CanonicalizeVendor(r.Entry.VendorKey)
	ev := m.log.Debug().
		Str("product", ordered).
		Str("method", string(r.Method)).
		Str("key", r.Key).
		Str("vendor", r.Entry.VendorKey)
	if r.Method == model.MatchFuzzy {
		ev = ev.Float64("score", r.Score)
	}
	ev.Msg("vendor match")
	return r
}

func containsAll(set, sub tokenSet) bool {
	if len(sub) == 0 {
		return false
	}
	for t := range sub {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}
