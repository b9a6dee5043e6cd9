package score

import (
	"math"
	"sort"

	"github.com/belliavesha/Rxivist/pkg/domain"
)

// DefaultThreshold is the minimum score (exclusive) a paper needs to
// surface in ranked results.
const DefaultThreshold = 10

// sub-score multipliers for title, summary and author densities
const (
	titleWeight   = 10
	summaryWeight = 10
	authorWeight  = 10
)

// Scorer ranks papers against a preference profile. It is built once
// per ranking pass from the current keyword and author weight maps and
// performs no I/O.
type Scorer struct {
	keywords map[string]int
	authors  map[string]int
}

// NewScorer creates a scorer over the given weight maps.
func NewScorer(keywords, authors map[string]int) *Scorer {
	return &Scorer{keywords: keywords, authors: authors}
}

// smooth is the signed square-root compression w/sqrt(|w|): it keeps
// the sign and dampens large magnitudes. Zero is special-cased to zero,
// the raw formula is 0/0 there.
func smooth(w int) float64 {
	if w == 0 {
		return 0
	}
	return float64(w) / math.Sqrt(math.Abs(float64(w)))
}

// density sums the smoothed weights of profile entries present in the
// token list and normalizes by list length, so a long title dilutes a
// single strong match. An empty token list contributes zero, never a
// division by zero.
func density(tokens []string, weights map[string]int) float64 {
	if len(tokens) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(tokens))
	sum := 0.0
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if w, ok := weights[t]; ok {
			sum += smooth(w)
		}
	}
	return sum / float64(len(tokens))
}

// Score computes the integer relevance score of one paper:
// 10*titleDensity + 10*summaryDensity + 10*authorDensity, truncated
// toward zero. Deterministic for a fixed profile.
func (s *Scorer) Score(p domain.Paper) int {
	titleScore := density(Tokens(p.Title), s.keywords)
	summaryScore := density(Tokens(p.Summary), s.keywords)

	authorKeys := make([]string, 0, len(p.Authors))
	for _, name := range p.Authors {
		if key := CanonicalAuthor(name); key != "" {
			authorKeys = append(authorKeys, key)
		}
	}
	authorScore := density(authorKeys, s.authors)

	return int(titleWeight*titleScore + summaryWeight*summaryScore + authorWeight*authorScore)
}

// RankAndFilter scores every paper, drops those at or below threshold
// and sorts the rest by score descending. The sort is stable, papers
// with equal scores keep their feed order.
func (s *Scorer) RankAndFilter(papers []domain.Paper, threshold int) []domain.ScoredPaper {
	ranked := make([]domain.ScoredPaper, 0, len(papers))
	for _, p := range papers {
		if sc := s.Score(p); sc > threshold {
			ranked = append(ranked, domain.ScoredPaper{Paper: p, Score: sc})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}
