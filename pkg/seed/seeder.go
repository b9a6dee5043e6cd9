package seed

import (
	"context"
	"log"
	"sort"

	"github.com/belliavesha/Rxivist/pkg/domain"
	"github.com/belliavesha/Rxivist/pkg/prefs"
	"github.com/belliavesha/Rxivist/pkg/score"
)

// DefaultTopN is how many keywords and authors the seeded profile keeps.
const DefaultTopN = 150

// Lookup resolves one external identifier to a paper's title and
// author list. A (nil, nil) result means the identifier matched nothing.
type Lookup interface {
	LookupByID(ctx context.Context, id string) (*domain.Paper, error)
}

// counter tallies occurrences while remembering first-seen order, so
// ties in the final cut resolve to the earliest key.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// top returns up to n keys by descending count, first-seen order on ties.
func (c *counter) top(n int) []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	sort.SliceStable(keys, func(i, j int) bool { return c.counts[keys[i]] > c.counts[keys[j]] })
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// Build looks up every identifier sequentially and produces a fresh
// preference store from the topN most frequent title tokens and
// canonical author keys, weights equal to occurrence counts. Failed or
// empty lookups are skipped, a bibliography is allowed to be messy.
func Build(ctx context.Context, lookup Lookup, ids []string, topN int) (*prefs.Store, error) {
	keywords := newCounter()
	authors := newCounter()

	fetched := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		paper, err := lookup.LookupByID(ctx, id)
		if err != nil {
			log.Printf("[WARN] lookup %s failed, skipping: %v", id, err)
			continue
		}
		if paper == nil {
			log.Printf("[DEBUG] no paper for %s, skipping", id)
			continue
		}
		fetched++

		for _, token := range score.Tokens(paper.Title) {
			keywords.add(token)
		}
		for _, name := range paper.Authors {
			if key := score.CanonicalAuthor(name); key != "" {
				authors.add(key)
			}
		}
	}
	log.Printf("[INFO] seeded from %d of %d bibliography entries", fetched, len(ids))

	store := &prefs.Store{}
	for _, kw := range keywords.top(topN) {
		store.Keywords = append(store.Keywords, prefs.KeywordWeight{Keyword: kw, Weight: keywords.counts[kw]})
	}
	for _, au := range authors.top(topN) {
		store.Authors = append(store.Authors, prefs.AuthorWeight{Author: au, Weight: authors.counts[au]})
	}
	return store, nil
}
