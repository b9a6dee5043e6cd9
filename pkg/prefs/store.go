package prefs

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/renameio/v2"

	"github.com/belliavesha/Rxivist/pkg/domain"
	"github.com/belliavesha/Rxivist/pkg/score"
)

// KeywordWeight is one learned title keyword with its accumulated vote count.
type KeywordWeight struct {
	Keyword string `json:"keyword"`
	Weight  int    `json:"weight"`
}

// AuthorWeight is one learned canonical author key with its accumulated vote count.
type AuthorWeight struct {
	Author string `json:"author"`
	Weight int    `json:"weight"`
}

// Store is the weighted preference profile. Weights are plain integers
// and go negative as downvotes accumulate; an absent entry acts as
// weight zero. Entry order is preserved on save, new entries append.
type Store struct {
	Keywords []KeywordWeight `json:"keywords"`
	Authors  []AuthorWeight  `json:"authors"`
}

// Load reads the preference document from path. A missing or malformed
// document is an error; callers treat it as fatal at startup since
// there is no meaningful default profile.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read preferences %s (run the seeder first?): %w", path, err)
	}
	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse preferences %s: %w", path, err)
	}
	return &s, nil
}

// Save writes the whole store to path, replacing prior content. The
// write goes through a temp file and rename so a crash never leaves a
// partially written document behind.
func Save(path string, s *Store) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write preferences %s: %w", path, err)
	}
	return nil
}

// RecordFeedback applies one up- or downvote to the profile: every
// canonical author key of the paper and every normalized token of its
// title moves by one, new entries start at +-1. Only the title feeds
// the profile; the summary shapes ranking but is never learned from.
// The caller persists the store right after.
func (s *Store) RecordFeedback(p domain.Paper, downvote bool) {
	delta := 1
	if downvote {
		delta = -1
	}

	for _, name := range p.Authors {
		key := score.CanonicalAuthor(name)
		if key == "" {
			continue
		}
		s.bumpAuthor(key, delta)
	}
	for _, token := range score.Tokens(p.Title) {
		s.bumpKeyword(token, delta)
	}
}

func (s *Store) bumpKeyword(keyword string, delta int) {
	for i := range s.Keywords {
		if s.Keywords[i].Keyword == keyword {
			s.Keywords[i].Weight += delta
			return
		}
	}
	s.Keywords = append(s.Keywords, KeywordWeight{Keyword: keyword, Weight: delta})
}

func (s *Store) bumpAuthor(author string, delta int) {
	for i := range s.Authors {
		if s.Authors[i].Author == author {
			s.Authors[i].Weight += delta
			return
		}
	}
	s.Authors = append(s.Authors, AuthorWeight{Author: author, Weight: delta})
}

// KeywordWeights returns the keyword profile as a lookup map.
func (s *Store) KeywordWeights() map[string]int {
	m := make(map[string]int, len(s.Keywords))
	for _, kw := range s.Keywords {
		m[kw.Keyword] = kw.Weight
	}
	return m
}

// AuthorWeights returns the author profile as a lookup map.
func (s *Store) AuthorWeights() map[string]int {
	m := make(map[string]int, len(s.Authors))
	for _, au := range s.Authors {
		m[au.Author] = au.Weight
	}
	return m
}
