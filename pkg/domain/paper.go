package domain

import "strings"

// Paper represents one preprint entry as returned by the feed,
// adapted at the boundary so nothing downstream depends on the
// feed-parsing library's types.
type Paper struct {
	Title   string
	Authors []string // raw display names, feed order
	Link    string
	Summary string
}

// AuthorList joins the raw author names for display.
func (p Paper) AuthorList() string {
	return strings.Join(p.Authors, ", ")
}

// ScoredPaper is a paper with its relevance score attached.
// Produced fresh on each fetch, immutable after scoring.
type ScoredPaper struct {
	Paper
	Score int
}
