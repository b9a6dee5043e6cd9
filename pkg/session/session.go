package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/belliavesha/Rxivist/pkg/domain"
	"github.com/belliavesha/Rxivist/pkg/prefs"
	"github.com/belliavesha/Rxivist/pkg/score"
)

// pageSize is the number of papers shown per page.
const pageSize = 10

// Fetcher pulls one day's papers from the feed.
type Fetcher interface {
	FetchWindow(ctx context.Context, day time.Time) ([]domain.Paper, error)
}

// Session is the interactive review loop: it shows pages of ranked
// papers for the current date and folds up/down votes back into the
// preference store. Single-threaded, one logical actor, terminated by
// the quit command or EOF on input.
type Session struct {
	store     *prefs.Store
	storePath string
	fetcher   Fetcher
	threshold int
	now       func() time.Time

	in  *bufio.Scanner
	out io.Writer

	date    time.Time
	page    int
	total   int
	results []domain.ScoredPaper
}

// New creates a session over the given store and fetcher, reading
// commands from in and writing pages and messages to out.
func New(store *prefs.Store, storePath string, fetcher Fetcher, in io.Reader, out io.Writer) *Session {
	return &Session{
		store:     store,
		storePath: storePath,
		fetcher:   fetcher,
		threshold: score.DefaultThreshold,
		now:       time.Now,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// WithThreshold overrides the ranking cutoff.
func (s *Session) WithThreshold(threshold int) *Session {
	s.threshold = threshold
	return s
}

// WithNow overrides the clock, used in tests.
func (s *Session) WithNow(now func() time.Time) *Session {
	s.now = now
	return s
}

// Run fetches today's papers and enters the command loop. It returns
// nil on quit or EOF and the context error on cancellation.
func (s *Session) Run(ctx context.Context) error {
	s.date = dayOf(s.now())
	if err := s.refresh(ctx, s.date); err != nil {
		fmt.Fprintln(s.out, color.RedString("Failed to fetch papers: %v", err))
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.renderPage()
		fmt.Fprintln(s.out, "\nEnter the index of the paper you want to update your preferences with"+
			" or type 'q' to quit, 'y'/'t' to change the day, 'w' to move up, 's' to move down:")

		if !s.in.Scan() {
			return s.in.Err()
		}
		if quit := s.handle(ctx, strings.TrimSpace(s.in.Text())); quit {
			return nil
		}
	}
}

// handle dispatches one command, reporting true on quit. Every other
// command leaves the session running, invalid input changes nothing.
func (s *Session) handle(ctx context.Context, input string) (quit bool) {
	switch strings.ToLower(input) {
	case "q":
		return true
	case "y":
		s.changeDate(ctx, s.date.AddDate(0, 0, -1))
	case "t":
		if s.date.Before(dayOf(s.now())) {
			s.changeDate(ctx, s.date.AddDate(0, 0, 1))
		} else {
			fmt.Fprintln(s.out, color.YellowString("It's not tomorrow yet! duh..."))
		}
	case "w":
		if s.page > 0 {
			s.page--
		} else {
			fmt.Fprintln(s.out, color.YellowString("This is already the top of the list."))
		}
	case "s":
		if (s.page+1)*pageSize < len(s.results) {
			s.page++
		} else {
			fmt.Fprintln(s.out, color.YellowString("No more papers to show."))
		}
	default:
		s.feedback(input)
	}
	return false
}

// changeDate refetches and rescores for the target day. On failure the
// previous date and results are kept so re-issuing the command retries
// the same day.
func (s *Session) changeDate(ctx context.Context, day time.Time) {
	if err := s.refresh(ctx, day); err != nil {
		fmt.Fprintln(s.out, color.RedString("Failed to fetch papers for %s: %v", day.Format("2006-01-02"), err))
		return
	}
	s.date = day
}

// refresh pulls the day's papers and rebuilds the ranking. The page
// resets to the top; the displayed ranking stays frozen until the next
// refresh even as feedback mutates the store.
func (s *Session) refresh(ctx context.Context, day time.Time) error {
	papers, err := s.fetcher.FetchWindow(ctx, day)
	if err != nil {
		return err
	}
	scorer := score.NewScorer(s.store.KeywordWeights(), s.store.AuthorWeights())
	s.results = scorer.RankAndFilter(papers, s.threshold)
	s.total = len(papers)
	s.page = 0
	fmt.Fprintf(s.out, "There are %d important papers out of %d total papers that day.\n",
		len(s.results), s.total)
	return nil
}

// feedback parses a signed 1-based index and applies an upvote
// (positive) or downvote (negative) to the indexed paper, persisting
// the store right away. The shown page is not rescored.
func (s *Session) feedback(input string) {
	index, err := strconv.Atoi(input)
	if err != nil {
		fmt.Fprintln(s.out, color.YellowString("Invalid input."))
		return
	}

	pos := index
	if pos < 0 {
		pos = -pos
	}
	if pos == 0 || pos > len(s.results) {
		fmt.Fprintln(s.out, color.YellowString("Invalid index. Please enter a valid index."))
		return
	}

	s.store.RecordFeedback(s.results[pos-1].Paper, index < 0)
	if err := prefs.Save(s.storePath, s.store); err != nil {
		log.Printf("[WARN] failed to persist preferences: %v", err)
		fmt.Fprintf(s.out, "Failed to save preferences: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, color.GreenString("Preferences updated."))
}

// dayOf truncates a time to its calendar day.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
