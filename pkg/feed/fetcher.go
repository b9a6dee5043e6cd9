package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/mmcdole/gofeed"

	"github.com/belliavesha/Rxivist/pkg/domain"
)

// DefaultBaseURL is the arXiv export API query endpoint.
const DefaultBaseURL = "https://export.arxiv.org/api/query"

// maxResults caps one day's window, arXiv rejects unbounded queries
const maxResults = 1400

// Fetcher retrieves paper entries from the arXiv Atom API and adapts
// them to domain papers, so nothing downstream sees feed-library types.
type Fetcher struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewFetcher creates a fetcher with a bounded request timeout.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:   DefaultBaseURL,
		userAgent: userAgent,
	}
}

// WithBaseURL points the fetcher at a different endpoint, used in tests.
func (f *Fetcher) WithBaseURL(u string) *Fetcher {
	f.baseURL = u
	return f
}

// FetchWindow returns all papers submitted in the one-day window ending
// at day. Network and non-200 failures are retried with backoff before
// being reported.
func (f *Fetcher) FetchWindow(ctx context.Context, day time.Time) ([]domain.Paper, error) {
	start := day.AddDate(0, 0, -1).Format("20060102")
	end := day.Format("20060102")

	params := url.Values{}
	params.Set("search_query", fmt.Sprintf("submittedDate:[%s TO %s]", start, end))
	params.Set("start", "0")
	params.Set("max_results", fmt.Sprintf("%d", maxResults))

	feed, err := f.query(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("fetch papers for %s: %w", end, err)
	}
	return adaptItems(feed.Items), nil
}

// LookupByID fetches one paper by its arXiv identifier. A well-formed
// response with no entries yields (nil, nil), callers skip those.
func (f *Fetcher) LookupByID(ctx context.Context, id string) (*domain.Paper, error) {
	params := url.Values{}
	params.Set("id_list", id)
	params.Set("max_results", "1")

	feed, err := f.query(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", id, err)
	}
	if len(feed.Items) == 0 {
		return nil, nil
	}
	papers := adaptItems(feed.Items[:1])
	return &papers[0], nil
}

// query performs one GET against the API with retries and parses the
// Atom body.
func (f *Fetcher) query(ctx context.Context, params url.Values) (*gofeed.Feed, error) {
	reqURL := f.baseURL + "?" + params.Encode()

	var feed *gofeed.Feed
	retrier := repeater.NewBackoff(3, 500*time.Millisecond, repeater.WithMaxDelay(5*time.Second))
	err := retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", f.userAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("get %s: %w", reqURL, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			_, _ = io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		feed, err = gofeed.NewParser().Parse(resp.Body)
		if err != nil {
			return fmt.Errorf("parse feed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return feed, nil
}

// adaptItems maps Atom entries to domain papers. arXiv puts the
// abstract in the entry summary, which gofeed exposes as Description.
func adaptItems(items []*gofeed.Item) []domain.Paper {
	papers := make([]domain.Paper, 0, len(items))
	for _, item := range items {
		p := domain.Paper{
			Title:   item.Title,
			Link:    item.Link,
			Summary: item.Description,
		}
		for _, a := range item.Authors {
			if a != nil && a.Name != "" {
				p.Authors = append(p.Authors, a.Name)
			}
		}
		papers = append(papers, p)
	}
	return papers
}
