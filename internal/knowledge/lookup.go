// Package knowledge queries a public encyclopedia for a short article summary.
// Lookups never fail: every error becomes a sentinel Result.
package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	NoResultsExtract = "No results found."
	FailedExtract    = "Lookup failed."
)

type Outcome string

const (
	OutcomeFound     Outcome = "found"
	OutcomeNoResults Outcome = "no_results"
	OutcomeFailed    Outcome = "failed"
)

// Result is always well formed. On NoResults/Failed, Title echoes the query
// and Extract holds the sentinel text.
type Result struct {
	Title     string  `json:"title"`
	Extract   string  `json:"extract"`
	Outcome   Outcome `json:"outcome"`
	FromCache bool    `json:"-"`
}

func (r Result) OK() bool { return r.Outcome == OutcomeFound }

// Looker is implemented by Client and CachedClient.
type Looker interface {
	Lookup(ctx context.Context, query string) Result
}

// Client talks to the MediaWiki search API and the REST page-summary API.
type Client struct {
	http       *http.Client
	searchURL  string
	summaryURL string
	userAgent  string
}

func NewClient(searchURL, summaryURL string, timeout time.Duration, userAgent string) *Client {
	return &Client{
		http:       &http.Client{Timeout: timeout},
		searchURL:  searchURL,
		summaryURL: strings.TrimRight(summaryURL, "/") + "/",
		userAgent:  userAgent,
	}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type summaryResponse struct {
	Title   *string `json:"title"`
	Extract string  `json:"extract"`
}

// Lookup resolves query to the best matching page and its summary.
func (c *Client) Lookup(ctx context.Context, query string) Result {
	ctx = context.WithoutCancel(ctx)

	var sr searchResponse
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("format", "json")
	params.Set("srlimit", "1")
	if err := c.getJSON(ctx, c.searchURL+"?"+params.Encode(), &sr); err != nil {
		return failed(query)
	}
	if len(sr.Query.Search) == 0 {
		return Result{Title: query, Extract: NoResultsExtract, Outcome: OutcomeNoResults}
	}
	page := sr.Query.Search[0].Title

	var sum summaryResponse
	if err := c.getJSON(ctx, c.summaryURL+url.PathEscape(page), &sum); err != nil {
		return failed(query)
	}
	title := page
	if sum.Title != nil {
		title = *sum.Title
	}
	return Result{Title: title, Extract: sum.Extract, Outcome: OutcomeFound}
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s: status %d", u, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func failed(query string) Result {
	return Result{Title: query, Extract: FailedExtract, Outcome: OutcomeFailed}
}
