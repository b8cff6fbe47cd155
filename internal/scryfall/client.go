// Package scryfall is the client for the external card catalog. It
// enforces a fixed minimum spacing between requests, treats an empty
// search result as a normal outcome, and never retries: a failing
// catalog call fails the one request that needed it.
package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	rateLimitDelay = 100 * time.Millisecond // spacing between catalog calls
	requestTimeout = 30 * time.Second
)

// Client is a rate-limited Scryfall API client. The zero value is not
// usable; construct with NewClient.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
}

// NewClient creates a catalog client against the given base URL
// (normally https://api.scryfall.com; tests point it at a local
// server).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: requestTimeout},
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   "deckforge/1.0",
	}
}

// Search issues one catalog search for the given facets and returns
// the normalized page. A 404 from the catalog means "no cards matched"
// and yields an empty result, not an error.
func (c *Client) Search(ctx context.Context, p SearchParams) (SearchResult, error) {
	q := url.Values{}
	q.Set("q", BuildQuery(p))
	if p.Page > 1 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Sort != "" {
		q.Set("order", p.Sort)
	}
	if p.Order != "" {
		q.Set("dir", p.Order)
	}

	var resp searchResponse
	err := c.get(ctx, c.baseURL+"/cards/search?"+q.Encode(), &resp)
	if err != nil {
		if IsNotFound(err) {
			return SearchResult{Cards: []ResultCard{}}, nil
		}
		return SearchResult{}, err
	}

	out := SearchResult{
		Cards:      make([]ResultCard, 0, len(resp.Data)),
		TotalCards: resp.TotalCards,
		HasMore:    resp.HasMore,
	}
	for _, card := range resp.Data {
		out.Cards = append(out.Cards, flatten(card))
	}
	return out, nil
}

// GetCard retrieves a single card by its Scryfall ID.
func (c *Client) GetCard(ctx context.Context, id string) (ResultCard, error) {
	var card Card
	if err := c.get(ctx, c.baseURL+"/cards/"+url.PathEscape(id), &card); err != nil {
		return ResultCard{}, fmt.Errorf("get card %s: %w", id, err)
	}
	return flatten(card), nil
}

// RandomCard retrieves a random card from the catalog.
func (c *Client) RandomCard(ctx context.Context) (ResultCard, error) {
	var card Card
	if err := c.get(ctx, c.baseURL+"/cards/random", &card); err != nil {
		return ResultCard{}, fmt.Errorf("get random card: %w", err)
	}
	return flatten(card), nil
}

// statusError carries a non-2xx catalog response.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("scryfall: unexpected status %d: %s", e.code, e.body)
}

// IsNotFound reports whether an error from the client is a catalog
// 404, possibly wrapped.
func IsNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.code == http.StatusNotFound
}

// get performs one rate-limited GET and decodes the JSON body into
// result.
func (c *Client) get(ctx context.Context, rawURL string, result any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{code: resp.StatusCode, body: string(body)}
	}

	return json.NewDecoder(resp.Body).Decode(result)
}
