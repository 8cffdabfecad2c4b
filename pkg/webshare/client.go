package webshare

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kasuboski/seriez/pkg/catalog"
	mhttp "github.com/kasuboski/seriez/pkg/http"
	"github.com/kasuboski/seriez/pkg/logger"
	"go.uber.org/zap"
)

const searchPath = "/api/search/"

var _ Searcher = (*Client)(nil)

// Client talks to the Webshare file search API
type Client struct {
	baseURL *url.URL
	http    mhttp.HTTPClient
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the http client used for requests
func WithHTTPClient(c mhttp.HTTPClient) Option {
	return func(client *Client) {
		client.http = c
	}
}

// New creates a client for the api at baseURL, e.g. https://webshare.cz
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webshare url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid webshare url %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    mhttp.NewRateLimitedClient(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type searchResponse struct {
	Status  string `xml:"status"`
	Message string `xml:"message"`
	Files   []file `xml:"file"`
}

type file struct {
	Fields []field `xml:",any"`
}

type field struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// Search runs a single query. A response with a status other than OK yields no entries and no error.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]catalog.RawEntry, error) {
	log := logger.FromCtx(ctx, "query", params.Query)

	req, err := c.newSearchRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		log.Debug("unexpected response status", zap.Any("status", resp.Status), zap.String("body", string(b)))
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var parsed searchResponse
	if err := xml.Unmarshal(b, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	if strings.TrimSpace(parsed.Status) != StatusOK {
		log.Debugw("search returned non ok status", "status", parsed.Status, "message", parsed.Message)
		return []catalog.RawEntry{}, nil
	}

	entries := make([]catalog.RawEntry, 0, len(parsed.Files))
	for _, f := range parsed.Files {
		entry := make(catalog.RawEntry, len(f.Fields))
		for _, fld := range f.Fields {
			entry[fld.XMLName.Local] = fld.Value
		}
		entries = append(entries, entry)
	}

	log.Debugw("search results", "count", len(entries))
	return entries, nil
}

func (c *Client) newSearchRequest(ctx context.Context, params SearchParams) (*http.Request, error) {
	form := url.Values{}
	form.Set("what", params.Query)
	form.Set("category", params.Category)
	form.Set("sort", params.Sort)
	form.Set("limit", strconv.Itoa(params.Limit))
	form.Set("offset", strconv.Itoa(params.Offset))
	form.Set("wst", params.Token)
	form.Set("maybe_removed", strconv.FormatBool(params.MaybeRemoved))

	endpoint := c.baseURL.JoinPath(searchPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("Accept", "text/xml; charset=UTF-8")
	return req, nil
}
