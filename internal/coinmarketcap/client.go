package coinmarketcap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	defaultBaseURL    = "https://pro-api.coinmarketcap.com"
	quotesLatestPath  = "/v1/cryptocurrency/quotes/latest"
	apiKeyHeader      = "X-CMC_PRO_API_KEY"
	symbolQueryParam  = "symbol"
	maxErrorBodyBytes = 1 << 20
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=coinmarketcap_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the CoinMarketCap API.
type Client struct {
	// baseURL is the scheme and host of the API.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header is sent with each request.
	header http.Header
}

// Option is a configuration option for the Client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// New creates a client authenticating with apiKey.
func New(apiKey string, options ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	c.header.Set("Accept", "application/json")
	for _, option := range options {
		option(c)
	}
	// applied last so options cannot drop it
	c.header.Set(apiKeyHeader, apiKey)

	return c, nil
}

// QuotesLatest fetches the latest quotes for symbols, a comma separated list
// of ticker symbols sent to the API as given.
func (c *Client) QuotesLatest(ctx context.Context, symbols string) (QuoteResponse, error) {
	if symbols == "" {
		return QuoteResponse{}, ErrMissingSymbols
	}

	query := url.Values{}
	query.Set(symbolQueryParam, symbols)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+quotesLatestPath+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return QuoteResponse{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return QuoteResponse{}, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return QuoteResponse{}, apiErrorFromBody(resp)
	}

	ret := quoteLatestResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&ret); err != nil {
		return QuoteResponse{}, fmt.Errorf("decoding response: %w", err)
	}

	if ret.Status.ErrorCode != 0 {
		return QuoteResponse{}, &APIError{
			StatusCode: resp.StatusCode,
			ErrorCode:  ret.Status.ErrorCode,
			Message:    message(ret.Status),
		}
	}

	return ret.toQuoteResponse()
}

func apiErrorFromBody(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return apiErr
	}

	envelope := struct {
		Status status `json:"status"`
	}{}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.ErrorCode = envelope.Status.ErrorCode
		apiErr.Message = message(envelope.Status)
	}
	return apiErr
}

func message(s status) string {
	if s.ErrorMessage == nil {
		return ""
	}
	return *s.ErrorMessage
}
