package hashnode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/machinebox/graphql"

	"github.com/MrSnakeDoc/aboutme/internal/domain"
	"github.com/MrSnakeDoc/aboutme/internal/logger"
)

var (
	// ErrMissingEndpoint is returned when no GraphQL endpoint is configured.
	ErrMissingEndpoint = errors.New("graphql endpoint is not configured")
	// ErrUnexpectedStatus wraps non-2xx responses from the endpoint.
	ErrUnexpectedStatus = errors.New("unexpected status from graphql endpoint")
	// ErrMalformedResponse is returned when a response carries no usable data.
	ErrMalformedResponse = errors.New("malformed graphql response")
)

// Options configures a Client.
type Options struct {
	Endpoint  string        // GraphQL endpoint URL
	Timeout   time.Duration // per-request timeout, 0 = none
	UserAgent string        // optional
	// HTTPClient overrides the transport. Its Transport is wrapped with a status check.
	HTTPClient *http.Client
}

// Client queries a Hashnode-compatible GraphQL API.
type Client struct {
	gql      *graphql.Client
	endpoint string
	timeout  time.Duration
	ua       string
	logger   logger.Logger
}

// NewClient builds a client. An empty endpoint is accepted here and reported
// by FetchPublication, so a misconfiguration surfaces at generation time.
func NewClient(opts Options, log logger.Logger) *Client {
	base := opts.HTTPClient
	if base == nil {
		base = &http.Client{}
	}
	rt := base.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}

	hc := *base
	hc.Transport = &statusTransport{next: rt}

	c := &Client{
		endpoint: opts.Endpoint,
		timeout:  opts.Timeout,
		ua:       opts.UserAgent,
		logger:   log,
	}
	if opts.Endpoint != "" {
		c.gql = graphql.NewClient(opts.Endpoint, graphql.WithHTTPClient(&hc))
	}
	return c
}

// FetchPublication requests the publication served at host.
// It returns (nil, nil) when the platform reports no publication.
func (c *Client) FetchPublication(ctx context.Context, host string) (*domain.Publication, error) {
	if c.gql == nil {
		return nil, ErrMissingEndpoint
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := graphql.NewRequest(PublicationByHostQuery)
	req.Var("host", host)
	req.Header.Set("Cache-Control", "no-cache")
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	start := time.Now()
	var data json.RawMessage
	if err := c.gql.Run(ctx, req, &data); err != nil {
		return nil, fmt.Errorf("failed to query publication %q: %w", host, err)
	}

	node, err := decodePublication(data)
	if err != nil {
		return nil, fmt.Errorf("failed to query publication %q: %w", host, err)
	}

	c.logger.Debug("publication query completed",
		logger.String("host", host),
		logger.Bool("found", node != nil),
		logger.Duration("elapsed", time.Since(start)))

	return mapPublication(node), nil
}

// statusTransport turns non-2xx responses into errors so an error body is
// never decoded as query data.
type statusTransport struct {
	next http.RoundTripper
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	return resp, nil
}
