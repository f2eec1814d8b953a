package verto

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/muhammadjan5/verto-ux/sdk/services"
)

// DefaultBaseURL is the local development endpoint used when no base URL is
// configured.
const DefaultBaseURL = "http://localhost:3000"

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// TokenSource supplies the bearer credential for authenticated requests.
// An empty token means no identity is signed in.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client is the main client for interacting with the Verto API
// After creation, the client is immutable and safe for concurrent use
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client

	// Custom headers to include in all requests
	headers map[string]string

	timeout     time.Duration
	retryConfig *RetryConfig

	// Service groups
	Releases          *services.ReleaseService
	Organizations     *services.OrganizationService
	Projects          *services.ProjectService
	TransactionEvents *services.TransactionEventService
	Auth              *services.AuthService
	Users             *services.UserService
}

// RetryConfig configures retry behavior for failed requests
type RetryConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

// NewClient creates a new Client with the given options. The token source may
// yield an empty token; credentialed requests then fail with ErrAuthRequired
// without touching the network.
func NewClient(tokens TokenSource, opts ...ClientOption) *Client {
	if tokens == nil {
		tokens = StaticToken("")
	}

	client := &Client{
		baseURL: DefaultBaseURL,
		tokens:  tokens,
		headers: make(map[string]string),
		timeout: 30 * time.Second,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retryConfig: &RetryConfig{
			MaxRetries: 3,
			RetryDelay: time.Second,
		},
	}

	// Apply options
	for _, opt := range opts {
		opt(client)
	}

	// Initialize services
	client.Releases = services.NewReleaseService(client)
	client.Organizations = services.NewOrganizationService(client)
	client.Projects = services.NewProjectService(client)
	client.TransactionEvents = services.NewTransactionEventService(client)
	client.Auth = services.NewAuthService(client)
	client.Users = services.NewUserService(client)

	return client
}

// WithBaseURL sets a custom base URL for the client
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
		c.httpClient.Timeout = timeout
	}
}

// WithRetryConfig sets the retry configuration
func WithRetryConfig(config *RetryConfig) ClientOption {
	return func(c *Client) {
		c.retryConfig = config
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader adds a custom header that will be included in all requests
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithHeaders adds multiple custom headers that will be included in all requests
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// GetBaseURL returns the configured base URL
func (c *Client) GetBaseURL() string {
	return c.baseURL
}

// NewRequest creates a new HTTP request carrying the bearer credential.
// Returns ErrAuthRequired before any network attempt if no token is present.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	token := strings.TrimSpace(c.tokens.Token())
	if token == "" {
		return nil, ErrAuthRequired
	}

	req, err := c.NewPublicRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

// NewPublicRequest creates a new HTTP request without credentials, for the
// auth endpoints that establish a session.
func (c *Client) NewPublicRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := fmt.Sprintf("%s%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set default headers
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// Set custom headers
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	return req, nil
}

// Do executes an HTTP request with retry logic. Server errors and transport
// failures are retried with a linear backoff; the body is rewound through
// GetBody before each retry and the discarded response is drained so the
// connection can be reused.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	for attempt := 0; attempt <= c.retryConfig.MaxRetries; attempt++ {
		resp, err = c.httpClient.Do(req)

		// Success or non-retryable error
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}
		if attempt == c.retryConfig.MaxRetries {
			break
		}

		// A body that cannot be replayed makes the request non-retryable;
		// keep the first result.
		if req.Body != nil {
			if req.GetBody == nil {
				break
			}
			body, rewindErr := req.GetBody()
			if rewindErr != nil {
				break
			}
			req.Body = body
		}

		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		time.Sleep(c.retryConfig.RetryDelay * time.Duration(attempt+1))
	}

	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	return resp, nil
}
