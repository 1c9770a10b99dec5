package httpclient

import (
	"crypto/tls"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/logger"
)

// Client wraps http.Client with the probe's transport policy: a bounded
// timeout, an optional redirect cap, and a default User-Agent that caller
// headers may override.
type Client struct {
	httpClient *http.Client   // The underlying standard HTTP client.
	logger     *logger.Logger // Logger for client-related messages.
	userAgent  string         // Default User-Agent header for requests.
}

// ClientOptions holds configuration parameters for initializing the HTTP Client.
type ClientOptions struct {
	Timeout            time.Duration // Timeout covering connect, TLS and read.
	FollowRedirects    bool          // Whether to follow HTTP redirects.
	InsecureSkipVerify bool          // Whether to skip TLS certificate verification.
	UserAgent          string        // Custom User-Agent string.
}

// NewClient creates and returns a new HTTP client instance with specified options.
func NewClient(log *logger.Logger, opts ClientOptions) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = "vscan-graphql/1.0"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}

	// Cookie jar so a redirecting endpoint keeps its session across hops.
	jar, _ := cookiejar.New(nil)
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: opts.InsecureSkipVerify},
	}

	client := &Client{
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
			Jar:       jar,
		},
		logger:    log,
		userAgent: opts.UserAgent,
	}

	client.httpClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if !opts.FollowRedirects {
			return http.ErrUseLastResponse
		}
		if len(via) >= 10 {
			log.Warn("Exceeded maximum redirects (10).")
			return http.ErrUseLastResponse
		}
		return nil
	}
	return client
}

// Do performs a single HTTP request. A caller-supplied User-Agent header is
// preserved; otherwise the client's default is applied. There is no retry
// logic: one request maps to exactly one response or one error.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Trace("Sending request: %s %s", req.Method, req.URL.String())
	return c.httpClient.Do(req)
}

// Get performs an HTTP GET request using the client's transport policy.
func (c *Client) Get(url string) (*http.Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// Post performs an HTTP POST request using the client's transport policy.
func (c *Client) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest("POST", url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.Do(req)
}

// Timeout returns the configured request timeout.
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}
