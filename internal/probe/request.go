package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/net/http/httpguts"

	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/payloads"
)

// Method is the HTTP method used to deliver the introspection query.
type Method string

const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

// DefaultMethod is used when no method is configured.
const DefaultMethod = MethodPost

// ProbeRequest describes a single introspection probe: target, method and
// extra headers. The introspection document itself is fixed and not
// user-configurable. Instances are immutable after construction.
type ProbeRequest struct {
	targetURL *url.URL
	method    Method
	headers   map[string]string
}

// graphqlEnvelope is the POST body wrapper: {"query": "..."}.
type graphqlEnvelope struct {
	Query string `json:"query"`
}

// NewProbeRequest validates the target, method and headers and returns an
// immutable ProbeRequest. An empty method defaults to POST. All failures are
// ConfigurationErrors and occur before any network I/O.
func NewProbeRequest(target string, method Method, headers map[string]string) (*ProbeRequest, error) {
	if target == "" {
		return nil, &ConfigurationError{Field: "url", Message: "target URL is empty"}
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, &ConfigurationError{Field: "url", Message: "invalid URL: " + err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &ConfigurationError{Field: "url", Message: fmt.Sprintf("URL scheme must be http or https, got %q", u.Scheme)}
	}
	if u.Host == "" {
		return nil, &ConfigurationError{Field: "url", Message: "URL has no host"}
	}

	if method == "" {
		method = DefaultMethod
	}
	if method != MethodGet && method != MethodPost {
		return nil, &ConfigurationError{Field: "method", Message: "method must be GET or POST, got " + string(method)}
	}

	merged := make(map[string]string, len(headers))
	for name, value := range headers {
		if !httpguts.ValidHeaderFieldName(name) {
			return nil, &ConfigurationError{Field: "header", Message: "invalid header name: " + name}
		}
		if !httpguts.ValidHeaderFieldValue(value) {
			return nil, &ConfigurationError{Field: "header", Message: "invalid value for header " + name}
		}
		merged[name] = value
	}

	return &ProbeRequest{
		targetURL: u,
		method:    method,
		headers:   merged,
	}, nil
}

// URL returns the configured target URL.
func (r *ProbeRequest) URL() string {
	return r.targetURL.String()
}

// Method returns the configured HTTP method.
func (r *ProbeRequest) Method() Method {
	return r.method
}

// Query returns the fixed introspection document the probe delivers.
func (r *ProbeRequest) Query() string {
	return payloads.IntrospectionQuery
}

// WithMethod returns a copy of the request using a different method. Used by
// the GET fallback after an HTML reply to a POST probe.
func (r *ProbeRequest) WithMethod(method Method) (*ProbeRequest, error) {
	return NewProbeRequest(r.targetURL.String(), method, r.headers)
}

// Build constructs the outgoing HTTP request. For POST the query is wrapped
// in a JSON envelope with Content-Type application/json; for GET it is
// URL-encoded into a "query" parameter. Caller headers are merged last and
// override any default of the same name.
func (r *ProbeRequest) Build(ctx context.Context) (*http.Request, error) {
	var req *http.Request
	var err error

	switch r.method {
	case MethodPost:
		body, merr := json.Marshal(graphqlEnvelope{Query: payloads.IntrospectionQuery})
		if merr != nil {
			return nil, &ConfigurationError{Field: "body", Message: "failed to encode query envelope: " + merr.Error()}
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, r.targetURL.String(), bytes.NewReader(body))
		if err != nil {
			return nil, &ConfigurationError{Field: "url", Message: err.Error()}
		}
		req.Header.Set("Content-Type", "application/json")
	case MethodGet:
		u := *r.targetURL
		q := u.Query()
		q.Set("query", payloads.IntrospectionQuery)
		u.RawQuery = q.Encode()
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, &ConfigurationError{Field: "url", Message: err.Error()}
		}
	default:
		return nil, &ConfigurationError{Field: "method", Message: "method must be GET or POST, got " + string(r.method)}
	}

	req.Header.Set("Accept", "application/json")
	for name, value := range r.headers {
		req.Header.Set(name, value)
	}
	return req, nil
}
