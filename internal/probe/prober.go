package probe

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/httpclient"
	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/logger"
)

// maxBodySize caps how much of a response body is read. A real introspection
// payload for a large schema fits comfortably under this.
const maxBodySize = 10 << 20 // 10 MiB

// ProbeResponse is the raw material handed to the evaluator: status code,
// body and content type of the single HTTP exchange. Headers are kept for
// fingerprinting only; the verdict never depends on them.
type ProbeResponse struct {
	StatusCode  int
	Body        []byte
	ContentType string
	Header      http.Header
}

// IsHTML reports whether the response declared an HTML content type.
func (r *ProbeResponse) IsHTML() bool {
	return strings.Contains(strings.ToLower(r.ContentType), "text/html")
}

// Prober sends a single introspection probe and evaluates the answer.
// It holds no state across probes.
type Prober struct {
	client *httpclient.Client
	log    *logger.Logger
}

// NewProber creates a Prober using the given transport.
func NewProber(client *httpclient.Client, log *logger.Logger) *Prober {
	return &Prober{client: client, log: log}
}

// Probe runs one request/response/verdict cycle. Transport failures come
// back as a *ProbeError; a reachable server always yields a Verdict, even
// when it rejects the query.
func (p *Prober) Probe(ctx context.Context, pr *ProbeRequest) (Verdict, *ProbeResponse, error) {
	resp, err := p.send(ctx, pr)
	if err != nil {
		return Verdict{}, nil, err
	}
	verdict := Evaluate(resp.StatusCode, resp.Body)
	p.log.Debug("Evaluated response from %s: enabled=%v (%s)", pr.URL(), verdict.IntrospectionEnabled, verdict.Evidence)
	return verdict, resp, nil
}

// ProbeWithFallback runs a POST probe and, when the server answers with an
// HTML page instead of a GraphQL envelope, retries once as GET with the
// query in the URL. Some gateways only route GraphQL on GET. The fallback
// is itself an independent probe; callers that force a method should use
// Probe directly.
func (p *Prober) ProbeWithFallback(ctx context.Context, pr *ProbeRequest) (Verdict, *ProbeResponse, error) {
	verdict, resp, err := p.Probe(ctx, pr)
	if err != nil || pr.Method() != MethodPost {
		return verdict, resp, err
	}
	if verdict.IntrospectionEnabled || !resp.IsHTML() {
		return verdict, resp, nil
	}

	p.log.Info("Received HTML response, retrying as GET with query parameter.")
	getReq, err := pr.WithMethod(MethodGet)
	if err != nil {
		return verdict, resp, err
	}
	return p.Probe(ctx, getReq)
}

// send builds the HTTP request, performs it and reads the body.
func (p *Prober) send(ctx context.Context, pr *ProbeRequest) (*ProbeResponse, error) {
	req, err := pr.Build(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &ProbeError{Op: "send", URL: pr.URL(), Timeout: isTimeout(err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &ProbeError{Op: "read", URL: pr.URL(), Timeout: isTimeout(err), Err: err}
	}

	p.log.Trace("Received %d bytes from %s (status %d)", len(body), pr.URL(), resp.StatusCode)
	return &ProbeResponse{
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		Header:      resp.Header,
	}, nil
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
