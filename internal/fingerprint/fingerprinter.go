package fingerprint

import (
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/logger"
	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/payloads"
	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/probe"
)

// Fingerprint stores the results of endpoint identification, keyed by clue.
type Fingerprint map[string]string

// Fingerprinter names the software behind a probed endpoint from the probe
// response itself. No additional requests are issued.
type Fingerprinter struct {
	log *logger.Logger
}

// NewFingerprinter creates a new instance of Fingerprinter.
func NewFingerprinter(log *logger.Logger) *Fingerprinter {
	return &Fingerprinter{log: log}
}

// Analyze inspects the headers and body of a finished probe and reports
// identification clues: web server, GraphQL implementation, and the page
// title when the endpoint answered with HTML.
func (f *Fingerprinter) Analyze(resp *probe.ProbeResponse) Fingerprint {
	result := make(Fingerprint)
	if resp == nil {
		return result
	}

	f.analyzeHeaders(resp.Header, result)
	f.analyzeBody(resp, result)

	return result
}

// analyzeHeaders examines response headers for technology clues.
func (f *Fingerprinter) analyzeHeaders(header http.Header, result Fingerprint) {
	if server := header.Get("Server"); server != "" {
		result["WebServer"] = server
		f.log.Debug("Fingerprint: Found Server header: %s", server)
	}
	if xPoweredBy := header.Get("X-Powered-By"); xPoweredBy != "" {
		result["X-Powered-By"] = xPoweredBy
		f.log.Debug("Fingerprint: Found X-Powered-By header: %s", xPoweredBy)
	}
}

// analyzeBody matches the response body against known GraphQL server
// signatures, and extracts the page title from HTML replies.
func (f *Fingerprinter) analyzeBody(resp *probe.ProbeResponse, result Fingerprint) {
	body := string(resp.Body)

	for _, sig := range payloads.ServerSignatures {
		if strings.Contains(body, sig.Pattern) {
			result["GraphQLServer"] = sig.Product
			f.log.Debug("Fingerprint: Matched %s signature: %s", sig.Product, sig.Pattern)
			break
		}
	}

	if resp.IsHTML() {
		if title := htmlTitle(body); title != "" {
			result["HTMLTitle"] = title
			f.log.Debug("Fingerprint: Endpoint answered with HTML page titled %q", title)
		}
	}
}

// htmlTitle tokenizes an HTML document and returns the text of its first
// <title> element, or "" when there is none.
func htmlTitle(body string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(body))
	inTitle := false
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			inTitle = string(name) == "title"
		case html.TextToken:
			if inTitle {
				return strings.TrimSpace(string(tokenizer.Text()))
			}
		case html.EndTagToken:
			inTitle = false
		}
	}
}
