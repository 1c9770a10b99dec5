package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/httpclient"
	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/logger"
	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/payloads"
)

// Finder locates the GraphQL endpoint of a target when the configured URL
// does not point at one directly.
type Finder struct {
	client *httpclient.Client
	log    *logger.Logger
}

// NewFinder creates a new Finder.
func NewFinder(client *httpclient.Client, log *logger.Logger) *Finder {
	return &Finder{client: client, log: log}
}

// FindEndpoint probes the common GraphQL paths under the target's origin
// and returns the first URL that answers like a GraphQL service. It returns
// "" when no candidate responds.
func (f *Finder) FindEndpoint(ctx context.Context, target string) string {
	origin, err := originOf(target)
	if err != nil {
		f.log.Warn("Discovery: cannot derive origin from %s: %v", target, err)
		return ""
	}

	f.log.Info("Starting GraphQL endpoint discovery for %s...", origin)

	probeBody, err := json.Marshal(map[string]string{"query": payloads.TypenameQuery})
	if err != nil {
		return ""
	}

	for _, path := range payloads.CommonGraphQLPaths {
		testURL := origin + path
		f.log.Debug("Discovery: Probing path: %s", testURL)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, testURL, bytes.NewReader(probeBody))
		if err != nil {
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := f.client.Do(req)
		if err != nil {
			continue
		}

		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		resp.Body.Close()

		if looksLikeGraphQL(bodyBytes) {
			f.log.Success("GraphQL endpoint confirmed at: %s", testURL)
			return testURL
		}
	}

	f.log.Info("No GraphQL endpoint found for %s.", origin)
	return ""
}

// looksLikeGraphQL reports whether a response body resembles a GraphQL
// envelope: a JSON object with data or errors keys, or a body carrying the
// usual GraphQL keywords in an error page.
func looksLikeGraphQL(body []byte) bool {
	var root map[string]interface{}
	if err := json.Unmarshal(body, &root); err == nil {
		if _, ok := root["data"]; ok {
			return true
		}
		if _, ok := root["errors"]; ok {
			return true
		}
		return false
	}

	text := string(body)
	for _, keyword := range payloads.GraphQLResponseKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// originOf reduces a target URL to its scheme://host origin.
func originOf(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	return u.Scheme + "://" + u.Host, nil
}
