package fingerprint

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/logger"
	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/probe"
)

func testFingerprinter() *Fingerprinter {
	return NewFingerprinter(logger.NewLoggerTo(io.Discard, io.Discard, logger.ERROR))
}

func TestAnalyze_Headers(t *testing.T) {
	header := http.Header{}
	header.Set("Server", "nginx/1.25.3")
	header.Set("X-Powered-By", "Express")

	resp := &probe.ProbeResponse{
		StatusCode:  200,
		Body:        []byte(`{"data":null}`),
		ContentType: "application/json",
		Header:      header,
	}

	fp := testFingerprinter().Analyze(resp)

	assert.Equal(t, "nginx/1.25.3", fp["WebServer"])
	assert.Equal(t, "Express", fp["X-Powered-By"])
}

func TestAnalyze_ServerSignatures(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantProduct string
	}{
		{
			name:        "Apollo validation error",
			body:        `{"errors":[{"message":"bad","extensions":{"code":"GRAPHQL_VALIDATION_FAILED"}}]}`,
			wantProduct: "Apollo Server",
		},
		{
			name:        "Hasura validation error",
			body:        `{"errors":[{"extensions":{"path":"$","code":"validation-failed"},"message":"not allowed"}]}`,
			wantProduct: "Hasura",
		},
		{
			name:        "express-graphql missing query",
			body:        `{"errors":[{"message":"Must provide query string."}]}`,
			wantProduct: "graphql-js (express-graphql)",
		},
		{
			name: "No signature",
			body: `{"data":{"__schema":null}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &probe.ProbeResponse{
				StatusCode:  200,
				Body:        []byte(tt.body),
				ContentType: "application/json",
				Header:      http.Header{},
			}
			fp := testFingerprinter().Analyze(resp)
			if tt.wantProduct == "" {
				assert.NotContains(t, fp, "GraphQLServer")
			} else {
				assert.Equal(t, tt.wantProduct, fp["GraphQLServer"])
			}
		})
	}
}

func TestAnalyze_HTMLTitle(t *testing.T) {
	resp := &probe.ProbeResponse{
		StatusCode:  200,
		Body:        []byte("<html><head><title> GraphQL Playground </title></head><body></body></html>"),
		ContentType: "text/html; charset=utf-8",
		Header:      http.Header{},
	}

	fp := testFingerprinter().Analyze(resp)
	assert.Equal(t, "GraphQL Playground", fp["HTMLTitle"])
}

func TestAnalyze_NilResponse(t *testing.T) {
	fp := testFingerprinter().Analyze(nil)
	assert.Empty(t, fp)
}
