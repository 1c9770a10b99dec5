package discovery

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/httpclient"
	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/logger"
)

func testFinder() *Finder {
	log := logger.NewLoggerTo(io.Discard, io.Discard, logger.ERROR)
	client := httpclient.NewClient(log, httpclient.ClientOptions{Timeout: 2 * time.Second})
	return NewFinder(client, log)
}

func TestFindEndpoint_ConfirmsGraphQLPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/graphql", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"__typename":"Query"}}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	finder := testFinder()
	found := finder.FindEndpoint(context.Background(), server.URL+"/some/page")

	assert.Equal(t, server.URL+"/api/graphql", found)
}

func TestFindEndpoint_RecognizesErrorEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errors":[{"message":"Must provide query string"}]}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	finder := testFinder()
	found := finder.FindEndpoint(context.Background(), server.URL)

	// A GraphQL error envelope still confirms the endpoint speaks GraphQL.
	assert.Equal(t, server.URL+"/graphql", found)
}

func TestFindEndpoint_NothingFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<html>nope</html>"))
	}))
	defer server.Close()

	finder := testFinder()
	assert.Equal(t, "", finder.FindEndpoint(context.Background(), server.URL))
}

func TestLooksLikeGraphQL(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"Data envelope", `{"data":{"__typename":"Query"}}`, true},
		{"Errors envelope", `{"errors":[]}`, true},
		{"JSON without GraphQL keys", `{"status":"ok"}`, false},
		{"Error page mentioning GraphQL", `<html>GraphQL endpoint requires POST</html>`, true},
		{"Plain HTML", `<html>hello</html>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, looksLikeGraphQL([]byte(tt.body)))
		})
	}
}
