package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name         string
		statusCode   int
		body         string
		wantEnabled  bool
		wantCount    int
		wantEvidence string
	}{
		{
			name:         "Schema with one type",
			statusCode:   200,
			body:         `{"data":{"__schema":{"types":[{"name":"Query"}]}}}`,
			wantEnabled:  true,
			wantCount:    1,
			wantEvidence: "__schema returned 1 types",
		},
		{
			name:        "Schema with several types",
			statusCode:  200,
			body:        `{"data":{"__schema":{"types":[{"name":"Query"},{"name":"Mutation"},{"name":"User"}]}}}`,
			wantEnabled: true,
			wantCount:   3,
		},
		{
			name:         "Introspection rejected with errors",
			statusCode:   200,
			body:         `{"errors":[{"message":"introspection disabled"}]}`,
			wantEnabled:  false,
			wantEvidence: "introspection rejected: introspection disabled",
		},
		{
			name:         "Forbidden regardless of body",
			statusCode:   403,
			body:         `{"data":{"__schema":{"types":[{"name":"Query"}]}}}`,
			wantEnabled:  false,
			wantEvidence: "HTTP 403",
		},
		{
			name:         "Server error with error message",
			statusCode:   500,
			body:         `{"errors":[{"message":"internal failure"}]}`,
			wantEnabled:  false,
			wantEvidence: "HTTP 500: internal failure",
		},
		{
			name:         "Non-JSON body",
			statusCode:   200,
			body:         "not json",
			wantEnabled:  false,
			wantEvidence: "non-JSON or malformed response body",
		},
		{
			name:        "HTML body",
			statusCode:  200,
			body:        "<html><body>login</body></html>",
			wantEnabled: false,
		},
		{
			name:        "Null schema",
			statusCode:  200,
			body:        `{"data":{"__schema":null}}`,
			wantEnabled: false,
		},
		{
			name:        "Missing schema",
			statusCode:  200,
			body:        `{"data":{}}`,
			wantEnabled: false,
		},
		{
			name:        "Null data",
			statusCode:  200,
			body:        `{"data":null}`,
			wantEnabled: false,
		},
		{
			name:        "Empty types list",
			statusCode:  200,
			body:        `{"data":{"__schema":{"types":[]}}}`,
			wantEnabled: false,
		},
		{
			name:        "Types is not a list",
			statusCode:  200,
			body:        `{"data":{"__schema":{"types":"Query"}}}`,
			wantEnabled: false,
		},
		{
			name:        "JSON array at top level",
			statusCode:  200,
			body:        `[{"data":{}}]`,
			wantEnabled: false,
		},
		{
			name:        "Empty body",
			statusCode:  200,
			body:        "",
			wantEnabled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := Evaluate(tt.statusCode, []byte(tt.body))
			assert.Equal(t, tt.wantEnabled, verdict.IntrospectionEnabled)
			if tt.wantCount > 0 {
				assert.Equal(t, tt.wantCount, verdict.TypeCount)
			}
			if tt.wantEvidence != "" {
				assert.Equal(t, tt.wantEvidence, verdict.Evidence)
			}
			if !tt.wantEnabled {
				assert.NotEmpty(t, verdict.Evidence, "negative verdicts carry evidence")
			}
		})
	}
}

func TestEvaluate_TypeNames(t *testing.T) {
	body := `{"data":{"__schema":{"types":[{"name":"Query"},{"name":"User"},{"kind":"SCALAR"}]}}}`
	verdict := Evaluate(200, []byte(body))

	assert.True(t, verdict.IntrospectionEnabled)
	assert.Equal(t, 3, verdict.TypeCount, "count covers entries without a name")
	assert.Equal(t, []string{"Query", "User"}, verdict.TypeNames)
}

func TestEvaluate_MultipleErrorMessages(t *testing.T) {
	body := `{"errors":[{"message":"first"},{"message":"second"}]}`
	verdict := Evaluate(200, []byte(body))

	assert.False(t, verdict.IntrospectionEnabled)
	assert.Contains(t, verdict.Evidence, "first")
	assert.Contains(t, verdict.Evidence, "second")
}
