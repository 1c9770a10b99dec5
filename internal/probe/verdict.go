package probe

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Verdict is the terminal artifact of a single probe: whether introspection
// is enabled, plus supporting evidence.
type Verdict struct {
	IntrospectionEnabled bool     `json:"introspection_enabled"`
	TypeCount            int      `json:"type_count,omitempty"`
	TypeNames            []string `json:"type_names,omitempty"`
	Evidence             string   `json:"evidence,omitempty"`
}

// Evaluate decides whether introspection is enabled from a raw response.
// It is a pure function: malformed or rejecting responses degrade to a
// false verdict with explanatory evidence, never an error. Only a 2xx/3xx
// JSON body containing a non-empty data.__schema.types is a finding.
func Evaluate(statusCode int, body []byte) Verdict {
	root := parseObject(body)

	if statusCode >= 400 {
		evidence := fmt.Sprintf("HTTP %d", statusCode)
		if msgs := errorMessages(root); len(msgs) > 0 {
			evidence += ": " + strings.Join(msgs, "; ")
		}
		return Verdict{Evidence: evidence}
	}

	if root == nil {
		return Verdict{Evidence: "non-JSON or malformed response body"}
	}

	if names, count, ok := schemaTypeNames(root); ok {
		return Verdict{
			IntrospectionEnabled: true,
			TypeCount:            count,
			TypeNames:            names,
			Evidence:             fmt.Sprintf("__schema returned %d types", count),
		}
	}

	if msgs := errorMessages(root); len(msgs) > 0 {
		return Verdict{Evidence: "introspection rejected: " + strings.Join(msgs, "; ")}
	}

	return Verdict{Evidence: "response contains no usable __schema data"}
}

// parseObject parses body as a JSON object, returning nil when the body is
// not valid JSON or not an object.
func parseObject(body []byte) map[string]interface{} {
	var root map[string]interface{}
	if err := json.Unmarshal(body, &root); err != nil {
		return nil
	}
	return root
}

// schemaTypeNames walks data -> __schema -> types and collects the type
// names. Each step is an optional lookup; any absent or null step reports
// not-found instead of panicking. The types list must be non-empty. The
// returned count is the full length of the list even when some entries
// carry no usable name.
func schemaTypeNames(root map[string]interface{}) ([]string, int, bool) {
	data, ok := lookupObject(root, "data")
	if !ok {
		return nil, 0, false
	}
	schema, ok := lookupObject(data, "__schema")
	if !ok {
		return nil, 0, false
	}
	types, ok := lookupArray(schema, "types")
	if !ok || len(types) == 0 {
		return nil, 0, false
	}

	names := make([]string, 0, len(types))
	for _, t := range types {
		entry, ok := t.(map[string]interface{})
		if !ok {
			continue
		}
		if name, ok := entry["name"].(string); ok && name != "" {
			names = append(names, name)
		}
	}
	return names, len(types), true
}

// errorMessages collects message strings from a top-level GraphQL errors
// array, if present.
func errorMessages(root map[string]interface{}) []string {
	errs, ok := lookupArray(root, "errors")
	if !ok {
		return nil
	}
	var msgs []string
	for _, e := range errs {
		entry, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		if msg, ok := entry["message"].(string); ok && msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func lookupObject(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	obj, ok := v.(map[string]interface{})
	return obj, ok
}

func lookupArray(m map[string]interface{}, key string) ([]interface{}, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	arr, ok := v.([]interface{})
	return arr, ok
}
