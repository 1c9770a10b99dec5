package probe

import "fmt"

// ConfigurationError reports an invalid probe configuration (malformed URL,
// unsupported method, bad header name). It is raised before any network I/O
// and is never retried.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
}

// ProbeError reports a transport-level failure (DNS, connection refused,
// timeout, TLS). It means the target could not be tested, which is distinct
// from a negative verdict.
type ProbeError struct {
	Op      string // "send" or "read"
	URL     string
	Timeout bool
	Err     error
}

func (e *ProbeError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("probe %s timed out for %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("probe %s failed for %s: %v", e.Op, e.URL, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}
