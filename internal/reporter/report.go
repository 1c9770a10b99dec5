package reporter

import (
	"time"

	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/fingerprint"
	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/probe"
)

// ProbeSummary contains metadata about the single probe run.
type ProbeSummary struct {
	TargetURL      string `json:"target_url"`
	Method         string `json:"method"`
	ProbeStartTime string `json:"probe_start_time"`
	ProbeEndTime   string `json:"probe_end_time"`
	TotalDuration  string `json:"total_duration"`
	StatusCode     int    `json:"status_code,omitempty"`
}

// Report is the serializable result of one probe: summary, verdict and any
// fingerprint clues. When the probe could not be completed, Error carries
// the transport or configuration failure instead of a verdict.
type Report struct {
	ProbeSummary ProbeSummary            `json:"probe_summary"`
	Verdict      *probe.Verdict          `json:"verdict,omitempty"`
	Fingerprint  fingerprint.Fingerprint `json:"fingerprint,omitempty"`
	Error        string                  `json:"error,omitempty"`
}

// NewReport creates a report for a probe that is about to run.
func NewReport(target string, method probe.Method, startTime time.Time) *Report {
	return &Report{
		ProbeSummary: ProbeSummary{
			TargetURL:      target,
			Method:         string(method),
			ProbeStartTime: startTime.Format(time.RFC3339),
		},
	}
}

// Finalize completes the report once the probe has resolved.
func (r *Report) Finalize(endTime, startTime time.Time, verdict probe.Verdict, resp *probe.ProbeResponse, fp fingerprint.Fingerprint) {
	r.ProbeSummary.ProbeEndTime = endTime.Format(time.RFC3339)
	r.ProbeSummary.TotalDuration = endTime.Sub(startTime).Round(time.Millisecond).String()
	v := verdict
	r.Verdict = &v
	if resp != nil {
		r.ProbeSummary.StatusCode = resp.StatusCode
	}
	if len(fp) > 0 {
		r.Fingerprint = fp
	}
}

// FinalizeError completes the report for a probe that failed before a
// verdict could be produced.
func (r *Report) FinalizeError(endTime, startTime time.Time, err error) {
	r.ProbeSummary.ProbeEndTime = endTime.Format(time.RFC3339)
	r.ProbeSummary.TotalDuration = endTime.Sub(startTime).Round(time.Millisecond).String()
	r.Error = err.Error()
}
