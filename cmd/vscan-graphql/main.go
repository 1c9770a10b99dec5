package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/config"
	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/discovery"
	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/fingerprint"
	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/httpclient"
	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/logger"
	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/probe"
	"github.com/ShadowGuardAI/vscan-graphql-introspection-checker/internal/reporter"
)

// Exit codes: the verdict is the program's primary output, so "finding
// present" is distinguishable from "could not test" in scripts.
const (
	exitDisabled    = 0 // introspection disabled or not confirmed
	exitEnabled     = 1 // introspection enabled (finding present)
	exitConfigError = 2 // invalid configuration, no probe attempted
	exitProbeError  = 3 // transport failure, target could not be tested
)

// headerList collects repeated -H flags.
type headerList []string

func (h *headerList) String() string {
	return strings.Join(*h, ", ")
}

func (h *headerList) Set(value string) error {
	*h = append(*h, value)
	return nil
}

// main is the entry point of the vscan-graphql application.
func main() {
	log := logger.NewLogger(logger.INFO)

	// Load configuration from vscan.yaml; flags defined below override it.
	cfg, err := config.LoadConfig("vscan.yaml")
	if err != nil {
		log.Error("Failed to load vscan.yaml: %v", err)
		os.Exit(exitConfigError)
	}

	var targetURLStr, methodStr, userAgent, jsonOutputFile string
	var timeoutSeconds int
	var forcePost, insecure, discover, verbose, trace bool
	var headers headerList

	flag.StringVar(&targetURLStr, "u", cfg.Target, "Target GraphQL endpoint URL")
	flag.Var(&headers, "H", "Extra request header as 'Name: Value' (repeatable)")
	flag.BoolVar(&forcePost, "p", false, "Force POST and disable the GET fallback")
	flag.StringVar(&methodStr, "m", cfg.Method, "HTTP method to use (GET or POST)")
	flag.IntVar(&timeoutSeconds, "timeout", cfg.TimeoutSeconds, "Request timeout in seconds")
	flag.BoolVar(&insecure, "insecure", cfg.Insecure, "Skip TLS certificate verification")
	flag.StringVar(&userAgent, "ua", cfg.UserAgent, "Custom User-Agent header")
	flag.BoolVar(&discover, "discover", cfg.Discover, "Probe common GraphQL paths under the target origin first")
	flag.StringVar(&jsonOutputFile, "output-json", cfg.Output.OutputFile, "Path to save the report in JSON format")
	flag.BoolVar(&verbose, "v", cfg.Output.Verbose, "Enable verbose output (DEBUG level)")
	flag.BoolVar(&trace, "vv", false, "Enable trace-level output (highly verbose)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "vscan-graphql checks whether GraphQL introspection is enabled on a target endpoint.\nAn enabled introspection capability lets anyone enumerate the full API schema.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <url>\n\n", os.Args[0])

		fmt.Fprintf(os.Stderr, "TARGET:\n")
		fmt.Fprintf(os.Stderr, "  <url> or -u string\n    \tTarget GraphQL endpoint (e.g., \"https://example.com/graphql\")\n")

		fmt.Fprintf(os.Stderr, "\nREQUEST SHAPE:\n")
		fmt.Fprintf(os.Stderr, "  -H string\n    \tExtra header as 'Name: Value'. Repeatable (e.g., -H 'Authorization: Bearer <token>')\n")
		fmt.Fprintf(os.Stderr, "  -m string\n    \tHTTP method, GET or POST (default: POST)\n")
		fmt.Fprintf(os.Stderr, "  -p\tForce POST and disable the HTML-triggered GET fallback\n")
		fmt.Fprintf(os.Stderr, "  -ua string\n    \tCustom User-Agent header\n")

		fmt.Fprintf(os.Stderr, "\nTRANSPORT:\n")
		fmt.Fprintf(os.Stderr, "  -timeout int\n    \tRequest timeout in seconds (default: %d)\n", cfg.TimeoutSeconds)
		fmt.Fprintf(os.Stderr, "  -insecure\n    \tSkip TLS certificate verification\n")

		fmt.Fprintf(os.Stderr, "\nDISCOVERY & OUTPUT:\n")
		fmt.Fprintf(os.Stderr, "  -discover\n    \tProbe common GraphQL paths under the target origin first\n")
		fmt.Fprintf(os.Stderr, "  -output-json string\n    \tPath to save the report file in JSON format\n")
		fmt.Fprintf(os.Stderr, "  -v\tVerbose output (DEBUG level)\n")
		fmt.Fprintf(os.Stderr, "  -vv\tTrace-level output\n")

		fmt.Fprintf(os.Stderr, "\nEXIT CODES:\n")
		fmt.Fprintf(os.Stderr, "  0 introspection disabled or not confirmed\n")
		fmt.Fprintf(os.Stderr, "  1 introspection enabled\n")
		fmt.Fprintf(os.Stderr, "  2 configuration error\n")
		fmt.Fprintf(os.Stderr, "  3 probe failed, target could not be tested\n")
	}

	flag.Parse()

	if verbose {
		log.SetMinLevel(logger.DEBUG)
	}
	if trace {
		log.SetMinLevel(logger.TRACE)
	}

	// The target may also be given as a positional argument.
	if targetURLStr == "" && flag.NArg() > 0 {
		targetURLStr = flag.Arg(0)
	}
	if targetURLStr == "" {
		log.Error("Target URL is required.")
		flag.Usage()
		os.Exit(exitConfigError)
	}

	// A bare host is assumed to be HTTPS.
	if !strings.HasPrefix(targetURLStr, "http://") && !strings.HasPrefix(targetURLStr, "https://") {
		log.Warn("URL does not start with http:// or https://. Assuming https://")
		targetURLStr = "https://" + targetURLStr
	}

	// The method is "forced" when given explicitly; the HTML-triggered GET
	// fallback only applies to the implicit POST default.
	methodForced := forcePost
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "m" {
			methodForced = true
		}
	})
	if cfg.Method != "" {
		methodForced = true
	}

	method := probe.DefaultMethod
	if forcePost {
		method = probe.MethodPost
	} else if methodStr != "" {
		method = probe.Method(strings.ToUpper(methodStr))
	}

	// Merge config-file headers with -H flags; flags win.
	headerMap := make(map[string]string, len(cfg.Headers)+len(headers))
	for name, value := range cfg.Headers {
		headerMap[name] = value
	}
	flagHeaders, err := config.ParseHeaderList(headers)
	if err != nil {
		log.Error("%v", err)
		os.Exit(exitConfigError)
	}
	for name, value := range flagHeaders {
		headerMap[name] = value
	}

	client := httpclient.NewClient(log, httpclient.ClientOptions{
		Timeout:            time.Duration(timeoutSeconds) * time.Second,
		FollowRedirects:    true,
		InsecureSkipVerify: insecure,
		UserAgent:          userAgent,
	})

	ctx := context.Background()

	if discover {
		finder := discovery.NewFinder(client, log)
		if found := finder.FindEndpoint(ctx, targetURLStr); found != "" {
			targetURLStr = found
		}
	}

	probeRequest, err := probe.NewProbeRequest(targetURLStr, method, headerMap)
	if err != nil {
		log.Error("%v", err)
		os.Exit(exitConfigError)
	}

	log.Info("Checking GraphQL introspection at: %s", probeRequest.URL())

	startTime := time.Now()
	report := reporter.NewReport(probeRequest.URL(), probeRequest.Method(), startTime)
	prober := probe.NewProber(client, log)

	var verdict probe.Verdict
	var resp *probe.ProbeResponse
	if methodForced {
		verdict, resp, err = prober.Probe(ctx, probeRequest)
	} else {
		verdict, resp, err = prober.ProbeWithFallback(ctx, probeRequest)
	}
	endTime := time.Now()

	if err != nil {
		log.Error("Probe failed: %v", err)
		report.FinalizeError(endTime, startTime, err)
		writeReport(log, report, jsonOutputFile)
		os.Exit(exitProbeError)
	}

	fp := fingerprint.NewFingerprinter(log).Analyze(resp)
	for clue, value := range fp {
		log.Debug("Fingerprint: %s = %s", clue, value)
	}

	report.Finalize(endTime, startTime, verdict, resp, fp)
	writeReport(log, report, jsonOutputFile)

	if verdict.IntrospectionEnabled {
		log.Success("GraphQL introspection is ENABLED (%s)", verdict.Evidence)
		fmt.Println("GraphQL introspection is ENABLED.")
		os.Exit(exitEnabled)
	}

	log.Info("GraphQL introspection is not enabled: %s", verdict.Evidence)
	fmt.Println("GraphQL introspection is DISABLED or restricted.")
	os.Exit(exitDisabled)
}

// writeReport saves the JSON report when an output path is configured.
func writeReport(log *logger.Logger, report *reporter.Report, outputPath string) {
	if outputPath == "" {
		return
	}
	if err := reporter.WriteJSONReport(report, outputPath); err != nil {
		log.Error("Failed to write JSON report to %s: %v", outputPath, err)
		return
	}
	log.Info("Report saved to %s", outputPath)
}
