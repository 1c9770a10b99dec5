package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputConfig holds configuration settings related to output and logging.
type OutputConfig struct {
	Format     string `yaml:"format"`      // Output format ("text" or "json").
	OutputFile string `yaml:"output_file"` // Path to save the JSON report.
	Verbose    bool   `yaml:"verbose"`     // Enable verbose logging.
}

// Config is the main struct holding all configuration from the YAML file.
// Command-line flags override any value set here.
type Config struct {
	Target         string            `yaml:"target"`          // GraphQL endpoint to probe.
	Method         string            `yaml:"method"`          // HTTP method (GET or POST); empty means POST.
	Headers        map[string]string `yaml:"headers"`         // Extra headers merged into the probe request.
	TimeoutSeconds int               `yaml:"timeout_seconds"` // Request timeout in seconds.
	Insecure       bool              `yaml:"insecure"`        // Skip TLS certificate verification.
	UserAgent      string            `yaml:"user_agent"`      // Custom User-Agent header.
	Discover       bool              `yaml:"discover"`        // Probe common paths when the target is not a GraphQL endpoint.

	Output OutputConfig `yaml:"output"`
}

// LoadConfig reads the configuration from a YAML file and returns a Config
// struct. A missing file yields the defaults without error.
func LoadConfig(filePath string) (*Config, error) {
	config := &Config{
		TimeoutSeconds: 10,
		Output: OutputConfig{
			Format:  "text",
			Verbose: false,
		},
	}

	yamlFile, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(yamlFile, &config); err != nil {
		return nil, err
	}

	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = 10
	}

	return config, nil
}

// ParseHeaderList parses repeated "Name: Value" strings, as given with -H,
// into a header map. Later entries override earlier ones of the same name.
func ParseHeaderList(entries []string) (map[string]string, error) {
	headers := make(map[string]string, len(entries))
	for _, entry := range entries {
		name, value, found := strings.Cut(entry, ":")
		if !found || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header format: %q, expected 'Name: Value'", entry)
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return headers, nil
}
