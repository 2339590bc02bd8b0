// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package before building; Go's
// //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	EnvPrefix       string `yaml:"env_prefix"`
	UserAgent       string `yaml:"user_agent"`
	DefaultEndpoint string `yaml:"default_endpoint"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:         "aip-skill",
			DisplayName:     "AIP Skill",
			Description:     "Unibase AIP marketplace operations as single-shot JSON commands",
			EnvPrefix:       "AIP",
			UserAgent:       "aip-skill-cli",
			DefaultEndpoint: "http://api.aip.unibase.com",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "aip-skill").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "AIP Skill").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// EnvPrefix returns the environment variable prefix (e.g., "AIP").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// UserAgent returns the User-Agent value sent on platform requests.
func UserAgent() string { load(); return defaults.UserAgent }

// DefaultEndpoint returns the platform base URL used when AIP_ENDPOINT is unset.
func DefaultEndpoint() string { load(); return defaults.DefaultEndpoint }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("ENDPOINT") → "AIP_ENDPOINT".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
