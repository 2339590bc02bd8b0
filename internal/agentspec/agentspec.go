package agentspec

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/agent.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("agent.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("agent.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ParseJSON decodes an inline argument into an agent config object.
// Non-JSON input, JSON values that are not objects, and content trailing
// the object are all rejected.
func ParseJSON(input string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %v", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("invalid JSON: unexpected content after the object")
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("agent config must be a JSON object, got %s", jsonTypeName(raw))
	}
	return obj, nil
}

// ParseFile reads an agent config from a .json, .yaml, or .yml file.
func ParseFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading agent config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing YAML in %s: %v", path, err)
		}
		obj, ok := normalizeYAML(raw).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("agent config in %s must be a mapping", path)
		}
		return obj, nil
	default:
		return ParseJSON(string(data))
	}
}

// Validate checks an agent config against the embedded schema and verifies
// that the version field, when present, parses as semver. The returned error
// describes every violation found.
func Validate(cfg map[string]any) error {
	schema, err := getSchema()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	// Round-trip through JSON so the instance carries json.Number values,
	// which the validator handles consistently.
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("converting config to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("preparing config for validation: %w", err)
	}

	var issues []string
	if err := schema.Validate(inst); err != nil {
		validationErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return fmt.Errorf("validating agent config: %w", err)
		}
		issues = collectIssues(validationErr)
	}

	if v, ok := cfg["version"].(string); ok {
		if _, err := semver.NewVersion(strings.TrimPrefix(v, "v")); err != nil {
			issues = append(issues, fmt.Sprintf("/version: %q is not a semantic version", v))
		}
	}

	if len(issues) > 0 {
		return fmt.Errorf("invalid agent config: %s", strings.Join(issues, "; "))
	}
	return nil
}

// collectIssues walks the validation error tree and renders leaf errors as
// "/path: message" strings, deduplicated.
func collectIssues(ve *jsonschema.ValidationError) []string {
	var issues []string
	seen := make(map[string]bool)

	var walk func(*jsonschema.ValidationError)
	walk = func(ve *jsonschema.ValidationError) {
		if len(ve.Causes) == 0 {
			path := "/" + strings.Join(ve.InstanceLocation, "/")
			msg := ""
			if ve.ErrorKind != nil {
				msg = ve.ErrorKind.LocalizedString(printer)
			}
			if msg == "" {
				msg = ve.Error()
			}
			issue := path + ": " + msg
			if !seen[issue] {
				seen[issue] = true
				issues = append(issues, issue)
			}
			return
		}
		for _, cause := range ve.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return issues
}

// normalizeYAML recursively converts YAML-decoded values to JSON-compatible
// types (string-keyed maps).
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = normalizeYAML(item)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprintf("%v", k)] = normalizeYAML(item)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, item := range val {
			a[i] = normalizeYAML(item)
		}
		return a
	default:
		return val
	}
}

// jsonTypeName names a decoded JSON value's type for error messages.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case json.Number:
		return "a number"
	case string:
		return "a string"
	case []any:
		return "an array"
	default:
		return "an unexpected value"
	}
}
