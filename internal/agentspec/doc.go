// Package agentspec parses and validates agent registration configs before
// they are sent to the platform. Input may be an inline JSON object or a
// JSON/YAML file; validation runs against an embedded JSON schema plus a
// semver check on the optional version field. A config that fails here is a
// request error — the platform is never contacted.
package agentspec
