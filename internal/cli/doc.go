// Package cli defines the Cobra command tree for the aip-skill CLI. Each file
// in this package registers one group of marketplace operations with the root
// command. Every invocation writes exactly one JSON value to stdout — the
// command result on success, {"error": "..."} on any failure — so an
// orchestration host can consume the output without parsing anything else.
// Diagnostics go to stderr.
package cli
