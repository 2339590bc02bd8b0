// Package aip is a narrow client for the Unibase AIP platform. It exposes the
// marketplace capability set (agent discovery, invocation, streaming, pricing,
// run history, registration, users, health) behind the Client interface so the
// command layer can substitute a test double. The HTTP implementation owns the
// retry policy for idempotent reads; mutating calls are never retried.
package aip
