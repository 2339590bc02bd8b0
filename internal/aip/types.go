package aip

import (
	"encoding/json"
	"time"
)

// DefaultRunTimeout bounds a synchronous agent invocation.
const DefaultRunTimeout = 60 * time.Second

// Agent describes a marketplace agent as returned by the platform.
type Agent struct {
	AgentID         string         `json:"agent_id"`
	Handle          string         `json:"handle"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Price           float64        `json:"price"`
	Capabilities    []string       `json:"capabilities"`
	Skills          []string       `json:"skills,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	EndpointURL     string         `json:"endpoint_url,omitempty"`
	OnChain         bool           `json:"on_chain"`
	IdentityAddress string         `json:"identity_address"`
}

// PriceInfo is the platform's pricing record for one agent.
type PriceInfo struct {
	Identifier string         `json:"identifier"`
	Amount     float64        `json:"amount"`
	Currency   string         `json:"currency"`
	Metadata   map[string]any `json:"metadata"`
}

// User is a registered platform user.
type User struct {
	UserID        string `json:"user_id"`
	WalletAddress string `json:"wallet_address"`
	Email         string `json:"email,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// RunRequest describes one agent invocation. An empty Agent lets the
// platform select the agent itself (auto-routing).
type RunRequest struct {
	Objective string        `json:"objective"`
	Agent     string        `json:"agent,omitempty"`
	UserID    string        `json:"user_id"`
	Timeout   time.Duration `json:"-"`
}

// RunResult is the terminal outcome of a synchronous invocation.
type RunResult struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Output  string `json:"output"`
}

// RunEvent is one element of an invocation's event stream. Payload is kept
// raw so the bytes the platform sent are re-emitted unchanged.
type RunEvent struct {
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
}

// Terminal event types on the invocation stream.
const (
	EventRunCompleted = "run_completed"
	EventRunError     = "run_error"
)

// Terminal reports whether the event ends its stream.
func (e RunEvent) Terminal() bool {
	return e.EventType == EventRunCompleted || e.EventType == EventRunError
}

// AgentPage is a paginated agent listing.
type AgentPage struct {
	Items  []Agent `json:"items"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// PricePage is a paginated pricing listing.
type PricePage struct {
	Items  []PriceInfo `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// RunPage is a paginated run-history listing. Run records are platform-defined
// and passed through untyped.
type RunPage struct {
	Items  []map[string]any `json:"items"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// UserPage is a paginated user listing.
type UserPage struct {
	Items  []User `json:"items"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}
