package aip

import "context"

// EventFunc receives invocation events in arrival order. Returning false
// stops consumption; remaining events are discarded.
type EventFunc func(RunEvent) bool

// Client is the capability set the command layer depends on. It mirrors the
// platform's marketplace operations one-to-one so implementations stay a thin
// transport concern and tests can substitute a double.
type Client interface {
	// ListUserAgents lists agents registered by the given user.
	ListUserAgents(ctx context.Context, userID string, limit, offset int) (*AgentPage, error)
	// GetAgent returns one agent's detail record, or an APIError with
	// status 404 if the agent does not exist.
	GetAgent(ctx context.Context, userID, agentID string) (*Agent, error)

	// Run invokes an agent synchronously. Payment settlement and memory
	// persistence happen platform-side as part of the call.
	Run(ctx context.Context, req RunRequest) (*RunResult, error)
	// RunStream invokes an agent and delivers its event stream to fn.
	RunStream(ctx context.Context, req RunRequest, fn EventFunc) error

	// GetAgentPrice returns pricing for one agent.
	GetAgentPrice(ctx context.Context, userID, agentID string) (*PriceInfo, error)
	// ListAgentPrices lists pricing across all agents.
	ListAgentPrices(ctx context.Context, limit, offset int) (*PricePage, error)

	// ListUserRuns lists the user's invocation history.
	ListUserRuns(ctx context.Context, userID string, limit, offset int) (*RunPage, error)
	// GetRunEvents returns the recorded events of one run.
	GetRunEvents(ctx context.Context, runID string) ([]map[string]any, error)
	// GetRunPayments returns the payments settled for one run.
	GetRunPayments(ctx context.Context, runID string) ([]map[string]any, error)

	// RegisterAgent registers a new agent under the given user and returns
	// the platform's confirmation object.
	RegisterAgent(ctx context.Context, userID string, agentConfig map[string]any) (map[string]any, error)
	// UnregisterAgent removes an agent and returns the confirmation object.
	UnregisterAgent(ctx context.Context, userID, agentID string) (map[string]any, error)

	// RegisterUser registers a wallet address as a platform user.
	RegisterUser(ctx context.Context, walletAddress, email string) (map[string]any, error)
	// ListUsers lists registered users.
	ListUsers(ctx context.Context, limit, offset int) (*UserPage, error)

	// HealthCheck probes the platform. A false return or an error both mean
	// the platform is not serving traffic.
	HealthCheck(ctx context.Context) (bool, error)
}
