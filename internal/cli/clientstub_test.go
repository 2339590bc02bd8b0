package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/unibase-labs/aip-skill/internal/aip"
	"github.com/unibase-labs/aip-skill/internal/config"
)

// stubClient is a hand-rolled double for the platform client. Every method
// counts its invocation and delegates to the matching function field when
// one is set, so tests can verify both behavior and that the collaborator
// was (or was not) reached.
type stubClient struct {
	calls int

	listUserAgents  func(userID string, limit, offset int) (*aip.AgentPage, error)
	getAgent        func(userID, agentID string) (*aip.Agent, error)
	run             func(req aip.RunRequest) (*aip.RunResult, error)
	runStream       func(req aip.RunRequest, fn aip.EventFunc) error
	getAgentPrice   func(userID, agentID string) (*aip.PriceInfo, error)
	listAgentPrices func(limit, offset int) (*aip.PricePage, error)
	listUserRuns    func(userID string, limit, offset int) (*aip.RunPage, error)
	getRunEvents    func(runID string) ([]map[string]any, error)
	getRunPayments  func(runID string) ([]map[string]any, error)
	registerAgent   func(userID string, agentConfig map[string]any) (map[string]any, error)
	unregisterAgent func(userID, agentID string) (map[string]any, error)
	registerUser    func(walletAddress, email string) (map[string]any, error)
	listUsers       func(limit, offset int) (*aip.UserPage, error)
	healthCheck     func() (bool, error)
}

var _ aip.Client = (*stubClient)(nil)

func (s *stubClient) ListUserAgents(_ context.Context, userID string, limit, offset int) (*aip.AgentPage, error) {
	s.calls++
	if s.listUserAgents != nil {
		return s.listUserAgents(userID, limit, offset)
	}
	return &aip.AgentPage{Limit: limit, Offset: offset}, nil
}

func (s *stubClient) GetAgent(_ context.Context, userID, agentID string) (*aip.Agent, error) {
	s.calls++
	if s.getAgent != nil {
		return s.getAgent(userID, agentID)
	}
	return &aip.Agent{AgentID: agentID}, nil
}

func (s *stubClient) Run(_ context.Context, req aip.RunRequest) (*aip.RunResult, error) {
	s.calls++
	if s.run != nil {
		return s.run(req)
	}
	return &aip.RunResult{Success: true, Status: "completed"}, nil
}

func (s *stubClient) RunStream(_ context.Context, req aip.RunRequest, fn aip.EventFunc) error {
	s.calls++
	if s.runStream != nil {
		return s.runStream(req, fn)
	}
	return nil
}

func (s *stubClient) GetAgentPrice(_ context.Context, userID, agentID string) (*aip.PriceInfo, error) {
	s.calls++
	if s.getAgentPrice != nil {
		return s.getAgentPrice(userID, agentID)
	}
	return &aip.PriceInfo{Identifier: agentID}, nil
}

func (s *stubClient) ListAgentPrices(_ context.Context, limit, offset int) (*aip.PricePage, error) {
	s.calls++
	if s.listAgentPrices != nil {
		return s.listAgentPrices(limit, offset)
	}
	return &aip.PricePage{Limit: limit, Offset: offset}, nil
}

func (s *stubClient) ListUserRuns(_ context.Context, userID string, limit, offset int) (*aip.RunPage, error) {
	s.calls++
	if s.listUserRuns != nil {
		return s.listUserRuns(userID, limit, offset)
	}
	return &aip.RunPage{Limit: limit, Offset: offset}, nil
}

func (s *stubClient) GetRunEvents(_ context.Context, runID string) ([]map[string]any, error) {
	s.calls++
	if s.getRunEvents != nil {
		return s.getRunEvents(runID)
	}
	return nil, nil
}

func (s *stubClient) GetRunPayments(_ context.Context, runID string) ([]map[string]any, error) {
	s.calls++
	if s.getRunPayments != nil {
		return s.getRunPayments(runID)
	}
	return nil, nil
}

func (s *stubClient) RegisterAgent(_ context.Context, userID string, agentConfig map[string]any) (map[string]any, error) {
	s.calls++
	if s.registerAgent != nil {
		return s.registerAgent(userID, agentConfig)
	}
	return map[string]any{"status": "registered"}, nil
}

func (s *stubClient) UnregisterAgent(_ context.Context, userID, agentID string) (map[string]any, error) {
	s.calls++
	if s.unregisterAgent != nil {
		return s.unregisterAgent(userID, agentID)
	}
	return map[string]any{"status": "unregistered"}, nil
}

func (s *stubClient) RegisterUser(_ context.Context, walletAddress, email string) (map[string]any, error) {
	s.calls++
	if s.registerUser != nil {
		return s.registerUser(walletAddress, email)
	}
	return map[string]any{"status": "registered"}, nil
}

func (s *stubClient) ListUsers(_ context.Context, limit, offset int) (*aip.UserPage, error) {
	s.calls++
	if s.listUsers != nil {
		return s.listUsers(limit, offset)
	}
	return &aip.UserPage{Limit: limit, Offset: offset}, nil
}

func (s *stubClient) HealthCheck(_ context.Context) (bool, error) {
	s.calls++
	if s.healthCheck != nil {
		return s.healthCheck()
	}
	return true, nil
}

// runCommand executes one invocation against the given double, returning
// captured stdout, how many times a client was constructed, and the
// dispatch error (nil means exit code 0).
func runCommand(t *testing.T, client aip.Client, args ...string) (out string, constructed int, err error) {
	t.Helper()

	orig := newClient
	newClient = func(config.Config) aip.Client {
		constructed++
		return client
	}
	t.Cleanup(func() { newClient = orig })

	var buf bytes.Buffer
	err = Run(args, &buf)
	return buf.String(), constructed, err
}

// setWallet configures the wallet address every payment-bearing command needs.
func setWallet(t *testing.T) {
	t.Helper()
	t.Setenv("USER_WALLET_ADDRESS", "0xabc123")
}
