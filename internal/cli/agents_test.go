package cli

import (
	"strings"
	"testing"

	"github.com/unibase-labs/aip-skill/internal/aip"
)

func TestListAgentsDefaults(t *testing.T) {
	setWallet(t)

	var gotUserID string
	var gotLimit, gotOffset int
	stub := &stubClient{
		listUserAgents: func(userID string, limit, offset int) (*aip.AgentPage, error) {
			gotUserID, gotLimit, gotOffset = userID, limit, offset
			return &aip.AgentPage{Total: 0, Limit: limit, Offset: offset}, nil
		},
	}

	out, _, err := runCommand(t, stub, "list_agents")
	if err != nil {
		t.Fatalf("list_agents failed: %v", err)
	}

	if gotUserID != "user:0xabc123" {
		t.Errorf("user id = %q, want %q", gotUserID, "user:0xabc123")
	}
	if gotLimit != 100 || gotOffset != 0 {
		t.Errorf("pagination = (%d, %d), want defaults (100, 0)", gotLimit, gotOffset)
	}
	want := `{"agents":[],"total":0,"limit":100,"offset":0}` + "\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestListAgentsDiscoveryUnavailable(t *testing.T) {
	setWallet(t)

	for _, status := range []int{404, 502} {
		stub := &stubClient{
			listUserAgents: func(string, int, int) (*aip.AgentPage, error) {
				return nil, &aip.APIError{Status: status, Message: "bad gateway"}
			},
		}
		out, _, err := runCommand(t, stub, "list_agents")
		if err != nil {
			t.Fatalf("status %d: list_agents failed: %v", status, err)
		}
		if !strings.Contains(out, `"agents":[]`) || !strings.Contains(out, `"note":`) {
			t.Errorf("status %d: output = %q, want an empty page with a note", status, out)
		}
	}
}

func TestListAgentsOtherPlatformErrorSurfaces(t *testing.T) {
	setWallet(t)
	stub := &stubClient{
		listUserAgents: func(string, int, int) (*aip.AgentPage, error) {
			return nil, &aip.APIError{Status: 401, Message: "unauthorized"}
		},
	}
	out, _, err := runCommand(t, stub, "list_agents")
	if err == nil {
		t.Fatal("expected a 401 to surface as a dispatch error")
	}
	if out != `{"error":"unauthorized"}`+"\n" {
		t.Errorf("output = %q, want the normalized platform error", out)
	}
}

func TestGetAgentInfoIdempotent(t *testing.T) {
	setWallet(t)
	agent := &aip.Agent{
		AgentID:         "agent-7",
		Handle:          "weather_public",
		Name:            "Weather",
		Description:     "Forecasts",
		Price:           0.25,
		Capabilities:    []string{"weather"},
		OnChain:         true,
		IdentityAddress: "0xidentity",
	}
	stub := &stubClient{
		getAgent: func(userID, agentID string) (*aip.Agent, error) {
			return agent, nil
		},
	}

	first, _, err := runCommand(t, stub, "get_agent_info", "agent-7")
	if err != nil {
		t.Fatalf("first invocation failed: %v", err)
	}
	second, _, err := runCommand(t, stub, "get_agent_info", "agent-7")
	if err != nil {
		t.Fatalf("second invocation failed: %v", err)
	}
	if first != second {
		t.Errorf("outputs differ between identical invocations:\n%q\n%q", first, second)
	}
}

func TestGetAgentInfoNotFound(t *testing.T) {
	setWallet(t)
	stub := &stubClient{
		getAgent: func(string, string) (*aip.Agent, error) {
			return nil, &aip.APIError{Status: 404, Message: "no such agent"}
		},
	}

	out, _, err := runCommand(t, stub, "get_agent_info", "ghost")
	if err == nil {
		t.Fatal("expected an error for a missing agent")
	}
	want := `{"error":"agent not found: ghost"}` + "\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}
