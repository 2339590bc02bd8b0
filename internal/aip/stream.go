package aip

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RunStream invokes an agent and delivers the platform's server-sent events
// to fn in arrival order, with no reordering or deduplication. Consumption
// stops when fn returns false, the stream ends, or ctx is done.
func (c *HTTPClient) RunStream(ctx context.Context, req RunRequest, fn EventFunc) error {
	body := map[string]any{
		"objective": req.Objective,
		"user_id":   req.UserID,
	}
	if req.Agent != "" {
		body["agent"] = req.Agent
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, apiBase+"/runs/stream", nil, body)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept", "text/event-stream")

	// Streams run until the agent finishes; the per-request timeout of the
	// pooled client would cut them short.
	streamClient := &http.Client{Transport: c.httpClient.Transport}

	resp, err := streamClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("reaching platform: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return newAPIError(resp.StatusCode, data)
	}

	return readEventStream(ctx, resp, fn)
}

// readEventStream parses a text/event-stream body. Each event is an
// "event:" line naming the type, one or more "data:" lines carrying the
// JSON payload, and a blank line terminating the event.
func readEventStream(ctx context.Context, resp *http.Response, fn EventFunc) error {
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		eventType string
		dataLines []string
	)

	dispatch := func() bool {
		if len(dataLines) == 0 {
			return true
		}
		ev := RunEvent{
			EventType: eventType,
			Payload:   json.RawMessage(strings.Join(dataLines, "\n")),
		}
		if ev.EventType == "" {
			ev.EventType = "message"
		}
		eventType = ""
		dataLines = nil
		return fn(ev)
	}

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Text()
		switch {
		case line == "":
			if !dispatch() {
				return nil
			}
		case strings.HasPrefix(line, "event:"):
			eventType = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			dataLines = append(dataLines, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		case strings.HasPrefix(line, ":"):
			// Comment line, keep-alive. Ignore.
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading event stream: %w", err)
	}

	// Flush a final event not followed by a blank line.
	dispatch()
	return nil
}
