// Package client talks to a game server over its HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tatianab/pokemon-agent/internal/models"
	"github.com/tatianab/pokemon-agent/internal/protocol"
)

// DefaultTimeout applies when New is given no http.Client.
const DefaultTimeout = 10 * time.Second

// ErrRejected is returned when the server refuses an action.
var ErrRejected = errors.New("action rejected by game server")

// Client is a game server client. It can serve as the agent's source and sink.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:5000/api".
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) Status(ctx context.Context) (protocol.Status, error) {
	var st protocol.Status
	err := c.getJSON(ctx, "/status", &st)
	return st, err
}

func (c *Client) State(ctx context.Context) (models.GameState, error) {
	var s models.GameState
	err := c.getJSON(ctx, "/state", &s)
	return s, err
}

// Screenshot returns the current frame as PNG bytes.
func (c *Client) Screenshot(ctx context.Context) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, "/screenshot", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("get /screenshot: unexpected content type %q", ct)
	}
	return io.ReadAll(resp.Body)
}

// ExecuteAction asks the server to press action and reports the commentary.
func (c *Client) ExecuteAction(ctx context.Context, action models.Action, commentary string) error {
	body, err := json.Marshal(protocol.ExecuteRequest{Action: action.String(), Commentary: commentary})
	if err != nil {
		return err
	}
	resp, err := c.send(ctx, http.MethodPost, "/execute_action", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var res protocol.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return fmt.Errorf("post /execute_action: decode response: %w", err)
	}
	if !res.Success {
		return fmt.Errorf("%w: %s: %s", ErrRejected, action, res.Error)
	}
	return nil
}

// Execute implements the agent's sink.
func (c *Client) Execute(ctx context.Context, action models.Action, commentary string) error {
	return c.ExecuteAction(ctx, action, commentary)
}

// StartGame powers the console on.
func (c *Client) StartGame(ctx context.Context) error {
	var res protocol.Result
	if err := c.getJSON(ctx, "/start_game", &res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("start game: %s", res.Error)
	}
	return nil
}

// EnsureRunning starts the game unless the server reports it running.
func (c *Client) EnsureRunning(ctx context.Context) error {
	st, err := c.Status(ctx)
	if err != nil {
		return err
	}
	if st.Status == protocol.StatusRunning {
		return nil
	}
	return c.StartGame(ctx)
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("get %s: decode response: %w", path, err)
	}
	return nil
}

// do sends a request and fails on any non-2xx status.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s %s: %s: %s", strings.ToLower(method), path, resp.Status, strings.TrimSpace(string(msg)))
	}
	return resp, nil
}

// send issues the request without judging the status; /execute_action
// reports rejections in its body.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", strings.ToLower(method), path, err)
	}
	return resp, nil
}
