package shinrai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// clientVersion is reported in the User-Agent header.
const clientVersion = "0.1.0"

// Config holds the settings needed to construct a Client.
type Config struct {
	// BaseURL is the root URL of the trust engine (e.g. "http://localhost:3000").
	BaseURL string

	// APIKey is an optional static credential. When set it is attached to
	// every request as the X-API-Key header.
	APIKey string

	// HTTPClient is an optional custom HTTP client. If nil, a default client
	// with a 30-second timeout is used.
	HTTPClient *http.Client

	// Timeout applies to individual API requests. Defaults to 30 seconds.
	// Ignored when HTTPClient is set.
	Timeout time.Duration

	// SessionID overrides the generated session correlation ID sent in the
	// X-Shinrai-Session header.
	SessionID *uuid.UUID
}

// Client is an HTTP client for the Phase 6 trust-evaluation API.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	session string
}

// NewClient creates a Client from the given configuration.
// Returns an error if BaseURL is empty.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("shinrai: BaseURL is required")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	session := uuid.NewString()
	if cfg.SessionID != nil {
		session = cfg.SessionID.String()
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
		session: session,
	}, nil
}

// Stats retrieves the aggregate dashboard snapshot for the trust engine.
func (c *Client) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/phase6/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// EvaluateRoleGate asks the trust engine whether an agent's claimed role and
// tier permit a requested action. No business rules are checked client-side;
// tier adequacy and role legality are entirely the server's call.
func (c *Client) EvaluateRoleGate(ctx context.Context, req RoleGateRequest) (*RoleGateResponse, error) {
	var resp RoleGateResponse
	if err := c.do(ctx, http.MethodPost, "/api/phase6/role-gates/evaluate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckCeiling asks the trust engine whether a requested resource amount fits
// within the agent's consumption ceiling. RequestedAmount is forwarded
// unvalidated, negative values included.
func (c *Client) CheckCeiling(ctx context.Context, req CeilingCheckRequest) (*CeilingCheckResponse, error) {
	var resp CeilingCheckResponse
	if err := c.do(ctx, http.MethodPost, "/api/phase6/ceiling/check", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateProvenance records a provenance entry for an agent.
func (c *Client) CreateProvenance(ctx context.Context, req ProvenanceCreateRequest) (*ProvenanceRecord, error) {
	var resp struct {
		Record ProvenanceRecord `json:"record"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/phase6/provenance", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Record, nil
}

// Provenance retrieves the provenance records for an agent.
func (c *Client) Provenance(ctx context.Context, agentID string) ([]ProvenanceRecord, error) {
	params := url.Values{}
	params.Set("agentId", agentID)

	var resp struct {
		Records []ProvenanceRecord `json:"records"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/phase6/provenance?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// AlertOptions are optional filters for the Alerts method.
type AlertOptions struct {
	Status  AlertStatus
	AgentID string
	Limit   int
}

// Alerts retrieves gaming alerts, optionally filtered by status and agent.
func (c *Client) Alerts(ctx context.Context, opts *AlertOptions) ([]Alert, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Status != "" {
			params.Set("status", string(opts.Status))
		}
		if opts.AgentID != "" {
			params.Set("agentId", opts.AgentID)
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
	}
	if params.Get("limit") == "" {
		params.Set("limit", "50")
	}

	var resp struct {
		Alerts []Alert `json:"alerts"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/phase6/alerts?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Alerts, nil
}

// UpdateAlertStatus transitions an alert to a new status.
func (c *Client) UpdateAlertStatus(ctx context.Context, alertID string, upd AlertStatusUpdate) (*Alert, error) {
	var resp struct {
		Alert Alert `json:"alert"`
	}
	path := "/api/phase6/alerts/" + url.PathEscape(alertID)
	if err := c.do(ctx, http.MethodPatch, path, upd, &resp); err != nil {
		return nil, err
	}
	return &resp.Alert, nil
}

// ---------------------------------------------------------------------------
// HTTP transport
// ---------------------------------------------------------------------------

// do dispatches a single request and decodes the response into dest (skipped
// when dest is nil). Every failure is exactly one of *TransportError,
// *APIError, or *DecodeError; nothing is retried internally. Callers wanting
// retry semantics should wrap the exported methods.
func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
	default:
		return &APIError{StatusCode: 0, Message: fmt.Sprintf("unsupported method %q", method)}
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: "encode request body", Err: err}
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return &TransportError{Op: "create request", Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "shinrai-go/"+clientVersion)
	req.Header.Set("X-Shinrai-Session", c.session)
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		// Best effort: an unreadable error body degrades to an empty message
		// rather than failing the error path itself.
		text, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			text = nil
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(text)}
	}

	if dest == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: "read response body", Err: err}
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
