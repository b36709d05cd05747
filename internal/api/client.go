package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"gestorpro/internal/config"
	"gestorpro/internal/models"
)

// Gateway handles communication with the two backend script endpoints. Every
// operation goes through the same request/response envelope.
type Gateway struct {
	// Auth script URL (findUser, verifyToken, registerUser)
	AuthURL string

	// Data script URL (all entity actions)
	DataURL string

	// HTTP client with a timeout
	client *http.Client

	// Session store for the tenant identifier
	sessions *models.SessionStore

	// Session cached for the process lifetime
	session *models.Session
	loaded  bool
}

// NewGateway creates a new gateway for the configured endpoints
func NewGateway(cfg *config.Config, sessions *models.SessionStore) *Gateway {
	return &Gateway{
		AuthURL:  cfg.AuthScriptURL,
		DataURL:  cfg.DataScriptURL,
		sessions: sessions,
		client: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
	}
}

// Session returns the current session, loading it from the store on first
// use. Returns models.ErrUnauthenticated when none is stored.
func (g *Gateway) Session() (*models.Session, error) {
	if !g.loaded {
		session, err := g.sessions.Load()
		if err != nil {
			return nil, fmt.Errorf("error loading session: %w", err)
		}
		g.session = session
		g.loaded = true
	}

	if g.session == nil {
		return nil, models.ErrUnauthenticated
	}
	return g.session, nil
}

// SetSession persists a freshly authenticated session
func (g *Gateway) SetSession(session *models.Session) error {
	if err := g.sessions.Save(session); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}
	g.session = session
	g.loaded = true
	return nil
}

// ClearSession removes the stored session (logout)
func (g *Gateway) ClearSession() error {
	g.session = nil
	g.loaded = true
	return g.sessions.Clear()
}

// envelope is the request shape both script endpoints expect
type envelope struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload,omitempty"`
}

// tenantPayload wraps a data-endpoint payload with the tenant identifier
type tenantPayload struct {
	IDSheet string      `json:"id_sheet"`
	Data    interface{} `json:"data,omitempty"`
}

// scriptResponse is the response shape both script endpoints return
type scriptResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// callAuth invokes an action on the auth script endpoint
func (g *Gateway) callAuth(ctx context.Context, action string, payload interface{}) (json.RawMessage, error) {
	return g.invoke(ctx, g.AuthURL, action, payload)
}

// callData invokes an action on the data script endpoint, wrapping the
// payload with the session's tenant identifier
func (g *Gateway) callData(ctx context.Context, action string, payload interface{}) (json.RawMessage, error) {
	session, err := g.Session()
	if err != nil {
		return nil, err
	}

	return g.invoke(ctx, g.DataURL, action, tenantPayload{
		IDSheet: session.IDSheet,
		Data:    payload,
	})
}

// invoke posts one action envelope and unwraps the response envelope. The
// request body is a single opaque JSON string rather than a structured form;
// the script host only accepts simple bodies and this also skips the CORS
// preflight round trip the original web client had to avoid.
func (g *Gateway) invoke(ctx context.Context, endpoint, action string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(envelope{Action: action, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("error marshalling request for %q: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request for %q: %w", action, err)
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &models.TransportError{Endpoint: endpoint, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			fmt.Printf("Warning: Failed to close response body: %v\n", err)
		}
	}()

	// The script host answers 200 even for application errors; the envelope
	// carries the real outcome
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.TransportError{Endpoint: endpoint, Err: err}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &models.ProtocolError{Endpoint: endpoint}
	}

	var response scriptResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, &models.ProtocolError{Endpoint: endpoint, Body: string(raw), Err: err}
	}

	if !response.Success {
		return nil, &models.AppError{Action: action, Message: response.Error}
	}

	return response.Data, nil
}

// decode unmarshals an action's data payload into the expected type
func decode[T any](action string, raw json.RawMessage) (T, error) {
	var out T
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("error decoding %q response: %w", action, err)
	}
	return out, nil
}
