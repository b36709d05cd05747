package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"gestorpro/internal/config"
	"gestorpro/internal/models"
)

// capturedRequest records what the fake script endpoint received
type capturedRequest struct {
	ContentType string
	Body        map[string]interface{}
}

// newTestGateway wires a gateway against a fake script endpoint answering
// every action with the given response body. An authenticated session for
// tenant "sheet-1" is stored up front.
func newTestGateway(t *testing.T, response string) (*Gateway, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.ContentType = r.Header.Get("Content-Type")
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &captured.Body))
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{
		AuthScriptURL:         server.URL,
		DataScriptURL:         server.URL,
		RequestTimeoutSeconds: 5,
	}
	store := models.NewSessionStore(t.TempDir())
	require.NoError(t, store.Save(&models.Session{IDSheet: "sheet-1"}))

	return NewGateway(cfg, store), captured
}

func TestDataCallWrapsEnvelopeAndTenant(t *testing.T) {
	gateway, captured := newTestGateway(t, `{"success":true,"data":[]}`)

	_, err := gateway.GetNotesByProjectID(context.Background(), "p1")
	require.NoError(t, err)

	require.Contains(t, captured.ContentType, "text/plain")
	require.Equal(t, "getNotesByProjectId", captured.Body["action"])

	payload, ok := captured.Body["payload"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "sheet-1", payload["id_sheet"])
	require.Equal(t, "p1", payload["data"])
}

func TestAuthCallSkipsTenantWrapper(t *testing.T) {
	gateway, captured := newTestGateway(t, `{"success":true,"data":{"userExists":true}}`)

	result, err := gateway.FindUser(context.Background(), "599-1234")
	require.NoError(t, err)
	require.True(t, result.UserExists)

	require.Equal(t, "findUser", captured.Body["action"])
	require.Equal(t, "599-1234", captured.Body["payload"])
}

func TestDataCallRequiresSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request may be sent without a session")
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{
		AuthScriptURL:         server.URL,
		DataScriptURL:         server.URL,
		RequestTimeoutSeconds: 5,
	}
	gateway := NewGateway(cfg, models.NewSessionStore(t.TempDir()))

	_, err := gateway.GetClients(context.Background())
	require.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestAppErrorOnScriptFailure(t *testing.T) {
	gateway, _ := newTestGateway(t, `{"success":false,"error":"Cliente no encontrado"}`)

	_, err := gateway.GetClients(context.Background())

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "getClients", appErr.Action)
	require.Equal(t, "Cliente no encontrado", appErr.Message)
}

func TestProtocolErrorOnEmptyBody(t *testing.T) {
	gateway, _ := newTestGateway(t, "")

	_, err := gateway.GetClients(context.Background())

	var protoErr *models.ProtocolError
	require.ErrorAs(t, err, &protoErr)
}

func TestProtocolErrorOnNonJSONBody(t *testing.T) {
	gateway, _ := newTestGateway(t, "<html>Google Apps Script error page</html>")

	_, err := gateway.GetClients(context.Background())

	var protoErr *models.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	require.Contains(t, protoErr.Body, "<html>")
}

func TestTransportErrorOnUnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	cfg := &config.Config{
		AuthScriptURL:         server.URL,
		DataScriptURL:         server.URL,
		RequestTimeoutSeconds: 1,
	}
	store := models.NewSessionStore(t.TempDir())
	require.NoError(t, store.Save(&models.Session{IDSheet: "sheet-1"}))
	gateway := NewGateway(cfg, store)

	_, err := gateway.GetClients(context.Background())

	var transportErr *models.TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, server.URL, transportErr.Endpoint)
}

func TestGetClientByPhoneNullMeansNotFound(t *testing.T) {
	gateway, _ := newTestGateway(t, `{"success":true,"data":null}`)

	client, err := gateway.GetClientByPhone(context.Background(), "555-0000")
	require.NoError(t, err)
	require.Nil(t, client)
}

func TestAddBotClearsServerOwnedFields(t *testing.T) {
	gateway, captured := newTestGateway(t, `{"success":true,"data":{"id":"b1","name":"Support","systemInstruction":"Be nice","id_builderBot":""}}`)

	bot := models.Bot{
		Name:              "Support",
		SystemInstruction: "Be nice",
		Status:            "ONLINE",
		OnlineSince:       "2024-01-01T00:00:00Z",
		CreatedAt:         "2024-01-01T00:00:00Z",
	}
	created, err := gateway.AddBot(context.Background(), bot)
	require.NoError(t, err)
	require.Equal(t, "b1", created.ID)

	payload := captured.Body["payload"].(map[string]interface{})
	data := payload["data"].(map[string]interface{})
	for _, key := range []string{"id", "status", "onlineSince", "createdAt"} {
		require.NotContains(t, data, key, "server-owned field %q must not be sent", key)
	}
}

func TestGetBotQRCodeRequiresBuilderBotID(t *testing.T) {
	gateway, _ := newTestGateway(t, `{"success":true}`)

	_, err := gateway.GetBotQRCode(context.Background(), "")
	require.ErrorIs(t, err, models.ErrNoBuilderBotID)

	_, err = gateway.GetBotFlows(context.Background(), "")
	require.ErrorIs(t, err, models.ErrNoBuilderBotID)
}

func TestVerifyTokenPayloadShape(t *testing.T) {
	gateway, captured := newTestGateway(t, `{"success":true,"data":{"authenticated":true,"id_sheet":"abc"}}`)

	result, err := gateway.VerifyToken(context.Background(), "599-1234", "482913")
	require.NoError(t, err)
	require.True(t, result.Authenticated)
	require.Equal(t, "abc", result.IDSheet)

	payload := captured.Body["payload"].(map[string]interface{})
	require.Equal(t, "599-1234", payload["identifier"])
	require.Equal(t, "482913", payload["token"])
}
