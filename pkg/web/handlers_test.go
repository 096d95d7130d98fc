package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/draftflow/draftflow/pkg/conversation"
	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	engine := conversation.NewEngine(slog.Default())
	handlers := web.NewAPIHandlers(engine, validator.New(validator.WithRequiredStructEnabled()))

	app := fiber.New()
	handlers.Register(app)

	return app
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		SessionID string `json:"session_id"`
		Step      string `json:"step"`
	}

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotEmpty(t, created.SessionID)
	assert.Equal(t, string(models.StepTrigger), created.Step)

	return created.SessionID
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()

	var body []byte

	if str, ok := payload.(string); ok {
		body = []byte(str)
	} else {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestAPIHandlers_PostMessage(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	sessionID := createSession(t, app)

	resp := postJSON(t, app, "/sessions/"+sessionID+"/messages", web.PostMessageRequest{
		Text: "When I get a new GitHub issue, send a Slack message",
	})

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Messages []*models.ConversationMessage `json:"messages"`
		Step     string                        `json:"step"`
	}

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &result))

	assert.Equal(t, string(models.StepActions), result.Step)
	require.NotEmpty(t, result.Messages)
	assert.Equal(t, models.RoleUser, result.Messages[0].Role)
}

func TestAPIHandlers_PostMessage_Validation(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	sessionID := createSession(t, app)

	tests := []struct {
		name           string
		payload        any
		expectedStatus int
	}{
		{
			name:           "empty text",
			payload:        web.PostMessageRequest{Text: ""},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			payload:        "invalid-json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/sessions/"+sessionID+"/messages", tt.payload)

			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAPIHandlers_ConcurrentMessages(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	sessionID := createSession(t, app)

	const turns = 8

	statuses := make(chan int, turns)

	var wg sync.WaitGroup

	for range turns {
		wg.Add(1)

		go func() {
			defer wg.Done()

			payload, _ := json.Marshal(web.PostMessageRequest{
				Text: "then send a slack message",
			})

			req := httptest.NewRequest(http.MethodPost, "/sessions/"+sessionID+"/messages", bytes.NewBuffer(payload))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				statuses <- 0

				return
			}

			_ = resp.Body.Close()
			statuses <- resp.StatusCode
		}()
	}

	wg.Wait()
	close(statuses)

	for status := range statuses {
		assert.Equal(t, http.StatusOK, status)
	}

	req := httptest.NewRequest(http.MethodGet, "/sessions/"+sessionID+"/messages", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	var log struct {
		Messages []*models.ConversationMessage `json:"messages"`
	}

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &log))

	// Every turn was serialized and fully recorded: one user message each.
	var userMessages int

	for _, message := range log.Messages {
		if message.Role == models.RoleUser {
			userMessages++
		}
	}

	assert.Equal(t, turns, userMessages)
}

func TestAPIHandlers_UnknownSession(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	for _, path := range []string{
		"/sessions/unknown/messages",
		"/sessions/unknown/draft",
		"/sessions/unknown/step",
		"/sessions/unknown/validation",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		_ = resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestAPIHandlers_ReadSurface(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	sessionID := createSession(t, app)

	resp := postJSON(t, app, "/sessions/"+sessionID+"/messages", web.PostMessageRequest{
		Text: "When I get a new email in Gmail, add a row to Google Sheets",
	})
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/sessions/"+sessionID+"/draft", nil)
	draftResp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = draftResp.Body.Close() }()

	require.Equal(t, http.StatusOK, draftResp.StatusCode)

	var draft models.WorkflowDraft

	body, err := io.ReadAll(draftResp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &draft))

	require.NotNil(t, draft.Trigger)
	assert.Equal(t, "gmail", draft.Trigger.Integration)
	require.Len(t, draft.Actions, 1)
	assert.Equal(t, 0, draft.Actions[0].Order)

	req = httptest.NewRequest(http.MethodGet, "/sessions/"+sessionID+"/validation", nil)
	valResp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = valResp.Body.Close() }()

	require.Equal(t, http.StatusOK, valResp.StatusCode)

	var validation struct {
		Errors   []models.ValidationError `json:"errors"`
		Saveable bool                     `json:"saveable"`
	}

	body, err = io.ReadAll(valResp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &validation))
	assert.True(t, validation.Saveable)
}

func TestAPIHandlers_Reset(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	sessionID := createSession(t, app)

	resp := postJSON(t, app, "/sessions/"+sessionID+"/messages", web.PostMessageRequest{
		Text: "Every day at 9am, send me a Slack message",
	})
	_ = resp.Body.Close()

	resp = postJSON(t, app, "/sessions/"+sessionID+"/reset", nil)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Step string `json:"step"`
	}

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, string(models.StepTrigger), result.Step)
}
