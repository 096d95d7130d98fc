// Package web exposes the conversational authoring engine over HTTP. The
// rendering layer reads the message log, draft snapshot, step pointer, and
// validation errors as pure data; the only write paths are user input,
// missing-info answers, and reset.
package web

import (
	"sync"

	"github.com/draftflow/draftflow/pkg/conversation"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// sessionEntry pairs a session with the mutex that serializes handler access
// to it. Sessions are not safe for concurrent use; every handler that touches
// one holds the entry lock for the duration of the request.
type sessionEntry struct {
	mu   sync.Mutex
	sess *conversation.Session
}

type APIHandlers struct {
	engine    *conversation.Engine
	validator *validator.Validate

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func NewAPIHandlers(engine *conversation.Engine, validator *validator.Validate) *APIHandlers {
	return &APIHandlers{
		engine:    engine,
		validator: validator,
		sessions:  make(map[string]*sessionEntry),
	}
}

// Register mounts all routes on the app.
func (h *APIHandlers) Register(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Post("/sessions", h.CreateSession)
	app.Get("/sessions/:id/messages", h.GetMessages)
	app.Post("/sessions/:id/messages", h.PostMessage)
	app.Get("/sessions/:id/draft", h.GetDraft)
	app.Get("/sessions/:id/step", h.GetStep)
	app.Get("/sessions/:id/validation", h.GetValidation)
	app.Post("/sessions/:id/answers", h.PostAnswer)
	app.Post("/sessions/:id/reset", h.Reset)
}

func (h *APIHandlers) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *APIHandlers) CreateSession(c fiber.Ctx) error {
	sess := conversation.NewSession("")

	h.mu.Lock()
	h.sessions[sess.ID] = &sessionEntry{sess: sess}
	h.mu.Unlock()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id": sess.ID,
		"step":       sess.Step,
	})
}

func (h *APIHandlers) GetMessages(c fiber.Ctx) error {
	entry, ok := h.session(c.Params("id"))
	if !ok {
		return notFound(c, "session not found")
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	sess := entry.sess

	return c.JSON(fiber.Map{"messages": sess.MessageLog()})
}

// PostMessageRequest is one inbound user turn.
type PostMessageRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

func (h *APIHandlers) PostMessage(c fiber.Ctx) error {
	entry, ok := h.session(c.Params("id"))
	if !ok {
		return notFound(c, "session not found")
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	sess := entry.sess

	var req PostMessageRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, err.Error())
	}

	appended := h.engine.ProcessUserInput(c.Context(), sess, req.Text)

	return c.JSON(fiber.Map{
		"messages": appended,
		"step":     sess.Step,
	})
}

func (h *APIHandlers) GetDraft(c fiber.Ctx) error {
	entry, ok := h.session(c.Params("id"))
	if !ok {
		return notFound(c, "session not found")
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	sess := entry.sess

	return c.JSON(sess.Draft)
}

func (h *APIHandlers) GetStep(c fiber.Ctx) error {
	entry, ok := h.session(c.Params("id"))
	if !ok {
		return notFound(c, "session not found")
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	sess := entry.sess

	return c.JSON(fiber.Map{"step": sess.Step})
}

func (h *APIHandlers) GetValidation(c fiber.Ctx) error {
	entry, ok := h.session(c.Params("id"))
	if !ok {
		return notFound(c, "session not found")
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	sess := entry.sess

	return c.JSON(fiber.Map{
		"errors":   sess.Validation(),
		"saveable": sess.Draft.Saveable(),
	})
}

// PostAnswerRequest answers one missing-info question.
type PostAnswerRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value" validate:"required"`
}

func (h *APIHandlers) PostAnswer(c fiber.Ctx) error {
	entry, ok := h.session(c.Params("id"))
	if !ok {
		return notFound(c, "session not found")
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	sess := entry.sess

	var req PostAnswerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, err.Error())
	}

	appended := h.engine.AnswerMissingInfo(c.Context(), sess, req.Field, req.Value)

	return c.JSON(fiber.Map{"messages": appended})
}

func (h *APIHandlers) Reset(c fiber.Ctx) error {
	entry, ok := h.session(c.Params("id"))
	if !ok {
		return notFound(c, "session not found")
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	sess := entry.sess

	h.engine.Reset(c.Context(), sess)

	return c.JSON(fiber.Map{"step": sess.Step})
}

func (h *APIHandlers) session(id string) (*sessionEntry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry, ok := h.sessions[id]

	return entry, ok
}
