package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// FinalSubject is the fixed subject line for delivered plans.
const FinalSubject = "Action Items & Schedule from Your Meeting"

// PlanGenerator produces and polishes action plans.
type PlanGenerator interface {
	GenerateDraft(ctx context.Context, notes string) (string, error)
	PolishFinal(ctx context.Context, finalText string) (string, error)
}

// DraftStreamer produces a draft incrementally, emitting sentences as they form.
type DraftStreamer interface {
	StreamDraft(ctx context.Context, notes string, emit func(string)) (string, error)
}

// Transcriber converts uploaded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// Mailer delivers a finalized plan to one recipient.
type Mailer interface {
	Send(to, subject, markdownBody string) error
}

// Notifier sends a delivery notice to a phone number.
type Notifier interface {
	Notify(to string) error
}

// Server holds the handlers' collaborators. Handlers keep no state of their
// own; every request is a single sequential pass over these clients.
type Server struct {
	Plans   PlanGenerator
	Drafts  DraftStreamer
	Speech  Transcriber
	Mail    Mailer
	SMS     Notifier
	AppName string
}

// Register mounts all routes on app.
func (s *Server) Register(app *fiber.App) {
	app.Get("/healthz", s.HandleHealth)
	app.Post("/api/draft", s.HandleDraft)
	app.Post("/api/finalize", s.HandleFinalize)
	app.Use("/ws/draft", requireWebSocket)
	app.Get("/ws/draft", websocket.New(s.HandleDraftStream))
}

func requireWebSocket(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
