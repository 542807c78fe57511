package api

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/websocket/v2"
)

type draftStreamRequest struct {
	Notes string `json:"notes"`
}

// Frames sent over /ws/draft: "delta" carries one sentence of the draft as
// it is generated, "done" carries the complete draft, "error" ends the
// exchange early.
type draftStreamFrame struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Draft string `json:"draft_text,omitempty"`
}

// HandleDraftStream streams a draft action plan over a websocket. The
// client sends one JSON message with its notes and receives delta frames
// until the final done frame.
func (s *Server) HandleDraftStream(ws *websocket.Conn) {
	defer ws.Close()

	var req draftStreamRequest
	if err := ws.ReadJSON(&req); err != nil {
		log.Printf("draft stream read error: %v", err)
		return
	}
	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		ws.WriteJSON(draftStreamFrame{Type: "error", Text: "No notes provided."})
		return
	}

	draft, err := s.Drafts.StreamDraft(context.Background(), notes, func(sentence string) {
		if err := ws.WriteJSON(draftStreamFrame{Type: "delta", Text: sentence}); err != nil {
			log.Printf("draft stream write error: %v", err)
		}
	})
	if err != nil {
		log.Printf("draft stream failed: %v", err)
		ws.WriteJSON(draftStreamFrame{Type: "error", Text: err.Error()})
		return
	}
	ws.WriteJSON(draftStreamFrame{Type: "done", Draft: draft})
}
