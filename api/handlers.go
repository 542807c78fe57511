package api

import (
	"io"
	"log"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/followup-app/followup/apperr"
)

type DraftResponse struct {
	DraftText  string `json:"draft_text"`
	SourceText string `json:"source_text"`
	Email      string `json:"email"`
}

type FinalizeRequest struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FinalText string `json:"final_text"`
}

type FinalizeResponse struct {
	PolishedText string `json:"polished_text"`
}

func (s *Server) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "app": s.AppName})
}

// HandleDraft accepts typed notes or an audio recording and returns a draft
// action plan. Non-empty notes always win over audio.
func (s *Server) HandleDraft(c *fiber.Ctx) error {
	notes := strings.TrimSpace(c.FormValue("notes"))
	email := strings.TrimSpace(c.FormValue("email"))

	if notes == "" {
		if fh, err := c.FormFile("audio"); err == nil {
			audio, err := readUpload(fh)
			if err != nil {
				return s.fail(c, apperr.Upstream("reading audio upload failed", err))
			}
			filename := fh.Filename
			if filename == "" {
				filename = "recording.webm"
			}
			transcript, err := s.Speech.Transcribe(c.UserContext(), audio, filename)
			if err != nil {
				return s.fail(c, err)
			}
			notes = transcript
		}
	}

	if notes == "" {
		return s.fail(c, apperr.Validation("No notes or audio provided."))
	}

	draft, err := s.Plans.GenerateDraft(c.UserContext(), notes)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(DraftResponse{DraftText: draft, SourceText: notes, Email: email})
}

// HandleFinalize polishes a user-edited plan and, when an email address is
// given, delivers it. Delivery sits on the success path: a failed send
// fails the whole request and the polished text is not returned.
func (s *Server) HandleFinalize(c *fiber.Ctx) error {
	var req FinalizeRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, apperr.Validation("invalid JSON body"))
	}
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)
	finalText := strings.TrimSpace(req.FinalText)

	if finalText == "" {
		return s.fail(c, apperr.Validation("final_text missing"))
	}

	polished, err := s.Plans.PolishFinal(c.UserContext(), finalText)
	if err != nil {
		return s.fail(c, err)
	}

	if email != "" {
		body := polished + "\n\n—\nGenerated by " + s.AppName
		if err := s.Mail.Send(email, FinalSubject, body); err != nil {
			return s.fail(c, err)
		}
		if phone != "" {
			if err := s.SMS.Notify(phone); err != nil {
				return s.fail(c, err)
			}
		}
	}
	return c.JSON(FinalizeResponse{PolishedText: polished})
}

func (s *Server) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case apperr.IsValidation(err):
		status = fiber.StatusBadRequest
	case apperr.IsUpstream(err):
		status = fiber.StatusBadGateway
	}
	if status != fiber.StatusBadRequest {
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
