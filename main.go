package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/followup-app/followup/api"
	"github.com/followup-app/followup/config"
	"github.com/followup-app/followup/llm"
	"github.com/followup-app/followup/mail"
	"github.com/followup-app/followup/sms"
	"github.com/followup-app/followup/stt"
)

func main() {
	// Load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to environment variables")
	}

	cfg := config.Load()
	if cfg.OpenAIAPIKey == "" {
		log.Println("WARNING: OPENAI_API_KEY is not set; generation and transcription will fail")
	}

	plans := llm.NewClient(cfg)

	srv := &api.Server{
		Plans:   plans,
		Drafts:  plans,
		Speech:  stt.NewClient(cfg),
		Mail:    mail.NewMailer(cfg),
		SMS:     sms.NewNotifier(cfg),
		AppName: cfg.AppName,
	}

	app := fiber.New(fiber.Config{
		AppName:   cfg.AppName,
		BodyLimit: 32 << 20, // recorded audio uploads
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())

	srv.Register(app)
	app.Static("/", "./static")

	addr := ":" + cfg.Port
	log.Printf("%s listening on %s", cfg.AppName, addr)
	log.Fatal(app.Listen(addr))
}
