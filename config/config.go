package config

import (
	"os"
	"strconv"
)

// Config holds every externally provided setting. It is loaded once in main
// and passed into each constructor; nothing reads the environment afterwards.
type Config struct {
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	TranscribeModel string
	TextModel       string

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	FromEmail string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	AppName string
	Port    string
}

// Load reads the environment and applies defaults.
func Load() Config {
	cfg := Config{
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		TranscribeModel: getenv("TRANSCRIBE_MODEL", "gpt-4o-mini-transcribe"),
		TextModel:       getenv("TEXT_MODEL", "gpt-4o-mini"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getenvInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),

		AppName: getenv("APP_NAME", "FollowUp"),
		Port:    getenv("PORT", "8000"),
	}
	cfg.FromEmail = getenv("FROM_EMAIL", cfg.SMTPUser)
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
