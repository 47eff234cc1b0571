package voice

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/text/language"

	"caderneta/internal/config"
)

// Transcriber turns a WAV file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath string) (string, error)
}

// NewTranscriber creates a Transcriber for the configured backend.
func NewTranscriber(cfg config.SpeechConfig) (Transcriber, error) {
	switch cfg.Backend {
	case "openai", "":
		return NewOpenAITranscriber(cfg.URL, cfg.APIKey, cfg.Model, cfg.Language), nil
	case "whisper-server":
		return NewWhisperServerTranscriber(cfg.URL, cfg.Language), nil
	default:
		return nil, fmt.Errorf("transcribe: unknown backend %q (supported: openai, whisper-server)", cfg.Backend)
	}
}

// OpenAITranscriber calls an OpenAI-compatible /audio/transcriptions API.
type OpenAITranscriber struct {
	client   *openai.Client
	model    string
	language string
}

func NewOpenAITranscriber(baseURL, apiKey, model, locale string) *OpenAITranscriber {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if model == "" {
		model = openai.Whisper1
	}
	return &OpenAITranscriber{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		language: baseLanguage(locale),
	}
}

func (t *OpenAITranscriber) Transcribe(ctx context.Context, wavPath string) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: wavPath,
		Language: t.language,
	})
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// baseLanguage reduces a locale such as "pt-BR" to its ISO-639-1 base
// ("pt"), which is what transcription APIs accept.
func baseLanguage(locale string) string {
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	base, _ := tag.Base()
	return base.String()
}
