package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WhisperServerTranscriber posts the WAV to a whisper.cpp server's
// /inference endpoint.
type WhisperServerTranscriber struct {
	endpoint   string
	language   string
	httpClient *http.Client
}

type inferenceResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

func NewWhisperServerTranscriber(endpoint, locale string) *WhisperServerTranscriber {
	return &WhisperServerTranscriber{
		endpoint: strings.TrimRight(endpoint, "/"),
		language: baseLanguage(locale),
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (c *WhisperServerTranscriber) Transcribe(ctx context.Context, wavPath string) (string, error) {
	file, err := os.Open(wavPath)
	if err != nil {
		return "", fmt.Errorf("transcribe: failed to open audio: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(wavPath)))
	h.Set("Content-Type", "audio/wav")

	part, err := writer.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("transcribe: failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("transcribe: failed to copy audio data: %w", err)
	}
	if c.language != "" {
		if err := writer.WriteField("language", c.language); err != nil {
			return "", fmt.Errorf("transcribe: failed to write language: %w", err)
		}
	}
	if err := writer.WriteField("response_format", "json"); err != nil {
		return "", fmt.Errorf("transcribe: failed to write response format: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("transcribe: failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/inference", &buf)
	if err != nil {
		return "", fmt.Errorf("transcribe: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcribe: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("transcribe: service error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("transcribe: failed to decode response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("transcribe: %s", out.Error)
	}

	return strings.TrimSpace(out.Text), nil
}
