// Package agent generates video summaries through a hosted LLM. It speaks the
// OpenAI responses API directly; credential material goes into the
// Authorization header only and is never echoed in errors.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultResponsesURL is the hosted endpoint used when none is configured.
const DefaultResponsesURL = "https://api.openai.com/v1/responses"

// DefaultModel is used when no model deployment is configured.
const DefaultModel = "gpt-4o"

// Config configures the summarizer endpoint and credentials.
type Config struct {
	APIKey string
	Model  string

	// ResponsesURL overrides the hosted endpoint, mainly for tests.
	ResponsesURL string

	HTTPClient *http.Client
}

// Summarizer turns transcripts into platform-shaped summaries.
type Summarizer struct {
	cfg Config
}

// NewSummarizer validates the configuration and builds a summarizer.
func NewSummarizer(cfg Config) (*Summarizer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("summarizer API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.ResponsesURL == "" {
		cfg.ResponsesURL = DefaultResponsesURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 120 * time.Second}
	}
	return &Summarizer{cfg: cfg}, nil
}

// Summarize produces a summary of the transcript shaped for the target
// platform ("twitter", "linkedin", or "default").
func (s *Summarizer) Summarize(ctx context.Context, transcript, platform string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", errors.New("transcript is empty")
	}

	requestBody, err := json.Marshal(map[string]any{
		"model":        s.cfg.Model,
		"instructions": instructions(platform),
		"input":        transcript,
	})
	if err != nil {
		return "", fmt.Errorf("marshal summary request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.ResponsesURL, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("build summary request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("summary request status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode summary response: %w", err)
	}

	summary := strings.TrimSpace(payload.OutputText)
	if summary == "" {
		for _, item := range payload.Output {
			for _, content := range item.Content {
				if text := strings.TrimSpace(content.Text); text != "" {
					summary = text
					break
				}
			}
			if summary != "" {
				break
			}
		}
	}
	if summary == "" {
		return "", errors.New("summary response contained no text")
	}

	return summary, nil
}

// instructions returns the system prompt for the target platform. The
// character targets sit below the hard platform limits to leave room for the
// hashtags and source link added during post composition.
func instructions(platform string) string {
	switch platform {
	case "twitter":
		return "You summarize YouTube video transcripts into tweet-ready text. " +
			"Stay under 240 characters, keep the tone casual and engaging, and " +
			"work in one or two relevant hashtags. Return only the tweet text."
	case "linkedin":
		return "You summarize YouTube video transcripts into LinkedIn posts. " +
			"Stay under 2800 characters, keep the tone professional and structured, " +
			"and use short bullet points for the key takeaways. Return only the post text."
	default:
		return "You are an expert YouTube summarizer. Generate a concise, " +
			"easy-to-read summary of the key points of the transcript. " +
			"Do not invent information."
	}
}
