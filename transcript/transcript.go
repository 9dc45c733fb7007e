// Package transcript extracts YouTube video IDs and fetches caption
// transcripts from a third-party transcript API.
package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// videoIDPattern matches the 11-character video ID in the usual URL shapes:
// watch?v=, youtu.be/, embed/, shorts/, v/.
var videoIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/\s]+/\S+/|(?:v|embed|shorts)/|\S*?[?&]v=)|youtu\.be/)([A-Za-z0-9_-]{11})`)

// ExtractVideoID pulls the video ID out of a YouTube URL. Returns "" when the
// URL does not contain one.
func ExtractVideoID(rawURL string) string {
	match := videoIDPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return ""
	}
	return match[1]
}

// Client fetches English transcripts for a video ID over the transcript API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a transcript API client. baseURL is the API root without
// a trailing slash.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type transcriptResponse struct {
	VideoID  string `json:"video_id"`
	Segments []struct {
		Text string `json:"text"`
	} `json:"segments"`
}

// Fetch retrieves the full transcript text for a video. Videos without
// captions and API failures surface as errors mentioning the video ID.
func (c *Client) Fetch(ctx context.Context, videoID string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("transcript API is not configured")
	}
	if videoID == "" {
		return "", fmt.Errorf("video ID is required")
	}

	endpoint := fmt.Sprintf("%s/transcripts/%s?lang=%s", c.baseURL, url.PathEscape(videoID), "en")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build transcript request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcript request for %s failed: %w", videoID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("could not retrieve captions for video %s: status %d: %s",
			videoID, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload transcriptResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode transcript response for %s: %w", videoID, err)
	}

	parts := make([]string, 0, len(payload.Segments))
	for _, segment := range payload.Segments {
		if text := strings.TrimSpace(segment.Text); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no captions available for video %s", videoID)
	}

	return strings.Join(parts, " "), nil
}
