package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// TweetMaxChars is the hard character limit enforced before the request is
// sent, counted in runes the way the platform counts.
const TweetMaxChars = 280

const defaultTwitterAPIURL = "https://api.twitter.com/2"

// TwitterPublisher posts tweets through the v2 API with a user access token.
type TwitterPublisher struct {
	baseURL string
	client  *http.Client
}

// NewTwitterPublisher builds a publisher against the production API.
func NewTwitterPublisher() *TwitterPublisher {
	return &TwitterPublisher{
		baseURL: defaultTwitterAPIURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Post publishes the text as a tweet and returns the new tweet ID.
func (p *TwitterPublisher) Post(ctx context.Context, accessToken, text string) (string, error) {
	if count := utf8.RuneCountInString(text); count > TweetMaxChars {
		return "", fmt.Errorf("tweet is %d characters, limit is %d", count, TweetMaxChars)
	}

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", fmt.Errorf("marshal tweet: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/tweets", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build tweet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("tweet request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse("twitter", resp); err != nil {
		return "", err
	}

	var payload struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode tweet response: %w", err)
	}
	if payload.Data.ID == "" {
		return "", &APIError{Platform: "twitter", StatusCode: resp.StatusCode, Detail: "response missing tweet id"}
	}

	return payload.Data.ID, nil
}

// checkResponse maps non-success platform responses onto the shared error
// taxonomy. The caller keeps the body for successful responses.
func checkResponse(platform string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &AuthError{Platform: platform}
	case http.StatusTooManyRequests:
		retryAfter := defaultRetryAfter
		if header := resp.Header.Get("Retry-After"); header != "" {
			if seconds, err := strconv.Atoi(header); err == nil {
				retryAfter = seconds
			}
		}
		return &RateLimitError{Platform: platform, RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			Platform:   platform,
			StatusCode: resp.StatusCode,
			Detail:     strings.TrimSpace(string(body)),
		}
	}
}
