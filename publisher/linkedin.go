package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"
)

// LinkedInMaxChars is the character limit for a LinkedIn post.
const LinkedInMaxChars = 3000

const defaultLinkedInAPIURL = "https://api.linkedin.com/v2"

// LinkedInPublisher posts UGC shares with a member access token. Posting
// needs the member's person ID resolved during authorization.
type LinkedInPublisher struct {
	baseURL string
	client  *http.Client
}

// NewLinkedInPublisher builds a publisher against the production API.
func NewLinkedInPublisher() *LinkedInPublisher {
	return &LinkedInPublisher{
		baseURL: defaultLinkedInAPIURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Post publishes the text as a UGC share for the member and returns the new
// post ID.
func (p *LinkedInPublisher) Post(ctx context.Context, accessToken, personID, text string) (string, error) {
	if count := utf8.RuneCountInString(text); count > LinkedInMaxChars {
		return "", fmt.Errorf("post is %d characters, limit is %d", count, LinkedInMaxChars)
	}
	if personID == "" {
		return "", fmt.Errorf("linkedin person ID is required")
	}

	payload := map[string]any{
		"author":         "urn:li:person:" + personID,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary": map[string]any{
					"text": text,
				},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]any{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal linkedin post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/ugcPosts", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build linkedin request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("linkedin request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse("linkedin", resp); err != nil {
		return "", err
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode linkedin response: %w", err)
	}
	if result.ID == "" {
		// Some responses carry the ID in the x-restli-id header instead.
		result.ID = resp.Header.Get("X-Restli-Id")
	}
	if result.ID == "" {
		return "", &APIError{Platform: "linkedin", StatusCode: resp.StatusCode, Detail: "response missing post id"}
	}

	return result.ID, nil
}
