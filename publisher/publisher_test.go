package publisher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwitterPostSuccess(t *testing.T) {
	var gotAuth string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/tweets", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data": {"id": "1234567890", "text": "hello"}}`))
	}))
	defer server.Close()

	p := &TwitterPublisher{baseURL: server.URL, client: server.Client()}
	id, err := p.Post(context.Background(), "tok", "hello")
	require.NoError(t, err)

	assert.Equal(t, "1234567890", id)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "hello", gotBody["text"])
}

func TestTwitterPostTooLong(t *testing.T) {
	p := &TwitterPublisher{baseURL: "http://localhost:0", client: http.DefaultClient}
	_, err := p.Post(context.Background(), "tok", strings.Repeat("a", 281))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "281")
}

func TestTwitterPostEmojiWithinLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data": {"id": "1"}}`))
	}))
	defer server.Close()

	// 280 runes even though the byte count is far higher.
	p := &TwitterPublisher{baseURL: server.URL, client: server.Client()}
	_, err := p.Post(context.Background(), "tok", strings.Repeat("🎉", 280))
	assert.NoError(t, err)
}

func TestTwitterPostErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header http.Header
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, "twitter", authErr.Platform)
			},
		},
		{
			name:   "rate limited with header",
			status: http.StatusTooManyRequests,
			header: http.Header{"Retry-After": []string{"120"}},
			check: func(t *testing.T, err error) {
				var rateErr *RateLimitError
				require.ErrorAs(t, err, &rateErr)
				assert.Equal(t, 120, rateErr.RetryAfter)
			},
		},
		{
			name:   "rate limited without header",
			status: http.StatusTooManyRequests,
			check: func(t *testing.T, err error) {
				var rateErr *RateLimitError
				require.ErrorAs(t, err, &rateErr)
				assert.Equal(t, 900, rateErr.RetryAfter)
			},
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for key, values := range tt.header {
					w.Header()[key] = values
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			p := &TwitterPublisher{baseURL: server.URL, client: server.Client()}
			_, err := p.Post(context.Background(), "tok", "hello")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestLinkedInPostSuccess(t *testing.T) {
	var gotBody map[string]any
	var gotProtocol string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ugcPosts", r.URL.Path)
		gotProtocol = r.Header.Get("X-Restli-Protocol-Version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "urn:li:share:6844785523593134080"}`))
	}))
	defer server.Close()

	p := &LinkedInPublisher{baseURL: server.URL, client: server.Client()}
	id, err := p.Post(context.Background(), "tok", "AbC123", "an update")
	require.NoError(t, err)

	assert.Equal(t, "urn:li:share:6844785523593134080", id)
	assert.Equal(t, "2.0.0", gotProtocol)
	assert.Equal(t, "urn:li:person:AbC123", gotBody["author"])
	assert.Equal(t, "PUBLISHED", gotBody["lifecycleState"])

	content := gotBody["specificContent"].(map[string]any)["com.linkedin.ugc.ShareContent"].(map[string]any)
	commentary := content["shareCommentary"].(map[string]any)
	assert.Equal(t, "an update", commentary["text"])
	assert.Equal(t, "NONE", content["shareMediaCategory"])
}

func TestLinkedInPostIDFromHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Restli-Id", "urn:li:share:42")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	p := &LinkedInPublisher{baseURL: server.URL, client: server.Client()}
	id, err := p.Post(context.Background(), "tok", "AbC123", "an update")
	require.NoError(t, err)
	assert.Equal(t, "urn:li:share:42", id)
}

func TestLinkedInPostRequiresPersonID(t *testing.T) {
	p := &LinkedInPublisher{baseURL: "http://localhost:0", client: http.DefaultClient}
	_, err := p.Post(context.Background(), "tok", "", "text")
	assert.Error(t, err)
}

func TestLinkedInPostTooLong(t *testing.T) {
	p := &LinkedInPublisher{baseURL: "http://localhost:0", client: http.DefaultClient}
	_, err := p.Post(context.Background(), "tok", "AbC123", strings.Repeat("a", 3001))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3001")
}

func TestLinkedInPostUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	p := &LinkedInPublisher{baseURL: server.URL, client: server.Client()}
	_, err := p.Post(context.Background(), "tok", "AbC123", "text")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "linkedin", authErr.Platform)
}
