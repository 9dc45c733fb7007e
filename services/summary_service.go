package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/clipdigest/clipdigest/models"
	"github.com/clipdigest/clipdigest/repositories"
	"github.com/clipdigest/clipdigest/transcript"
)

// twitterHashtags is appended to every tweet-shaped post.
const twitterHashtags = " #AI #Summary"

// tcoURLLength is how many characters the platform counts for any link,
// regardless of its real length, plus the separating space.
const tcoURLLength = 24

// TranscriptFetcher retrieves the caption text for a video.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// Summarizer generates a platform-shaped summary from a transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, platform string) (string, error)
}

// SummaryService interface defines the summarization business logic
type SummaryService interface {
	Summarize(ctx context.Context, form *models.SummarizeForm) (*models.Summary, error)
	GetByID(id int) (*models.Summary, error)
	GetRecent(limit int) ([]models.Summary, error)
}

// summaryService implements SummaryService interface
type summaryService struct {
	fetcher     TranscriptFetcher
	summarizer  Summarizer
	summaryRepo repositories.SummaryRepository
}

// NewSummaryService creates a new summary service
func NewSummaryService(fetcher TranscriptFetcher, summarizer Summarizer, summaryRepo repositories.SummaryRepository) SummaryService {
	return &summaryService{
		fetcher:     fetcher,
		summarizer:  summarizer,
		summaryRepo: summaryRepo,
	}
}

// Summarize runs the full pipeline: extract the video ID, fetch its
// transcript, summarize it for the target platform, compose the post text,
// and persist the result.
func (s *summaryService) Summarize(ctx context.Context, form *models.SummarizeForm) (*models.Summary, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	platform := form.Platform
	if platform == "" {
		platform = "default"
	}

	videoID := transcript.ExtractVideoID(form.YouTubeURL)
	if videoID == "" {
		return nil, fmt.Errorf("invalid YouTube URL: no video ID found in %q", form.YouTubeURL)
	}

	text, err := s.fetcher.Fetch(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript: %w", err)
	}

	summaryText, err := s.summarizer.Summarize(ctx, text, platform)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary: %w", err)
	}

	summary := &models.Summary{
		VideoID:     videoID,
		VideoURL:    form.YouTubeURL,
		Platform:    platform,
		SummaryText: summaryText,
		PostText:    ComposePost(summaryText, form.YouTubeURL, platform),
	}

	if err := s.summaryRepo.Create(summary); err != nil {
		return nil, fmt.Errorf("failed to save summary: %w", err)
	}

	return summary, nil
}

// GetByID retrieves a summary by ID
func (s *summaryService) GetByID(id int) (*models.Summary, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid summary ID: %d", id)
	}
	return s.summaryRepo.GetByID(id)
}

// GetRecent retrieves the most recent summaries
func (s *summaryService) GetRecent(limit int) ([]models.Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.summaryRepo.GetRecent(limit)
}

// ComposePost turns a summary into the final post text for a platform,
// appending hashtags and the source link and truncating where the platform
// limit requires it.
func ComposePost(summary, videoURL, platform string) string {
	switch platform {
	case "twitter":
		cfg, _ := models.GetPlatformConfig("twitter")
		maxLen := cfg.MaxChars - utf8.RuneCountInString(twitterHashtags) - tcoURLLength - 3
		if utf8.RuneCountInString(summary) > maxLen {
			runes := []rune(summary)
			summary = string(runes[:maxLen]) + "..."
		}
		return summary + twitterHashtags + " " + videoURL
	case "linkedin":
		return summary + "\n\nSource: " + videoURL
	default:
		return summary
	}
}
