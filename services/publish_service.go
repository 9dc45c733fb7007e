package services

import (
	"context"
	"fmt"

	"github.com/clipdigest/clipdigest/models"
	"github.com/clipdigest/clipdigest/repositories"
)

// TweetPoster posts a tweet with a user access token.
type TweetPoster interface {
	Post(ctx context.Context, accessToken, text string) (string, error)
}

// LinkedInPoster posts a UGC share for a specific member.
type LinkedInPoster interface {
	Post(ctx context.Context, accessToken, personID, text string) (string, error)
}

// PublishResult describes a successfully published post.
type PublishResult struct {
	PostRef string
	PostURL string
}

// PublishService interface defines the posting business logic
type PublishService interface {
	Publish(ctx context.Context, summaryID int, accessToken, personID string) (*PublishResult, error)
}

// publishService implements PublishService interface
type publishService struct {
	twitter     TweetPoster
	linkedin    LinkedInPoster
	summaryRepo repositories.SummaryRepository
}

// NewPublishService creates a new publish service
func NewPublishService(twitter TweetPoster, linkedin LinkedInPoster, summaryRepo repositories.SummaryRepository) PublishService {
	return &publishService{
		twitter:     twitter,
		linkedin:    linkedin,
		summaryRepo: summaryRepo,
	}
}

// Publish posts a stored summary to its target platform and records the
// platform's post reference. personID is only required for LinkedIn.
func (s *publishService) Publish(ctx context.Context, summaryID int, accessToken, personID string) (*PublishResult, error) {
	summary, err := s.summaryRepo.GetByID(summaryID)
	if err != nil {
		return nil, fmt.Errorf("summary not found: %w", err)
	}

	if summary.Posted {
		return nil, fmt.Errorf("summary %d was already posted", summaryID)
	}

	if !models.ValidateSummaryLength(summary.PostText, summary.Platform) {
		if msg := models.FormatLengthError(summary.PostText, summary.Platform); msg != "" {
			return nil, fmt.Errorf("%s", msg)
		}
		return nil, fmt.Errorf("platform %q is not supported", summary.Platform)
	}

	var result PublishResult
	switch summary.Platform {
	case "twitter":
		tweetID, err := s.twitter.Post(ctx, accessToken, summary.PostText)
		if err != nil {
			return nil, err
		}
		result.PostRef = tweetID
		result.PostURL = "https://twitter.com/i/web/status/" + tweetID
	case "linkedin":
		postID, err := s.linkedin.Post(ctx, accessToken, personID, summary.PostText)
		if err != nil {
			return nil, err
		}
		result.PostRef = postID
		result.PostURL = "https://www.linkedin.com/feed/update/" + postID
	default:
		return nil, fmt.Errorf("platform %q does not support posting", summary.Platform)
	}

	if err := s.summaryRepo.MarkPosted(summary.ID, result.PostRef); err != nil {
		return nil, fmt.Errorf("post published but failed to record it: %w", err)
	}

	return &result, nil
}
