package services

import (
	"github.com/clipdigest/clipdigest/repositories"
)

// Services holds all service instances
type Services struct {
	Summary SummaryService
	Publish PublishService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, fetcher TranscriptFetcher, summarizer Summarizer, twitter TweetPoster, linkedin LinkedInPoster) *Services {
	return &Services{
		Summary: NewSummaryService(fetcher, summarizer, repos.Summary),
		Publish: NewPublishService(twitter, linkedin, repos.Summary),
	}
}
