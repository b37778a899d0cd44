package service

import (
	"context"

	"github.com/Scalingo/sclng-top-languages/model"
	log "github.com/sirupsen/logrus"
)

type LanguagesService interface {
	TopLanguages(ctx context.Context, profileURL string) (model.LanguagesReport, error)
}

// languagesFetcherByUsername is the part of the platforms services used to build a report
type languagesFetcherByUsername interface {
	FetchLanguages(ctx context.Context, username string) ([]model.LanguageByteMap, error)
}

type languagesService struct {
	fetchers map[model.Platform]languagesFetcherByUsername
}

func NewLanguagesService(githubService GithubService, gitlabService GitlabService) LanguagesService {
	return languagesService{
		fetchers: map[model.Platform]languagesFetcherByUsername{
			model.PlatformGithub: githubService,
			model.PlatformGitlab: gitlabService,
		},
	}
}

// TopLanguages resolves the profile url, fetch the languages of all its repositories
// on the right platform and returns the most used ones
func (s languagesService) TopLanguages(ctx context.Context, profileURL string) (model.LanguagesReport, error) {
	if profileURL == "" {
		return model.LanguagesReport{}, model.ErrMissingArgument
	}

	profile, err := ResolveProfile(profileURL)
	if err != nil {
		return model.LanguagesReport{}, err
	}

	fetcher, found := s.fetchers[profile.Platform]
	if !found || fetcher == nil {
		return model.LanguagesReport{}, model.ErrUnsupportedPlatform
	}

	log.WithFields(log.Fields{
		"platform": profile.Platform,
		"username": profile.Username,
	}).Debug("profile resolved")

	perRepoLanguages, err := fetcher.FetchLanguages(ctx, profile.Username)
	if err != nil {
		return model.LanguagesReport{}, err
	}

	languages, err := AggregateLanguages(perRepoLanguages, TopLanguagesCount)
	if err != nil {
		return model.LanguagesReport{}, err
	}

	return model.LanguagesReport{
		ProfileURL:   profile.URL,
		Platform:     profile.Platform,
		Username:     profile.Username,
		Repositories: len(perRepoLanguages),
		Languages:    languages,
	}, nil
}
