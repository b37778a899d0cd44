package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Scalingo/sclng-top-languages/config"
	"github.com/Scalingo/sclng-top-languages/model"
	"github.com/google/go-github/v66/github"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type GithubService interface {
	ListRepositoriesForUser(ctx context.Context, username string) ([]model.Repository, error)
	ListLanguages(ctx context.Context, repository model.Repository) (model.LanguageByteMap, error)
	FetchLanguages(ctx context.Context, username string) ([]model.LanguageByteMap, error)

	HandleRequestErrors(operation string, err error) error
}

type githubService struct {
	githubClient *github.Client
	rateLimiter  *rate.Limiter
	config       config.Config
}

// the rate limiter only paces our own requests, github rate limit errors are reported as network errors
func NewGithubService(config config.Config, githubClient *github.Client, rateLimiter *rate.Limiter) GithubService {
	return githubService{
		githubClient: githubClient,
		rateLimiter:  rateLimiter,
		config:       config,
	}
}

// ListRepositoriesForUser returns the first page of public repositories owned by the user
func (s githubService) ListRepositoriesForUser(ctx context.Context, username string) ([]model.Repository, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	log.WithField("username", username).Info("fetch repositories from github")

	repos, _, err := s.githubClient.Repositories.ListByUser(
		ctx,
		username,
		&github.RepositoryListByUserOptions{
			Type: "owner",
			ListOptions: github.ListOptions{
				Page:    1,
				PerPage: 100,
			},
		},
	)

	if err != nil {
		if isGithubNotFound(err) {
			return nil, fmt.Errorf("%w on github: %s", model.ErrUserNotFound, username)
		}

		return nil, s.HandleRequestErrors("list repositories", err)
	}

	repositories := make([]model.Repository, 0, len(repos))

	for _, r := range repos {
		if r == nil || r.Owner == nil || r.Owner.Login == nil || r.Name == nil {
			log.WithField("username", username).Debug("repository found with invalid information")
			return nil, model.NewNetworkError(model.PlatformGithub, "list repositories", errors.New("repository without owner or name"))
		}

		repositories = append(repositories, model.Repository{
			ID:    r.GetID(),
			Owner: r.Owner.GetLogin(),
			Name:  r.GetName(),
		})
	}

	return repositories, nil
}

// ListLanguages returns the bytes of each language used in the repository
func (s githubService) ListLanguages(ctx context.Context, repository model.Repository) (model.LanguageByteMap, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"repositoryID": repository.ID,
		"owner":        repository.Owner,
		"repository":   repository.Name,
	}).Debug("fetch languages for repository")

	res, _, err := s.githubClient.Repositories.ListLanguages(ctx, repository.Owner, repository.Name)
	if err != nil {
		return nil, s.HandleRequestErrors("list languages", err)
	}

	languages := make(model.LanguageByteMap, len(res))
	for name, bytes := range res {
		if bytes < 0 {
			return nil, fmt.Errorf("%w: %s has %d bytes in %s/%s", model.ErrInvalidByteCount, name, bytes, repository.Owner, repository.Name)
		}

		languages[name] = int64(bytes)
	}

	return languages, nil
}

// FetchLanguages lists the user repositories then loads the languages of each one in parallel
func (s githubService) FetchLanguages(ctx context.Context, username string) ([]model.LanguageByteMap, error) {
	repositories, err := s.ListRepositoriesForUser(ctx, username)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"numberOfRepositories": len(repositories),
	}).Debug("will load languages from all repositories found")

	return fetchAllLanguages(ctx, s.config.Tasks.MaxParallelTasksAllowed, repositories, s.ListLanguages)
}

// HandleRequestErrors wraps every github failure, including rate limit errors, in a network error
func (s githubService) HandleRequestErrors(operation string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var rateLimitErr *github.RateLimitError
	if errors.As(err, &rateLimitErr) {
		log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
	} else {
		log.WithError(err).WithField("operation", operation).Error("error catched when fetching data from github")
	}

	return model.NewNetworkError(model.PlatformGithub, operation, err)
}

func isGithubNotFound(err error) bool {
	var errResponse *github.ErrorResponse
	return errors.As(err, &errResponse) && errResponse.Response != nil && errResponse.Response.StatusCode == http.StatusNotFound
}
