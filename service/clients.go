package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/Scalingo/sclng-top-languages/config"
	"github.com/google/go-github/v66/github"
	gitlab "gitlab.com/gitlab-org/api/client-go"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// NewRequestLimiter builds the limiter shared by both platforms clients
// burst allows every parallel task to start at once
func NewRequestLimiter(cfg config.Config) *rate.Limiter {
	burst := cfg.Tasks.MaxParallelTasksAllowed
	if burst < 1 {
		burst = 1
	}

	limit := rate.Inf
	if cfg.Tasks.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.Tasks.RequestsPerSecond)
	}

	return rate.NewLimiter(limit, burst)
}

// NewGithubClient setup an authenticated github client
// we do here and pass the client to Github service to easily improve tests with mock client
func NewGithubClient(ctx context.Context, cfg config.GithubConfig) (*github.Client, error) {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	client := github.NewClient(oauth2.NewClient(ctx, tokenSource))

	if cfg.BaseURL != "" {
		baseURL := cfg.BaseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}

		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, err
		}

		client.BaseURL = parsed
	}

	return client, nil
}

// NewGitlabClient setup a gitlab client paced by the given limiter
func NewGitlabClient(cfg config.GitlabConfig, limiter *rate.Limiter) (*gitlab.Client, error) {
	options := []gitlab.ClientOptionFunc{gitlab.WithCustomLimiter(limiter)}

	if cfg.BaseURL != "" {
		options = append(options, gitlab.WithBaseURL(cfg.BaseURL))
	}

	return gitlab.NewClient(cfg.Token, options...)
}
