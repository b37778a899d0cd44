package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Scalingo/sclng-top-languages/config"
	"github.com/Scalingo/sclng-top-languages/model"
	log "github.com/sirupsen/logrus"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

type GitlabService interface {
	FindUsersByUsername(ctx context.Context, username string) ([]model.GitlabUser, error)
	ListProjectsForUser(ctx context.Context, userID int) ([]model.GitlabProject, error)
	GetProjectLanguages(ctx context.Context, projectID int) (model.LanguageByteMap, error)
	FetchLanguages(ctx context.Context, username string) ([]model.LanguageByteMap, error)
}

type gitlabService struct {
	gitlabClient *gitlab.Client
	config       config.Config
}

// requests pacing is done by the limiter given to the gitlab client, see NewGitlabClient
func NewGitlabService(config config.Config, gitlabClient *gitlab.Client) GitlabService {
	return gitlabService{
		gitlabClient: gitlabClient,
		config:       config,
	}
}

func (s gitlabService) FindUsersByUsername(ctx context.Context, username string) ([]model.GitlabUser, error) {
	log.WithField("username", username).Info("search user on gitlab")

	users, _, err := s.gitlabClient.Users.ListUsers(
		&gitlab.ListUsersOptions{Username: gitlab.Ptr(username)},
		gitlab.WithContext(ctx),
	)

	if err != nil {
		return nil, handleGitlabError("find users", err)
	}

	result := make([]model.GitlabUser, 0, len(users))
	for _, u := range users {
		if u == nil {
			continue
		}

		result = append(result, model.GitlabUser{ID: u.ID, Username: u.Username, Name: u.Name})
	}

	return result, nil
}

// ListProjectsForUser returns the first page of projects owned by the user id
func (s gitlabService) ListProjectsForUser(ctx context.Context, userID int) ([]model.GitlabProject, error) {
	projects, _, err := s.gitlabClient.Projects.ListUserProjects(
		userID,
		&gitlab.ListProjectsOptions{
			ListOptions: gitlab.ListOptions{
				Page:    1,
				PerPage: 100,
			},
		},
		gitlab.WithContext(ctx),
	)

	if err != nil {
		return nil, handleGitlabError("list projects", err)
	}

	result := make([]model.GitlabProject, 0, len(projects))
	for _, p := range projects {
		if p == nil {
			continue
		}

		result = append(result, model.GitlabProject{ID: p.ID, Name: p.Name})
	}

	return result, nil
}

// GetProjectLanguages returns the languages of the project
// gitlab only reports the share of each language, it's converted to hundredths of percent
// so projects keep the same weight whatever their size
func (s gitlabService) GetProjectLanguages(ctx context.Context, projectID int) (model.LanguageByteMap, error) {
	log.WithField("projectID", projectID).Debug("fetch languages for project")

	res, _, err := s.gitlabClient.Projects.GetProjectLanguages(projectID, gitlab.WithContext(ctx))
	if err != nil {
		return nil, handleGitlabError("get project languages", err)
	}

	languages := model.LanguageByteMap{}
	if res == nil {
		return languages, nil
	}

	for name, share := range *res {
		if share < 0 {
			return nil, fmt.Errorf("%w: %s has a share of %f in project %d", model.ErrInvalidByteCount, name, share, projectID)
		}

		languages[name] = int64(math.Round(float64(share) * 100))
	}

	return languages, nil
}

// FetchLanguages resolves the user, lists the projects owned by its id and loads the languages of each one in parallel
func (s gitlabService) FetchLanguages(ctx context.Context, username string) ([]model.LanguageByteMap, error) {
	users, err := s.FindUsersByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, fmt.Errorf("%w on gitlab: %s", model.ErrUserNotFound, username)
	}

	user := users[0]
	log.WithFields(log.Fields{
		"userID": user.ID,
		"name":   user.Name,
	}).Info("fetching languages for gitlab user")

	projects, err := s.ListProjectsForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"numberOfProjects": len(projects),
	}).Debug("will load languages from all projects found")

	return fetchAllLanguages(ctx, s.config.Tasks.MaxParallelTasksAllowed, projects,
		func(ctx context.Context, p model.GitlabProject) (model.LanguageByteMap, error) {
			return s.GetProjectLanguages(ctx, p.ID)
		},
	)
}

func handleGitlabError(operation string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	log.WithError(err).WithField("operation", operation).Error("error catched when fetching data from gitlab")
	return model.NewNetworkError(model.PlatformGitlab, operation, err)
}
