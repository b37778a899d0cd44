package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Scalingo/sclng-top-languages/config"
	"github.com/Scalingo/sclng-top-languages/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type gitlabMockResponses struct {
	users     string
	projects  string
	languages map[string]string // project id to languages json, missing id answers 404
}

func newMockedGitlabService(t *testing.T, responses gitlabMockResponses) GitlabService {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v4/users", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "mbacchi", r.URL.Query().Get("username"))
		writeJSON(w, http.StatusOK, responses.users)
	})

	mux.HandleFunc("GET /api/v4/users/{id}/projects", func(w http.ResponseWriter, r *http.Request) {
		// projects must be listed with the resolved user id
		assert.Equal(t, "42", r.PathValue("id"))
		writeJSON(w, http.StatusOK, responses.projects)
	})

	mux.HandleFunc("GET /api/v4/projects/{id}/languages", func(w http.ResponseWriter, r *http.Request) {
		languages, found := responses.languages[r.PathValue("id")]
		if !found {
			writeJSON(w, http.StatusNotFound, `{"message":"404 Project Not Found"}`)
			return
		}

		writeJSON(w, http.StatusOK, languages)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	conf := config.GetDefault()
	conf.Gitlab.Token = "token"
	conf.Gitlab.BaseURL = server.URL

	client, err := NewGitlabClient(conf.Gitlab, rate.NewLimiter(rate.Inf, 1))
	require.NoError(t, err)

	return NewGitlabService(*conf, client)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestFindUsersByUsername(t *testing.T) {
	svc := newMockedGitlabService(t, gitlabMockResponses{
		users: `[{"id": 42, "username": "mbacchi", "name": "Matt Bacchi"}]`,
	})

	users, err := svc.FindUsersByUsername(context.Background(), "mbacchi")

	assert.NoError(t, err)
	assert.Equal(t, []model.GitlabUser{{ID: 42, Username: "mbacchi", Name: "Matt Bacchi"}}, users)
}

func TestListProjectsForUser(t *testing.T) {
	svc := newMockedGitlabService(t, gitlabMockResponses{
		projects: `[{"id": 1, "name": "api"}, {"id": 2, "name": "web"}]`,
	})

	projects, err := svc.ListProjectsForUser(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, []model.GitlabProject{{ID: 1, Name: "api"}, {ID: 2, Name: "web"}}, projects)
}

func TestGetProjectLanguages(t *testing.T) {
	tests := []struct {
		name              string
		projectID         int
		languages         map[string]string
		expectedLanguages model.LanguageByteMap
		expectedErr       error
	}{
		{
			name:              "Shares are converted to weights",
			projectID:         1,
			languages:         map[string]string{"1": `{"Go": 75.5, "Shell": 24.5}`},
			expectedLanguages: model.LanguageByteMap{"Go": 7550, "Shell": 2450},
		},
		{
			name:              "Project without languages",
			projectID:         2,
			languages:         map[string]string{"2": `{}`},
			expectedLanguages: model.LanguageByteMap{},
		},
		{
			name:        "Negative share",
			projectID:   3,
			languages:   map[string]string{"3": `{"Go": -1}`},
			expectedErr: model.ErrInvalidByteCount,
		},
		{
			name:        "Unknown project",
			projectID:   4,
			languages:   map[string]string{},
			expectedErr: model.ErrNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMockedGitlabService(t, gitlabMockResponses{languages: tt.languages})

			languages, err := svc.GetProjectLanguages(context.Background(), tt.projectID)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedLanguages, languages)
			}
		})
	}
}

func TestGitlabFetchLanguages(t *testing.T) {
	tests := []struct {
		name              string
		responses         gitlabMockResponses
		expectedLanguages []model.LanguageByteMap
		expectedErr       error
	}{
		{
			name: "Languages of every project",
			responses: gitlabMockResponses{
				users:    `[{"id": 42, "username": "mbacchi", "name": "Matt Bacchi"}]`,
				projects: `[{"id": 1, "name": "api"}, {"id": 2, "name": "web"}]`,
				languages: map[string]string{
					"1": `{"Go": 100}`,
					"2": `{"TypeScript": 80, "JavaScript": 20}`,
				},
			},
			expectedLanguages: []model.LanguageByteMap{
				{"Go": 10000},
				{"TypeScript": 8000, "JavaScript": 2000},
			},
		},
		{
			name: "User not found",
			responses: gitlabMockResponses{
				users: `[]`,
			},
			expectedErr: model.ErrUserNotFound,
		},
		{
			name: "Failing project fails the whole fetch",
			responses: gitlabMockResponses{
				users:     `[{"id": 42, "username": "mbacchi", "name": "Matt Bacchi"}]`,
				projects:  `[{"id": 1, "name": "api"}, {"id": 2, "name": "web"}]`,
				languages: map[string]string{"1": `{"Go": 100}`},
			},
			expectedErr: model.ErrNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMockedGitlabService(t, tt.responses)

			languages, err := svc.FetchLanguages(context.Background(), "mbacchi")

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, languages)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedLanguages, languages)
			}
		})
	}
}
