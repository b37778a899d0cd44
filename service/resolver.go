package service

import (
	"strings"

	"github.com/Scalingo/sclng-top-languages/model"
)

// ResolveProfile detects the hosting platform from the url and extracts the username
// the username is the last segment of the url, no normalization is done (trailing slash, query string, case)
func ResolveProfile(profileURL string) (model.Profile, error) {
	var platform model.Platform

	switch {
	case strings.Contains(profileURL, "github.com"):
		platform = model.PlatformGithub
	case strings.Contains(profileURL, "gitlab.com"):
		platform = model.PlatformGitlab
	default:
		return model.Profile{}, model.ErrUnsupportedPlatform
	}

	username := profileURL[strings.LastIndex(profileURL, "/")+1:]
	if username == "" {
		return model.Profile{}, model.ErrInvalidProfileURL
	}

	return model.Profile{
		URL:      profileURL,
		Platform: platform,
		Username: username,
	}, nil
}
