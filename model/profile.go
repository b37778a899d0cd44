package model

type Platform string

const (
	PlatformGithub Platform = "github"
	PlatformGitlab Platform = "gitlab"
)

// Profile is a profile url resolved to a platform and a username
type Profile struct {
	URL      string   `json:"url"`
	Platform Platform `json:"platform"`
	Username string   `json:"username"`
}
