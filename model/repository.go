package model

// Repository is a github repository owned by the profile
type Repository struct {
	ID    int64  `json:"-"` // only used to log and to keep results ordered
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

type GitlabUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type GitlabProject struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RepositoryLanguages is the result of a single language fetch
// Index is the position of the repository in the listing, used to keep the aggregation deterministic
type RepositoryLanguages struct {
	Index     int
	Languages LanguageByteMap
}
