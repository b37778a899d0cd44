package model

import "strings"

type LanguagesQuery struct {
	URL string `form:"url"`
}

// ProfileURL returns the url query parameter without surrounding spaces
func (params LanguagesQuery) ProfileURL() string {
	return strings.TrimSpace(params.URL)
}
