package model

// LanguageByteMap is the number of bytes of each language for a single repository
type LanguageByteMap map[string]int64

// Total returns the sum of all byte counts
func (m LanguageByteMap) Total() int64 {
	var total int64
	for _, bytes := range m {
		total += bytes
	}

	return total
}

type AggregatedLanguage struct {
	Language   string `json:"language"`
	Bytes      int64  `json:"bytes"`
	Percentage string `json:"percentage"` // always 2 decimal places
}

type LanguagesReport struct {
	ProfileURL   string               `json:"profileUrl"`
	Platform     Platform             `json:"platform"`
	Username     string               `json:"username"`
	Repositories int                  `json:"repositories"`
	Languages    []AggregatedLanguage `json:"languages"`
}
