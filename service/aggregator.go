package service

import (
	"math"
	"sort"
	"strconv"

	"github.com/Scalingo/sclng-top-languages/model"
)

// TopLanguagesCount is the number of languages displayed for a profile
const TopLanguagesCount = 5

type rankedLanguage struct {
	name       string
	bytes      int64
	percentage float64
}

// AggregateLanguages merges the languages of all repositories and returns the most used ones
// limit <= 0 returns every language
func AggregateLanguages(perRepoLanguages []model.LanguageByteMap, limit int) ([]model.AggregatedLanguage, error) {
	ranked, err := RankLanguages(perRepoLanguages)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked, nil
}

// RankLanguages returns every language sorted by percentage of the total bytes, descending
// languages with the same percentage keep the order they were first seen in:
// repositories in input order, then language names in lexical order inside a repository
func RankLanguages(perRepoLanguages []model.LanguageByteMap) ([]model.AggregatedLanguage, error) {
	var totalBytes int64
	merged := make(map[string]int)
	languages := make([]rankedLanguage, 0)

	for _, repoLanguages := range perRepoLanguages {
		names := make([]string, 0, len(repoLanguages))
		for name := range repoLanguages {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			bytes := repoLanguages[name]
			if bytes < 0 {
				return nil, model.ErrInvalidByteCount
			}

			idx, found := merged[name]
			if !found {
				idx = len(languages)
				merged[name] = idx
				languages = append(languages, rankedLanguage{name: name})
			}

			languages[idx].bytes += bytes
			totalBytes += bytes
		}
	}

	// nothing to share, avoid the division by zero
	if totalBytes == 0 {
		return []model.AggregatedLanguage{}, nil
	}

	for i := range languages {
		languages[i].percentage = roundPercentage(languages[i].bytes, totalBytes)
	}

	sort.SliceStable(languages, func(i, j int) bool {
		return languages[i].percentage > languages[j].percentage
	})

	result := make([]model.AggregatedLanguage, 0, len(languages))
	for _, l := range languages {
		result = append(result, model.AggregatedLanguage{
			Language:   l.name,
			Bytes:      l.bytes,
			Percentage: strconv.FormatFloat(l.percentage, 'f', 2, 64),
		})
	}

	return result, nil
}

// roundPercentage returns bytes/total*100 rounded to 2 decimal places
func roundPercentage(bytes, total int64) float64 {
	return math.Round(float64(bytes)/float64(total)*10000) / 100
}
