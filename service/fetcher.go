package service

import (
	"context"

	"github.com/Scalingo/sclng-top-languages/model"
	"github.com/remeh/sizedwaitgroup"
	log "github.com/sirupsen/logrus"
)

// fetchAllLanguages runs fetch for every item using at most maxParallel goroutines
// results are returned in the same order as items
// the first failing fetch cancels the others and its error is returned, no partial result
func fetchAllLanguages[T any](ctx context.Context, maxParallel int, items []T, fetch func(ctx context.Context, item T) (model.LanguageByteMap, error)) ([]model.LanguageByteMap, error) {
	if maxParallel <= 0 {
		maxParallel = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	swg := sizedwaitgroup.New(maxParallel)

	// buffered to never block a goroutine, even when we stop reading after a failure
	results := make(chan model.RepositoryLanguages, len(items))
	failures := make(chan error, len(items))

	for i, item := range items {
		if err := swg.AddWithContext(ctx); err != nil {
			break
		}

		go func(index int, item T) {
			defer swg.Done()

			languages, err := fetch(ctx, item)
			if err != nil {
				failures <- err
				cancel()
				return
			}

			results <- model.RepositoryLanguages{Index: index, Languages: languages}
		}(i, item)
	}

	// wait for all tasks to be finished
	log.Debug("waiting for all languages fetches to be finished")
	swg.Wait()
	close(results)
	close(failures)

	if err, failed := <-failures; failed {
		return nil, err
	}

	// parent context cancelled before every fetch was started
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ordered := make([]model.LanguageByteMap, len(items))
	for result := range results {
		ordered[result.Index] = result.Languages
	}

	return ordered, nil
}
