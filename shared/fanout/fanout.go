// Package fanout runs independent resource queries concurrently and merges
// their string results into a single set.
package fanout

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/thirukguru/sg-audit/model"
	"golang.org/x/sync/errgroup"
)

// Task is one named query. Source identifies it in adapter errors.
type Task struct {
	Source string
	Run    func(ctx context.Context) ([]string, error)
}

// Run executes tasks with at most limit running at once (no bound when limit
// is not positive) and waits for all of them. Values of successful tasks are
// unioned. A failing task never affects the others: its error is returned as
// a model.AdapterError, unless it wraps model.ErrExpectedAbsence, in which
// case it is dropped. If ctx is done when the tasks finish, Run returns a
// *model.CancellationError and no data.
func Run(ctx context.Context, limit int, tasks []Task) (model.StringSet, []model.AdapterError, error) {
	logger := zerolog.Ctx(ctx)

	values := make([][]string, len(tasks))
	errs := make([]error, len(tasks))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			values[i], errs[i] = task.Run(ctx)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, &model.CancellationError{Err: err}
	}

	merged := model.NewStringSet()
	var failures []model.AdapterError
	for i, task := range tasks {
		switch err := errs[i]; {
		case err == nil:
			merged.AddAll(values[i])
		case errors.Is(err, model.ErrExpectedAbsence):
			logger.Debug().Str("source", task.Source).Err(err).Msg("optional source skipped")
		default:
			logger.Debug().Str("source", task.Source).Err(err).Msg("source failed")
			failures = append(failures, model.AdapterError{Source: task.Source, Err: err})
		}
	}

	return merged, failures, nil
}
