// SPDX-License-Identifier: MIT
package translate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Result holds the outcome of one TranslateAll source.
type Result struct {
	Err    error
	Output string
}

// Batch translation errors.
var (
	ErrTranslateAll = errors.New("failed to translate all sources")
)

// TranslateAll translates independent sources concurrently on a goroutine pool.
//
// Results keep the order of sources; the returned error aggregates every failed source's.
func (t *Translator) TranslateAll(ctx context.Context, sources []string) (results []Result, err error) {
	results = make([]Result, len(sources))
	if len(sources) < 1 {
		return
	}

	pool, err := ants.NewPool(t.cfg.Workers, ants.WithLogger(t.cfg.Logger))
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrTranslateAll, err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup

submission:
	for index := range sources {
		select {
		case <-ctx.Done():
			// Unsubmitted sources fail with the context's error.
			for ; index < len(sources); index++ {
				results[index].Err = ctx.Err()
			}
			break submission
		default:
		}

		index := index
		wg.Add(1)
		if submitErr := pool.Submit(func() {
			defer wg.Done()

			output, translateErr := t.Translate(ctx, sources[index])
			results[index] = Result{Output: output, Err: translateErr}
		}); submitErr != nil {
			wg.Done()
			results[index].Err = submitErr
		}
	}
	wg.Wait()

	for index, result := range results {
		if result.Err == nil {
			continue
		}

		if err != nil {
			err = fmt.Errorf("%w, source %d: %w", err, index, result.Err)
		} else {
			err = fmt.Errorf("%w: source %d: %w", ErrTranslateAll, index, result.Err)
		}
	}

	if t.cfg.Debug {
		t.cfg.Logger.Debugf("translated %d sources on %d workers", len(sources), t.cfg.Workers)
	}

	return
}
