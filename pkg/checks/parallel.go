package checks

import (
	"context"
	"fmt"
	"sync"
)

type parallelResult struct {
	index  int
	result *RunResult
	err    error
}

// RunAll runs files concurrently with at most maxConcurrency files in
// flight. Results are returned in the order of files; a file that
// could not run is left out and the first such error is returned.
func (r *Runner) RunAll(
	ctx context.Context,
	files []*File,
	inputPath string,
	maxConcurrency int,
) ([]*RunResult, error) {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	sem := make(chan struct{}, maxConcurrency)
	resultsCh := make(chan parallelResult, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(idx int, file *File) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				resultsCh <- parallelResult{index: idx, err: ctx.Err()}
				return
			}

			result, err := r.RunFile(ctx, file, inputPath)
			if err != nil {
				err = fmt.Errorf("check file %s: %w", file.Name, err)
			}
			resultsCh <- parallelResult{index: idx, result: result, err: err}
		}(i, f)
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	ordered := make([]*RunResult, len(files))
	var firstErr error
	for pr := range resultsCh {
		if pr.err != nil && firstErr == nil {
			firstErr = pr.err
		}
		ordered[pr.index] = pr.result
	}

	results := make([]*RunResult, 0, len(files))
	for _, res := range ordered {
		if res != nil {
			results = append(results, res)
		}
	}
	return results, firstErr
}
