package concurrent

import (
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

// WorkerFunc processes one item, reporting progress messages, a result on
// success or an error on failure.
type WorkerFunc[T any, R any] func(item T, messages chan<- string, results chan<- R, errors chan<- error)

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	MaxConcurrency int    // 0 means unlimited
	LogPrefix      string // prefix for progress log lines
}

// Runner fans a slice of items out to a bounded set of goroutines and
// collects their results and errors.
type Runner[T any, R any] struct {
	config RunnerConfig
}

func NewRunner[T any, R any](config RunnerConfig) *Runner[T, R] {
	if config.LogPrefix == "" {
		config.LogPrefix = "Runner"
	}
	return &Runner[T, R]{config: config}
}

// RunResult aggregates a run.
type RunResult[R any] struct {
	Results []R
	Errors  []error
}

// Run executes the worker for every item, at most MaxConcurrency at a
// time, and returns once all items finished.
func (r *Runner[T, R]) Run(items []T, worker WorkerFunc[T, R]) RunResult[R] {
	if len(items) == 0 {
		return RunResult[R]{Results: []R{}, Errors: []error{}}
	}

	messages := make(chan string)
	results := make(chan R)
	errors := make(chan error)

	var collectorsWg sync.WaitGroup
	collectorsWg.Add(3)

	go func() {
		defer collectorsWg.Done()
		for message := range messages {
			r.logInfo(message)
		}
	}()

	var resultsList []R
	go func() {
		defer collectorsWg.Done()
		for result := range results {
			resultsList = append(resultsList, result)
		}
	}()

	var errorsList []error
	go func() {
		defer collectorsWg.Done()
		for err := range errors {
			errorsList = append(errorsList, err)
		}
	}()

	var throttle chan struct{}
	if r.config.MaxConcurrency > 0 {
		throttle = make(chan struct{}, r.config.MaxConcurrency)
	}

	var workersWg sync.WaitGroup
	for _, item := range items {
		workersWg.Add(1)
		if throttle != nil {
			throttle <- struct{}{}
		}
		go func(item T) {
			defer workersWg.Done()
			if throttle != nil {
				defer func() { <-throttle }()
			}
			worker(item, messages, results, errors)
		}(item)
	}

	workersWg.Wait()
	close(messages)
	close(results)
	close(errors)
	collectorsWg.Wait()

	return RunResult[R]{Results: resultsList, Errors: errorsList}
}

func (r *Runner[T, R]) logInfo(message string) {
	log.Info(fmt.Sprintf("%s: %s", r.config.LogPrefix, message))
}
