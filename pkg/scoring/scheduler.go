package scoring

import (
	"context"
	"sync"
	"time"

	"ikigai-interview-be/pkg/rubric"

	"golang.org/x/sync/errgroup"
)

// Task is one (message, category) scoring unit of the batch.
type Task struct {
	MessageIndex  int
	Category      rubric.Category
	ContextText   string
	TargetMessage string
}

// TaskResult tags a unit's judgments with its origin so attribution never
// depends on completion order.
type TaskResult struct {
	MessageIndex int
	CategoryID   string
	Items        []JudgedItem
}

// Scheduler executes scoring tasks in fixed-size slices with a bounded
// number of in-flight generation calls and a pause between slices, pacing
// the upstream rate limit.
type Scheduler struct {
	scorer      CategoryScorer
	concurrency int
	pause       time.Duration
}

func NewScheduler(scorer CategoryScorer, concurrency int, pause time.Duration) *Scheduler {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Scheduler{scorer: scorer, concurrency: concurrency, pause: pause}
}

// Run executes all tasks. A single unrecoverable task failure aborts the
// whole batch; partial-progress durability belongs to the per-message
// path, not here.
func (s *Scheduler) Run(ctx context.Context, tasks []Task) ([]TaskResult, error) {
	results := make([]TaskResult, 0, len(tasks))
	var mu sync.Mutex

	for start := 0; start < len(tasks); start += s.concurrency {
		end := start + s.concurrency
		if end > len(tasks) {
			end = len(tasks)
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, task := range tasks[start:end] {
			task := task
			g.Go(func() error {
				items, err := s.scorer.ScoreCategory(gctx, task.ContextText, task.TargetMessage, task.Category)
				if err != nil {
					return err
				}
				mu.Lock()
				results = append(results, TaskResult{
					MessageIndex: task.MessageIndex,
					CategoryID:   task.Category.ID,
					Items:        items,
				})
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		if end < len(tasks) && s.pause > 0 {
			select {
			case <-time.After(s.pause):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return results, nil
}

// GroupByMessage folds tagged task results into per-message partial
// results keyed by message index.
func GroupByMessage(results []TaskResult, messages map[int]string) map[int]*PartialResult {
	partials := make(map[int]*PartialResult)
	for _, r := range results {
		partial, ok := partials[r.MessageIndex]
		if !ok {
			partial = &PartialResult{
				MessageIndex:   r.MessageIndex,
				MessageContent: messages[r.MessageIndex],
				Judgments:      make(map[string][]JudgedItem),
			}
			partials[r.MessageIndex] = partial
		}
		partial.Judgments[r.CategoryID] = r.Items
	}
	return partials
}
