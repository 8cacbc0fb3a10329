package classify

import (
	"context"
	"sync"

	"github.com/sowonlabs/bunryu/internal/model"
)

// DefaultGroupSize bounds how many AI fallback calls run concurrently.
const DefaultGroupSize = 5

// BatchOptions configures a batch run.
type BatchOptions struct {
	// OnProgress, if set, is called after each group completes with the
	// number of processed items so far. Never called concurrently.
	OnProgress func(completed, total int)
	GroupSize  int
}

// ItemResult is the outcome for a single transaction in a batch.
type ItemResult struct {
	Err    error
	Result model.ClassifyResult
	Index  int
}

// BatchResult aggregates a batch run. One item's failure never aborts its
// siblings; every transaction gets an entry in Items.
type BatchResult struct {
	Items          []ItemResult
	Total          int
	Succeeded      int
	Failed         int
	RuleClassified int
	AIClassified   int
}

// ClassifyBatch classifies transactions in fixed-size concurrent groups.
// All items of a group are dispatched at once and the group is awaited in
// full before the next one starts, capping peak outstanding model calls.
// Cancellation is cooperative: the context is checked between groups, and
// an in-flight group drains; remaining items are recorded as failed with
// the context error.
func (c *Classifier) ClassifyBatch(ctx context.Context, txs []model.Transaction, in Input, opts BatchOptions) BatchResult {
	groupSize := opts.GroupSize
	if groupSize <= 0 {
		groupSize = DefaultGroupSize
	}

	result := BatchResult{
		Total: len(txs),
		Items: make([]ItemResult, len(txs)),
	}

	for start := 0; start < len(txs); start += groupSize {
		if err := ctx.Err(); err != nil {
			for i := start; i < len(txs); i++ {
				result.Items[i] = ItemResult{Index: i, Err: err}
			}
			break
		}

		end := start + groupSize
		if end > len(txs) {
			end = len(txs)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				res, err := c.Classify(ctx, txs[idx], in)
				result.Items[idx] = ItemResult{Index: idx, Result: res, Err: err}
			}(i)
		}
		wg.Wait()

		if opts.OnProgress != nil {
			opts.OnProgress(end, len(txs))
		}
	}

	for _, item := range result.Items {
		switch {
		case item.Err != nil:
			result.Failed++
		case item.Result.Method == model.MethodRule:
			result.Succeeded++
			result.RuleClassified++
		default:
			result.Succeeded++
			result.AIClassified++
		}
	}

	return result
}
