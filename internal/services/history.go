package services

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"shopassist/internal/domain"
	applog "shopassist/internal/log"
	"shopassist/internal/metrics"
)

const historyWriteTimeout = 5 * time.Second

// HistoryStore appends recommendation records.
type HistoryStore interface {
	Insert(ctx context.Context, id, query string, productIDs []int64, aiResponse string) error
}

// HistoryRecorder persists each served result in the background. A failed
// write never reaches the caller; it is logged and counted.
type HistoryRecorder struct {
	store    HistoryStore
	wg       sync.WaitGroup
	failures atomic.Uint64
}

func NewHistoryRecorder(store HistoryStore) *HistoryRecorder {
	return &HistoryRecorder{store: store}
}

// Record schedules the insert and returns immediately. Nothing is written
// when ctx is already done (the caller went away).
func (h *HistoryRecorder) Record(ctx context.Context, query string, res domain.RecommendationResult) {
	if ctx.Err() != nil {
		return
	}
	payload, err := json.Marshal(res)
	if err != nil {
		h.fail(ctx, err, query)
		return
	}
	ids := res.ProductIDs()
	id := uuid.NewString()

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyWriteTimeout)
		defer cancel()
		if err := h.store.Insert(wctx, id, query, ids, string(payload)); err != nil {
			h.fail(ctx, err, query)
		}
	}()
}

func (h *HistoryRecorder) fail(ctx context.Context, err error, query string) {
	h.failures.Add(1)
	metrics.RecordHistoryFailure()
	applog.ErrorCtx(ctx, "history.save.fail", err, map[string]any{"query": query})
}

// Failures is the number of writes that failed since start.
func (h *HistoryRecorder) Failures() uint64 { return h.failures.Load() }

// Wait blocks until in-flight writes finish.
func (h *HistoryRecorder) Wait() { h.wg.Wait() }
