// Package worker runs the periodic refresh loop. The computation core holds
// no timers or background tasks; anything scheduled lives here.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/finstmt/analyzer/internal/fetcher"
)

// SnapshotRefresher fetches and stores fresh statements for a ticker.
type SnapshotRefresher interface {
	Refresh(ctx context.Context, symbol string, date time.Time) (*fetcher.Statements, error)
}

// AfterRefreshHook is called after each successful refresh.
type AfterRefreshHook interface {
	Export(ctx context.Context, stmts *fetcher.Statements) error
}

// RefreshWorker periodically refreshes statement snapshots for a fixed set
// of tickers.
type RefreshWorker struct {
	refresher SnapshotRefresher
	tickers   []string
	interval  time.Duration
	hook      AfterRefreshHook // optional
}

// NewRefreshWorker creates a RefreshWorker with an optional post-refresh hook.
func NewRefreshWorker(refresher SnapshotRefresher, tickers []string, interval time.Duration, hook AfterRefreshHook) *RefreshWorker {
	return &RefreshWorker{
		refresher: refresher,
		tickers:   tickers,
		interval:  interval,
		hook:      hook,
	}
}

// Run starts the refresh loop. It blocks until the context is cancelled.
func (w *RefreshWorker) Run(ctx context.Context) {
	if len(w.tickers) == 0 {
		slog.Info("RefreshWorker: no tickers configured, not starting")
		return
	}

	slog.Info("RefreshWorker: starting", "tickers", w.tickers, "interval", w.interval)

	// Refresh immediately on startup
	w.refreshAll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("RefreshWorker: shutting down")
			return
		case <-ticker.C:
			w.refreshAll(ctx)
		}
	}
}

// refreshAll refreshes every configured ticker. One ticker failing does not
// stop the others.
func (w *RefreshWorker) refreshAll(ctx context.Context) {
	date := utcDate()
	for _, symbol := range w.tickers {
		if ctx.Err() != nil {
			return
		}

		stmts, err := w.refresher.Refresh(ctx, symbol, date)
		if err != nil {
			slog.Error("RefreshWorker: refresh failed", "ticker", symbol, "error", err)
			continue
		}
		slog.Info("RefreshWorker: refresh completed", "ticker", symbol)
		w.runHook(ctx, stmts)
	}
}

func (w *RefreshWorker) runHook(ctx context.Context, stmts *fetcher.Statements) {
	if w.hook == nil {
		return
	}
	if err := w.hook.Export(ctx, stmts); err != nil {
		slog.Error("RefreshWorker: export hook failed", "ticker", stmts.Ticker, "error", err)
	} else {
		slog.Info("RefreshWorker: export hook completed", "ticker", stmts.Ticker)
	}
}

// utcDate returns the current date normalized to midnight UTC.
func utcDate() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
