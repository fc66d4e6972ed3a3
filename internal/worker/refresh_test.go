package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/finstmt/analyzer/internal/fetcher"
)

type stubRefresher struct {
	mu      sync.Mutex
	symbols []string
	failFor map[string]bool
}

func (s *stubRefresher) Refresh(_ context.Context, symbol string, _ time.Time) (*fetcher.Statements, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbols = append(s.symbols, symbol)
	if s.failFor[symbol] {
		return nil, errors.New("fetch failed")
	}
	return &fetcher.Statements{Ticker: symbol}, nil
}

func (s *stubRefresher) refreshed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.symbols...)
}

type stubHook struct {
	mu      sync.Mutex
	tickers []string
}

func (h *stubHook) Export(_ context.Context, stmts *fetcher.Statements) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tickers = append(h.tickers, stmts.Ticker)
	return nil
}

func (h *stubHook) exported() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.tickers...)
}

func TestRefreshWorkerInitialRefresh(t *testing.T) {
	refresher := &stubRefresher{}
	hook := &stubHook{}
	w := NewRefreshWorker(refresher, []string{"AAPL", "MSFT"}, time.Hour, hook)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	waitFor(t, func() bool { return len(refresher.refreshed()) == 2 })
	cancel()
	<-done

	got := refresher.refreshed()
	if got[0] != "AAPL" || got[1] != "MSFT" {
		t.Errorf("refreshed = %v, want [AAPL MSFT]", got)
	}
	if exported := hook.exported(); len(exported) != 2 {
		t.Errorf("hook called %d times, want 2", len(exported))
	}
}

func TestRefreshWorkerContinuesAfterFailure(t *testing.T) {
	refresher := &stubRefresher{failFor: map[string]bool{"AAPL": true}}
	hook := &stubHook{}
	w := NewRefreshWorker(refresher, []string{"AAPL", "MSFT"}, time.Hour, hook)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	waitFor(t, func() bool { return len(refresher.refreshed()) == 2 })
	cancel()
	<-done

	exported := hook.exported()
	if len(exported) != 1 || exported[0] != "MSFT" {
		t.Errorf("exported = %v, want [MSFT] (failed ticker skipped)", exported)
	}
}

func TestRefreshWorkerNoTickers(t *testing.T) {
	w := NewRefreshWorker(&stubRefresher{}, nil, time.Hour, nil)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker with no tickers should return immediately")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
