package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/finstmt/analyzer/internal/fetcher"
)

// StatementSource fetches raw statements for a ticker.
type StatementSource interface {
	FetchStatements(ctx context.Context, ticker, frequency string) (*fetcher.Statements, error)
}

// Service manages statement snapshot generation and retrieval.
type Service struct {
	source    StatementSource
	repo      Repository
	frequency string
}

// NewService creates a snapshot service. All refreshes fetch statements at
// the given frequency ("annual" or "quarterly").
func NewService(source StatementSource, repo Repository, frequency string) *Service {
	if frequency == "" {
		frequency = fetcher.FrequencyAnnual
	}
	return &Service{source: source, repo: repo, frequency: frequency}
}

// Refresh fetches fresh statements for the ticker and stores them under the
// given snapshot date. Unknown tickers are registered on first refresh.
func (s *Service) Refresh(ctx context.Context, symbol string, date time.Time) (*fetcher.Statements, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("empty ticker symbol")
	}

	tickerID, err := s.repo.EnsureTicker(ctx, symbol, "")
	if err != nil {
		return nil, fmt.Errorf("registering ticker: %w", err)
	}

	stmts, err := s.source.FetchStatements(ctx, symbol, s.frequency)
	if err != nil {
		return nil, fmt.Errorf("fetching statements: %w", err)
	}

	data, err := json.Marshal(stmts)
	if err != nil {
		return nil, fmt.Errorf("marshaling statements: %w", err)
	}

	if err := s.repo.Save(ctx, tickerID, date, data); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	return stmts, nil
}

// GetLatest retrieves the most recent snapshot for the ticker.
func (s *Service) GetLatest(ctx context.Context, symbol string) (*Snapshot, error) {
	return s.repo.GetLatest(ctx, strings.ToUpper(symbol))
}

// GetByDate retrieves a snapshot for a specific date.
func (s *Service) GetByDate(ctx context.Context, symbol string, date time.Time) (*Snapshot, error) {
	return s.repo.GetByDate(ctx, strings.ToUpper(symbol), date)
}

// List retrieves recent snapshots for the ticker.
func (s *Service) List(ctx context.Context, symbol string, limit int) ([]Snapshot, error) {
	return s.repo.List(ctx, strings.ToUpper(symbol), limit)
}

// Statements decodes the raw statements payload stored in a snapshot.
func Statements(s *Snapshot) (*fetcher.Statements, error) {
	var stmts fetcher.Statements
	if err := json.Unmarshal(s.Data, &stmts); err != nil {
		return nil, fmt.Errorf("parsing snapshot data: %w", err)
	}
	return &stmts, nil
}
