// Package analysis composes the normalizer and the ratio engine into one
// per-ticker analysis pipeline.
package analysis

import (
	"context"
	"fmt"

	"github.com/finstmt/analyzer/internal/domain"
	"github.com/finstmt/analyzer/internal/fetcher"
	"github.com/finstmt/analyzer/internal/normalize"
	"github.com/finstmt/analyzer/internal/ratio"
)

// StatementSource fetches raw statements for a ticker.
type StatementSource interface {
	FetchStatements(ctx context.Context, ticker, frequency string) (*fetcher.Statements, error)
}

// Report is the full analysis output for one ticker: the ratio table (one
// row per period) and trend annotations, ready for rendering or export.
type Report struct {
	Ticker    string         `json:"ticker"`
	Frequency string         `json:"frequency"`
	Results   []ratio.Result `json:"results"`
	Trends    []ratio.Trend  `json:"trends"`
}

// Service runs the analysis pipeline. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	source  StatementSource
	aliases normalize.AliasTable
}

// NewService creates an analysis service. A nil alias table selects the
// default provider labels.
func NewService(source StatementSource, aliases normalize.AliasTable) *Service {
	if aliases == nil {
		aliases = normalize.DefaultAliases()
	}
	return &Service{source: source, aliases: aliases}
}

// Analyze fetches both statement types for the ticker and derives the ratio
// report.
func (s *Service) Analyze(ctx context.Context, ticker, frequency string) (*Report, error) {
	stmts, err := s.source.FetchStatements(ctx, ticker, frequency)
	if err != nil {
		return nil, fmt.Errorf("fetching statements for %s: %w", ticker, err)
	}
	return s.AnalyzeStatements(stmts)
}

// AnalyzeStatements derives the ratio report from an already-fetched
// statements payload. Each statement type is normalized separately, merged by
// fiscal period, and handed to the ratio engine.
func (s *Service) AnalyzeStatements(stmts *fetcher.Statements) (*Report, error) {
	income, err := normalize.Normalize(stmts.IncomeStatement, s.aliases)
	if err != nil {
		return nil, fmt.Errorf("normalizing income statement: %w", err)
	}

	balance, err := normalize.Normalize(stmts.BalanceSheet, s.aliases)
	if err != nil {
		return nil, fmt.Errorf("normalizing balance sheet: %w", err)
	}

	merged := normalize.MergeByPeriod(income, balance)

	report, err := ratio.Compute(merged)
	if err != nil {
		return nil, fmt.Errorf("computing ratios for %s: %w", stmts.Ticker, err)
	}

	return &Report{
		Ticker:    stmts.Ticker,
		Frequency: stmts.Frequency,
		Results:   report.Results,
		Trends:    report.Trends,
	}, nil
}

// TrendsFor returns the chronological trend series for one ratio.
func (r *Report) TrendsFor(id int) []ratio.Trend {
	var out []ratio.Trend
	for _, t := range r.Trends {
		if t.RatioID == id {
			out = append(out, t)
		}
	}
	return out
}

// Periods returns the fiscal periods covered by the report, oldest first.
func (r *Report) Periods() []domain.Period {
	periods := make([]domain.Period, 0, len(r.Results))
	for _, res := range r.Results {
		periods = append(periods, res.Period)
	}
	return periods
}
