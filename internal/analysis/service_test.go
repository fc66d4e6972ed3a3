package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/finstmt/analyzer/internal/domain"
	"github.com/finstmt/analyzer/internal/fetcher"
	"github.com/finstmt/analyzer/internal/ratio"
)

type stubSource struct {
	stmts *fetcher.Statements
	err   error
}

func (s *stubSource) FetchStatements(_ context.Context, _, _ string) (*fetcher.Statements, error) {
	return s.stmts, s.err
}

func record(t *testing.T, period string, lines map[string]string) domain.RawStatementRecord {
	t.Helper()
	p, err := domain.ParsePeriod(period)
	if err != nil {
		t.Fatalf("bad period %q: %v", period, err)
	}
	return domain.RawStatementRecord{Period: p, Lines: lines}
}

func TestAnalyzeMergesStatementTypes(t *testing.T) {
	stmts := &fetcher.Statements{
		Ticker:    "AAPL",
		Frequency: fetcher.FrequencyAnnual,
		IncomeStatement: []domain.RawStatementRecord{
			record(t, "2022-09-30", map[string]string{"Net Income": "99803"}),
			record(t, "2023-09-30", map[string]string{"Net Income": "96995"}),
		},
		BalanceSheet: []domain.RawStatementRecord{
			record(t, "2022-09-30", map[string]string{"Total Assets": "352755"}),
			record(t, "2023-09-30", map[string]string{"Total Assets": "352583"}),
		},
	}

	svc := NewService(&stubSource{stmts: stmts}, nil)
	report, err := svc.Analyze(context.Background(), "AAPL", fetcher.FrequencyAnnual)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Ticker != "AAPL" {
		t.Errorf("ticker = %q, want AAPL", report.Ticker)
	}
	if len(report.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(report.Results))
	}

	// ROA needs net income (income statement) and total assets (balance
	// sheet); it is computable only because the two series were merged.
	for i, res := range report.Results {
		roa, ok := res.Get(ratio.ROA)
		if !ok || !roa.Defined() {
			t.Errorf("result[%d]: ROA should be defined after merge", i)
		}
	}

	if len(report.TrendsFor(ratio.ROA)) != 1 {
		t.Errorf("got %d ROA trends, want 1", len(report.TrendsFor(ratio.ROA)))
	}
}

func TestAnalyzeFetchError(t *testing.T) {
	svc := NewService(&stubSource{err: errors.New("upstream down")}, nil)
	if _, err := svc.Analyze(context.Background(), "AAPL", ""); err == nil {
		t.Fatal("expected fetch error to propagate")
	}
}

func TestAnalyzeStatementsDuplicatePeriod(t *testing.T) {
	stmts := &fetcher.Statements{
		Ticker: "DUP",
		IncomeStatement: []domain.RawStatementRecord{
			record(t, "2023-12-31", map[string]string{"Net Income": "1"}),
			record(t, "2023-12-31", map[string]string{"Net Income": "2"}),
		},
	}

	svc := NewService(nil, nil)
	_, err := svc.AnalyzeStatements(stmts)
	var ambiguous *domain.AmbiguousPeriodError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("error = %v, want *domain.AmbiguousPeriodError", err)
	}
}

func TestAnalyzeStatementsEmpty(t *testing.T) {
	svc := NewService(nil, nil)
	report, err := svc.AnalyzeStatements(&fetcher.Statements{Ticker: "NEW"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 0 || len(report.Trends) != 0 {
		t.Error("empty statements should yield an empty report")
	}
}
