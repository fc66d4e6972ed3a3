package export

import (
	"context"
	"fmt"

	"github.com/finstmt/analyzer/internal/analysis"
	"github.com/finstmt/analyzer/internal/fetcher"
)

// ReportWriter writes an analysis report to a destination.
type ReportWriter interface {
	Write(ctx context.Context, report *analysis.Report) error
}

// Service analyzes refreshed statement payloads and delegates writing to a
// ReportWriter. Implements worker.AfterRefreshHook.
type Service struct {
	analyzer *analysis.Service
	writer   ReportWriter
}

// NewService creates a new export Service.
func NewService(analyzer *analysis.Service, writer ReportWriter) *Service {
	return &Service{analyzer: analyzer, writer: writer}
}

// Export derives the ratio report for the refreshed statements and writes it.
func (s *Service) Export(ctx context.Context, stmts *fetcher.Statements) error {
	report, err := s.analyzer.AnalyzeStatements(stmts)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", stmts.Ticker, err)
	}
	if err := s.writer.Write(ctx, report); err != nil {
		return fmt.Errorf("writing report for %s: %w", stmts.Ticker, err)
	}
	return nil
}
