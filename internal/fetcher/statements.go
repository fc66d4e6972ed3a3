package fetcher

import "github.com/finstmt/analyzer/internal/domain"

// Statement frequencies accepted by the fundamentals API.
const (
	FrequencyAnnual    = "annual"
	FrequencyQuarterly = "quarterly"
)

// Statements is the raw fundamentals payload for one ticker: one raw record
// per fiscal period for each statement type. Line-item labels are whatever
// the provider uses; the normalizer resolves them against an alias table.
type Statements struct {
	Ticker          string                      `json:"ticker"`
	Frequency       string                      `json:"frequency"`
	IncomeStatement []domain.RawStatementRecord `json:"incomeStatement"`
	BalanceSheet    []domain.RawStatementRecord `json:"balanceSheet"`
	CashFlow        []domain.RawStatementRecord `json:"cashFlow,omitempty"`
}
