// Package ratio derives financial ratios and period-over-period trends from
// canonical statement periods. The ratio set is closed: callers cannot
// register formulas at runtime.
package ratio

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finstmt/analyzer/internal/domain"
)

// Ratio IDs. Stable across releases; exporters and API clients key on them.
const (
	ROA          = 1
	ROE          = 2
	CurrentRatio = 3
	QuickRatio   = 4
)

// Term is one numerator component of a ratio definition.
type Term struct {
	Field    domain.Field
	Subtract bool
}

// Definition describes how one ratio is derived from canonical fields.
// The ratio is computable only when every numerator field and the denominator
// are present and the denominator is non-zero.
type Definition struct {
	ID          int
	Name        string
	Numerator   []Term
	Denominator domain.Field
}

// definitions is the closed set of supported ratios.
var definitions = map[int]Definition{
	ROA: {
		ID:          ROA,
		Name:        "ROA",
		Numerator:   []Term{{Field: domain.FieldNetIncome}},
		Denominator: domain.FieldTotalAssets,
	},
	ROE: {
		ID:          ROE,
		Name:        "ROE",
		Numerator:   []Term{{Field: domain.FieldNetIncome}},
		Denominator: domain.FieldShareholdersEquity,
	},
	CurrentRatio: {
		ID:          CurrentRatio,
		Name:        "Current Ratio",
		Numerator:   []Term{{Field: domain.FieldCurrentAssets}},
		Denominator: domain.FieldCurrentLiabilities,
	},
	QuickRatio: {
		ID:          QuickRatio,
		Name:        "Quick Ratio",
		Numerator:   []Term{{Field: domain.FieldCurrentAssets}, {Field: domain.FieldInventory, Subtract: true}},
		Denominator: domain.FieldCurrentLiabilities,
	},
}

// Definitions returns all ratio definitions ordered by ID.
func Definitions() []Definition {
	defs := make([]Definition, 0, len(definitions))
	for _, d := range definitions {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// Value is one ratio for one period. A nil Value marks the ratio as
// undefined — not computable from the available data — which is distinct
// from a computed zero.
type Value struct {
	ID    int              `json:"id"`
	Name  string           `json:"name"`
	Value *decimal.Decimal `json:"value"`
}

// Defined reports whether the ratio was computable.
func (v Value) Defined() bool { return v.Value != nil }

// Result holds all ratio values for one fiscal period, ordered by ratio ID.
type Result struct {
	Period domain.Period `json:"period"`
	Ratios []Value       `json:"ratios"`
}

// Get returns the value for a ratio ID within this result.
func (r Result) Get(id int) (Value, bool) {
	for _, v := range r.Ratios {
		if v.ID == id {
			return v, true
		}
	}
	return Value{}, false
}

// Trend is the change in one ratio across two adjacent fiscal periods.
// Delta and Pct are nil when either period's value is undefined; Pct is
// additionally nil when the prior value is zero.
type Trend struct {
	RatioID int              `json:"ratioId"`
	Name    string           `json:"name"`
	From    domain.Period    `json:"from"`
	To      domain.Period    `json:"to"`
	Delta   *decimal.Decimal `json:"delta"`
	Pct     *decimal.Decimal `json:"pct"`
}

// Defined reports whether the trend delta was computable.
func (t Trend) Defined() bool { return t.Delta != nil }

// Report is the full output of one engine run: one result row per period and
// one trend entry per ratio per adjacent period pair, both in chronological
// order (trends additionally grouped by ratio ID).
type Report struct {
	Results []Result `json:"results"`
	Trends  []Trend  `json:"trends"`
}

// TrendsFor returns the chronological trend series for one ratio.
func (r *Report) TrendsFor(id int) []Trend {
	var out []Trend
	for _, t := range r.Trends {
		if t.RatioID == id {
			out = append(out, t)
		}
	}
	return out
}
