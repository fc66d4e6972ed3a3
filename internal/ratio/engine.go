package ratio

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finstmt/analyzer/internal/domain"
)

// Compute derives every registered ratio for each canonical period, plus
// period-over-period trends. Input must be sorted ascending by period with no
// duplicates — the normalizer guarantees this, and a violation is an
// integration bug reported as InvariantViolationError.
//
// Missing fields and zero denominators are expected data gaps, never errors:
// the affected ratio is marked undefined and the rest of the computation
// proceeds.
func Compute(periods []domain.CanonicalPeriod) (*Report, error) {
	if err := validateOrder(periods); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(periods))
	for _, p := range periods {
		results = append(results, computePeriod(p))
	}

	return &Report{
		Results: results,
		Trends:  computeTrends(results),
	}, nil
}

func validateOrder(periods []domain.CanonicalPeriod) error {
	for i := 1; i < len(periods); i++ {
		prev, cur := periods[i-1].Period, periods[i].Period
		if cur == prev {
			return &domain.InvariantViolationError{
				Reason: fmt.Sprintf("duplicate period %s at index %d", cur, i),
			}
		}
		if cur.Before(prev) {
			return &domain.InvariantViolationError{
				Reason: fmt.Sprintf("period %s at index %d precedes %s", cur, i, prev),
			}
		}
	}
	return nil
}

func computePeriod(p domain.CanonicalPeriod) Result {
	defs := Definitions()
	values := make([]Value, 0, len(defs))
	for _, def := range defs {
		values = append(values, Value{
			ID:    def.ID,
			Name:  def.Name,
			Value: evaluate(def, p),
		})
	}
	return Result{Period: p.Period, Ratios: values}
}

// evaluate returns the ratio value, or nil when any required field is absent
// or the denominator is exactly zero. A negative denominator computes
// normally: negative ROE from negative equity is meaningful and surfaced.
func evaluate(def Definition, p domain.CanonicalPeriod) *decimal.Decimal {
	numerator := decimal.Zero
	for _, term := range def.Numerator {
		v, ok := p.Get(term.Field)
		if !ok {
			return nil
		}
		if term.Subtract {
			numerator = numerator.Sub(v)
		} else {
			numerator = numerator.Add(v)
		}
	}

	denominator, ok := p.Get(def.Denominator)
	if !ok || denominator.IsZero() {
		return nil
	}

	result := numerator.Div(denominator)
	return &result
}

// computeTrends builds one trend entry per ratio per adjacent period pair.
// The first period has no trend entry; that is the series boundary, not an
// error.
func computeTrends(results []Result) []Trend {
	if len(results) < 2 {
		return nil
	}

	var trends []Trend
	for _, def := range Definitions() {
		for i := 1; i < len(results); i++ {
			prev, _ := results[i-1].Get(def.ID)
			cur, _ := results[i].Get(def.ID)

			trend := Trend{
				RatioID: def.ID,
				Name:    def.Name,
				From:    results[i-1].Period,
				To:      results[i].Period,
			}

			if prev.Defined() && cur.Defined() {
				delta := cur.Value.Sub(*prev.Value)
				trend.Delta = &delta
				if !prev.Value.IsZero() {
					pct := delta.Div(prev.Value.Abs())
					trend.Pct = &pct
				}
			}

			trends = append(trends, trend)
		}
	}
	return trends
}
