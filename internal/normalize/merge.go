package normalize

import (
	"sort"

	"github.com/samber/lo"

	"github.com/finstmt/analyzer/internal/domain"
)

// MergeByPeriod combines canonical series from separate statement types
// (income statement, balance sheet) into one series keyed by fiscal period.
// When both sides carry the same field for the same period, the value from
// primary wins. The merged series is sorted ascending by period.
func MergeByPeriod(primary, secondary []domain.CanonicalPeriod) []domain.CanonicalPeriod {
	byPeriod := lo.SliceToMap(primary, func(p domain.CanonicalPeriod) (domain.Period, domain.CanonicalPeriod) {
		return p.Period, clonePeriod(p)
	})

	for _, p := range secondary {
		existing, ok := byPeriod[p.Period]
		if !ok {
			byPeriod[p.Period] = clonePeriod(p)
			continue
		}
		for field, value := range p.Values {
			if !existing.Has(field) {
				existing.Set(field, value)
			}
		}
	}

	merged := lo.Values(byPeriod)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Period.Before(merged[j].Period)
	})
	return merged
}

func clonePeriod(p domain.CanonicalPeriod) domain.CanonicalPeriod {
	out := domain.NewCanonicalPeriod(p.Period)
	for field, value := range p.Values {
		out.Set(field, value)
	}
	return out
}
