// Package normalize maps raw, inconsistently-keyed per-period statement
// records into the canonical schema. It is a pure transformation: no I/O,
// no retained state.
package normalize

import (
	"sort"
	"strings"

	"github.com/finstmt/analyzer/internal/domain"
)

// Normalize resolves each canonical field of every raw record through the
// alias table and returns one CanonicalPeriod per record, sorted ascending by
// fiscal period. For each field the aliases are tried in order and the first
// label match wins; a field with no matching label, or whose matched value is
// not numeric, is left absent rather than zeroed.
//
// Two records sharing a fiscal period is a caller error and yields an
// AmbiguousPeriodError with no partial output.
func Normalize(records []domain.RawStatementRecord, aliases AliasTable) ([]domain.CanonicalPeriod, error) {
	if len(records) == 0 {
		return nil, nil
	}

	seen := make(map[domain.Period]bool, len(records))
	periods := make([]domain.CanonicalPeriod, 0, len(records))

	for _, rec := range records {
		if seen[rec.Period] {
			return nil, &domain.AmbiguousPeriodError{Period: rec.Period}
		}
		seen[rec.Period] = true
		periods = append(periods, normalizeRecord(rec, aliases))
	}

	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period.Before(periods[j].Period)
	})

	return periods, nil
}

func normalizeRecord(rec domain.RawStatementRecord, aliases AliasTable) domain.CanonicalPeriod {
	// Index raw labels under their folded form; the first occurrence of a
	// label that folds to the same key wins.
	labels := make(map[string]string, len(rec.Lines))
	for label, value := range rec.Lines {
		key := foldLabel(label)
		if _, ok := labels[key]; !ok {
			labels[key] = value
		}
	}

	period := domain.NewCanonicalPeriod(rec.Period)
	for _, field := range domain.Fields() {
		for _, alias := range aliases[field] {
			raw, ok := labels[foldLabel(alias)]
			if !ok {
				continue
			}
			if v, numeric := domain.ParseAmount(raw); numeric {
				period.Set(field, v)
			}
			// First label match decides the field, even when its value
			// is a non-numeric sentinel and the field stays absent.
			break
		}
	}
	return period
}

// foldLabel lowercases a label and collapses runs of whitespace so that
// provider spelling variations like "Total  assets" still match.
func foldLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}
