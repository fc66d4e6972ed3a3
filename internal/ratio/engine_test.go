package ratio

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finstmt/analyzer/internal/domain"
)

func period(t *testing.T, s string) domain.Period {
	t.Helper()
	p, err := domain.ParsePeriod(s)
	if err != nil {
		t.Fatalf("bad period %q: %v", s, err)
	}
	return p
}

func canonical(t *testing.T, ps string, fields map[domain.Field]int64) domain.CanonicalPeriod {
	t.Helper()
	p := domain.NewCanonicalPeriod(period(t, ps))
	for f, v := range fields {
		p.Set(f, decimal.NewFromInt(v))
	}
	return p
}

func TestComputeFullData(t *testing.T) {
	periods := []domain.CanonicalPeriod{
		canonical(t, "2022-12-31", map[domain.Field]int64{
			domain.FieldTotalAssets:        100,
			domain.FieldNetIncome:          10,
			domain.FieldShareholdersEquity: 50,
			domain.FieldCurrentAssets:      40,
			domain.FieldCurrentLiabilities: 20,
		}),
		canonical(t, "2023-12-31", map[domain.Field]int64{
			domain.FieldTotalAssets:        120,
			domain.FieldNetIncome:          15,
			domain.FieldShareholdersEquity: 0,
			domain.FieldCurrentAssets:      50,
			domain.FieldCurrentLiabilities: 0,
		}),
	}

	report, err := Compute(periods)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(report.Results))
	}

	// Period 0: everything computable.
	assertRatio(t, report.Results[0], ROA, "0.1")
	assertRatio(t, report.Results[0], ROE, "0.2")
	assertRatio(t, report.Results[0], CurrentRatio, "2")

	// Period 1: ROA fine, ROE and Current Ratio undefined via zero denominators.
	assertRatio(t, report.Results[1], ROA, "0.125")
	assertUndefined(t, report.Results[1], ROE)
	assertUndefined(t, report.Results[1], CurrentRatio)

	// ROA trend: delta 0.025, pct 25%.
	roaTrends := report.TrendsFor(ROA)
	if len(roaTrends) != 1 {
		t.Fatalf("got %d ROA trends, want 1", len(roaTrends))
	}
	assertDecimal(t, "ROA delta", roaTrends[0].Delta, "0.025")
	assertDecimal(t, "ROA pct", roaTrends[0].Pct, "0.25")

	// ROE and Current Ratio trends undefined: current value undefined.
	for _, id := range []int{ROE, CurrentRatio} {
		trends := report.TrendsFor(id)
		if len(trends) != 1 {
			t.Fatalf("ratio %d: got %d trends, want 1", id, len(trends))
		}
		if trends[0].Defined() {
			t.Errorf("ratio %d trend should be undefined", id)
		}
		if trends[0].Pct != nil {
			t.Errorf("ratio %d trend pct should be nil", id)
		}
	}
}

func TestComputeMissingFieldIsUndefinedNotZero(t *testing.T) {
	periods := []domain.CanonicalPeriod{
		canonical(t, "2023-12-31", map[domain.Field]int64{
			domain.FieldTotalAssets: 100,
			// net income absent
		}),
	}

	report, err := Compute(periods)
	if err != nil {
		t.Fatalf("missing fields are data gaps, not errors: %v", err)
	}

	roa, ok := report.Results[0].Get(ROA)
	if !ok {
		t.Fatal("ROA must appear in the result set even when undefined")
	}
	if roa.Defined() {
		t.Errorf("ROA = %s, want undefined", roa.Value)
	}
}

func TestComputeZeroDenominatorRegardlessOfNumerator(t *testing.T) {
	periods := []domain.CanonicalPeriod{
		canonical(t, "2023-12-31", map[domain.Field]int64{
			domain.FieldNetIncome:   0,
			domain.FieldTotalAssets: 0,
		}),
	}

	report, err := Compute(periods)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertUndefined(t, report.Results[0], ROA)
}

func TestComputeNegativeDenominator(t *testing.T) {
	periods := []domain.CanonicalPeriod{
		canonical(t, "2023-12-31", map[domain.Field]int64{
			domain.FieldNetIncome:          10,
			domain.FieldShareholdersEquity: -50,
		}),
	}

	report, err := Compute(periods)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Negative equity is meaningful; only exactly-zero denominators are gaps.
	assertRatio(t, report.Results[0], ROE, "-0.2")
}

func TestComputeQuickRatio(t *testing.T) {
	periods := []domain.CanonicalPeriod{
		canonical(t, "2023-12-31", map[domain.Field]int64{
			domain.FieldCurrentAssets:      50,
			domain.FieldInventory:          10,
			domain.FieldCurrentLiabilities: 20,
		}),
	}

	report, err := Compute(periods)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertRatio(t, report.Results[0], QuickRatio, "2")

	// Without inventory the quick ratio has a missing numerator component.
	periods[0] = canonical(t, "2023-12-31", map[domain.Field]int64{
		domain.FieldCurrentAssets:      50,
		domain.FieldCurrentLiabilities: 20,
	})
	report, err = Compute(periods)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertUndefined(t, report.Results[0], QuickRatio)
}

func TestComputeSinglePeriodHasNoTrends(t *testing.T) {
	periods := []domain.CanonicalPeriod{
		canonical(t, "2023-12-31", map[domain.Field]int64{
			domain.FieldNetIncome:   10,
			domain.FieldTotalAssets: 100,
		}),
	}

	report, err := Compute(periods)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Trends) != 0 {
		t.Errorf("got %d trends for single period, want 0", len(report.Trends))
	}
}

func TestComputeTrendCountPerRatio(t *testing.T) {
	var periods []domain.CanonicalPeriod
	for _, p := range []string{"2020-12-31", "2021-12-31", "2022-12-31", "2023-12-31"} {
		periods = append(periods, canonical(t, p, map[domain.Field]int64{
			domain.FieldNetIncome:   10,
			domain.FieldTotalAssets: 100,
		}))
	}

	report, err := Compute(periods)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, def := range Definitions() {
		trends := report.TrendsFor(def.ID)
		if len(trends) != len(periods)-1 {
			t.Errorf("%s: got %d trends, want %d", def.Name, len(trends), len(periods)-1)
		}
		for i := 1; i < len(trends); i++ {
			if !trends[i-1].To.Before(trends[i].To) {
				t.Errorf("%s: trends out of chronological order", def.Name)
			}
		}
	}
}

func TestComputeTrendPctUndefinedOnZeroPrior(t *testing.T) {
	periods := []domain.CanonicalPeriod{
		canonical(t, "2022-12-31", map[domain.Field]int64{
			domain.FieldNetIncome:   0,
			domain.FieldTotalAssets: 100,
		}),
		canonical(t, "2023-12-31", map[domain.Field]int64{
			domain.FieldNetIncome:   10,
			domain.FieldTotalAssets: 100,
		}),
	}

	report, err := Compute(periods)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	trends := report.TrendsFor(ROA)
	if len(trends) != 1 {
		t.Fatalf("got %d trends, want 1", len(trends))
	}
	assertDecimal(t, "delta", trends[0].Delta, "0.1")
	if trends[0].Pct != nil {
		t.Errorf("pct = %s, want undefined on zero prior", trends[0].Pct)
	}
}

func TestComputeTrendPctUsesAbsolutePrior(t *testing.T) {
	periods := []domain.CanonicalPeriod{
		canonical(t, "2022-12-31", map[domain.Field]int64{
			domain.FieldNetIncome:          -10,
			domain.FieldShareholdersEquity: 50,
		}),
		canonical(t, "2023-12-31", map[domain.Field]int64{
			domain.FieldNetIncome:          10,
			domain.FieldShareholdersEquity: 50,
		}),
	}

	report, err := Compute(periods)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	trends := report.TrendsFor(ROE)
	// delta = 0.2 - (-0.2) = 0.4; pct = 0.4 / |-0.2| = 2
	assertDecimal(t, "delta", trends[0].Delta, "0.4")
	assertDecimal(t, "pct", trends[0].Pct, "2")
}

func TestComputeUnsortedInput(t *testing.T) {
	periods := []domain.CanonicalPeriod{
		canonical(t, "2023-12-31", nil),
		canonical(t, "2022-12-31", nil),
	}

	_, err := Compute(periods)
	var violation *domain.InvariantViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("error = %v, want *domain.InvariantViolationError", err)
	}
}

func TestComputeDuplicateCanonicalPeriod(t *testing.T) {
	periods := []domain.CanonicalPeriod{
		canonical(t, "2023-12-31", nil),
		canonical(t, "2023-12-31", nil),
	}

	_, err := Compute(periods)
	var violation *domain.InvariantViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("error = %v, want *domain.InvariantViolationError", err)
	}
}

func TestComputeEmptyInput(t *testing.T) {
	report, err := Compute(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 0 || len(report.Trends) != 0 {
		t.Error("empty input should yield an empty report")
	}
}

func assertRatio(t *testing.T, r Result, id int, want string) {
	t.Helper()
	v, ok := r.Get(id)
	if !ok {
		t.Fatalf("ratio %d missing from result", id)
	}
	assertDecimal(t, v.Name, v.Value, want)
}

func assertUndefined(t *testing.T, r Result, id int) {
	t.Helper()
	v, ok := r.Get(id)
	if !ok {
		t.Fatalf("ratio %d missing from result", id)
	}
	if v.Defined() {
		t.Errorf("%s = %s, want undefined", v.Name, v.Value)
	}
}

func assertDecimal(t *testing.T, name string, got *decimal.Decimal, want string) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s is undefined, want %s", name, want)
	}
	w, _ := decimal.NewFromString(want)
	if !got.Equal(w) {
		t.Errorf("%s = %s, want %s", name, got, w)
	}
}
