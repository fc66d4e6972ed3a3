package domain

import (
	"github.com/shopspring/decimal"
)

// Field is a canonical financial statement line item, independent of any one
// data provider's labeling.
type Field string

const (
	FieldTotalAssets        Field = "total_assets"
	FieldTotalLiabilities   Field = "total_liabilities"
	FieldNetIncome          Field = "net_income"
	FieldRevenue            Field = "revenue"
	FieldCurrentAssets      Field = "current_assets"
	FieldCurrentLiabilities Field = "current_liabilities"
	FieldShareholdersEquity Field = "shareholders_equity"
	FieldInventory          Field = "inventory"
)

// Fields returns all canonical fields in schema order.
func Fields() []Field {
	return []Field{
		FieldTotalAssets,
		FieldTotalLiabilities,
		FieldNetIncome,
		FieldRevenue,
		FieldCurrentAssets,
		FieldCurrentLiabilities,
		FieldShareholdersEquity,
		FieldInventory,
	}
}

// RawStatementRecord is one fiscal period of statement data as supplied by a
// data provider: arbitrary source-defined labels mapped to raw values. Labels
// are not guaranteed stable across periods or providers, and values may be
// non-numeric sentinels.
type RawStatementRecord struct {
	Period Period            `json:"period"`
	Lines  map[string]string `json:"lines"`
}

// CanonicalPeriod is the normalized representation of one fiscal period.
// A field missing from Values is absent, which is distinct from a zero value.
type CanonicalPeriod struct {
	Period Period                    `json:"period"`
	Values map[Field]decimal.Decimal `json:"values"`
}

// NewCanonicalPeriod creates an empty canonical period.
func NewCanonicalPeriod(p Period) CanonicalPeriod {
	return CanonicalPeriod{Period: p, Values: make(map[Field]decimal.Decimal)}
}

// Get returns the value for a canonical field and whether it is present.
func (c CanonicalPeriod) Get(f Field) (decimal.Decimal, bool) {
	v, ok := c.Values[f]
	return v, ok
}

// Set stores a value for a canonical field.
func (c CanonicalPeriod) Set(f Field, v decimal.Decimal) {
	c.Values[f] = v
}

// Has reports whether a canonical field is present.
func (c CanonicalPeriod) Has(f Field) bool {
	_, ok := c.Values[f]
	return ok
}
