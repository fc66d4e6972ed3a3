package normalize

import "github.com/finstmt/analyzer/internal/domain"

// AliasTable maps each canonical field to the source labels accepted for it,
// in match-priority order. It is supplied by the caller so different data
// providers' labeling conventions can be supported without code changes.
type AliasTable map[domain.Field][]string

// DefaultAliases returns the label variants used by Yahoo-Finance-style
// statement feeds. Matching is case-insensitive and whitespace-normalized,
// so only structurally distinct spellings need listing.
func DefaultAliases() AliasTable {
	return AliasTable{
		domain.FieldTotalAssets: {
			"Total Assets",
			"TotalAssets",
		},
		domain.FieldTotalLiabilities: {
			"Total Liabilities Net Minority Interest",
			"Total Liabilities",
			"Total Liab",
		},
		domain.FieldNetIncome: {
			"Net Income",
			"NetIncome",
			"Net Income Applicable To Common Stockholders",
			"Net Earnings",
		},
		domain.FieldRevenue: {
			"Total Revenue",
			"Revenue",
			"Operating Revenue",
		},
		domain.FieldCurrentAssets: {
			"Total Current Assets",
			"Current Assets",
		},
		domain.FieldCurrentLiabilities: {
			"Total Current Liabilities",
			"Current Liabilities",
		},
		domain.FieldShareholdersEquity: {
			"Total Stockholder Equity",
			"Stockholders Equity",
			"Total Equity",
			"Total Equity Gross Minority Interest",
		},
		domain.FieldInventory: {
			"Inventory",
			"Total Inventory",
		},
	}
}

// IdentityAliases returns a table mapping each canonical field to its own
// name, for input that is already canonically labeled.
func IdentityAliases() AliasTable {
	table := make(AliasTable, len(domain.Fields()))
	for _, f := range domain.Fields() {
		table[f] = []string{string(f)}
	}
	return table
}
