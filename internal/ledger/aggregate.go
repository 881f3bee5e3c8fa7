package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"investment-ledger-go/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Summary holds the figures shown on the overview cards.
type Summary struct {
	NetTotal         decimal.Decimal
	AssetCount       int
	TransactionCount int
}

// AssetShare is one slice of the allocation chart.
type AssetShare struct {
	Asset      string
	Total      decimal.Decimal
	Percentage decimal.Decimal
}

// signedCost is +total_cost for a Buy and -total_cost for a Sell.
func signedCost(t models.Transaction) decimal.Decimal {
	return decimal.NewFromFloat(t.TotalCost).Mul(decimal.NewFromInt(t.Action.Sign()))
}

// NetTotal is the cash deployed: buys minus sells, at transaction prices.
func NetTotal(transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(signedCost(t))
	}
	return total
}

// AssetCount returns the number of distinct assets.
func AssetCount(transactions []models.Transaction) int {
	seen := make(map[string]struct{})
	for _, t := range transactions {
		seen[t.Asset] = struct{}{}
	}
	return len(seen)
}

// TransactionCount returns the number of records.
func TransactionCount(transactions []models.Transaction) int {
	return len(transactions)
}

// AssetTotals returns the signed cost summed per asset.
func AssetTotals(transactions []models.Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		totals[t.Asset] = totals[t.Asset].Add(signedCost(t))
	}
	return totals
}

// Percentages expresses each asset total as a percentage of the signed sum
// of all totals. Every asset gets 0 when that sum is zero.
func Percentages(totals map[string]decimal.Decimal) map[string]decimal.Decimal {
	sum := decimal.Zero
	for _, v := range totals {
		sum = sum.Add(v)
	}

	out := make(map[string]decimal.Decimal, len(totals))
	for asset, v := range totals {
		if sum.IsZero() {
			out[asset] = decimal.Zero
			continue
		}
		out[asset] = v.Div(sum).Mul(hundred)
	}
	return out
}

// Summarize computes the overview figures in one pass over the collection.
func Summarize(transactions []models.Transaction) Summary {
	return Summary{
		NetTotal:         NetTotal(transactions),
		AssetCount:       AssetCount(transactions),
		TransactionCount: TransactionCount(transactions),
	}
}

// Allocation returns one share per asset, ordered by asset.
func Allocation(transactions []models.Transaction) []AssetShare {
	totals := AssetTotals(transactions)
	percentages := Percentages(totals)

	shares := make([]AssetShare, 0, len(totals))
	for asset, total := range totals {
		shares = append(shares, AssetShare{
			Asset:      asset,
			Total:      total,
			Percentage: percentages[asset],
		})
	}
	sort.Slice(shares, func(i, j int) bool { return shares[i].Asset < shares[j].Asset })
	return shares
}
