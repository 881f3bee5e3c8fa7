package ledger

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"investment-ledger-go/internal/models"
)

func tx(asset string, action models.Action, cost float64) models.Transaction {
	return models.Transaction{Asset: asset, Action: action, TotalCost: cost}
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestAggregation_Scenario(t *testing.T) {
	transactions := []models.Transaction{
		tx("AAPL", models.Buy, 1000),
		tx("AAPL", models.Sell, 400),
		tx("TSLA", models.Buy, 600),
	}

	assert.True(t, NetTotal(transactions).Equal(dec(1200)))
	assert.Equal(t, 2, AssetCount(transactions))
	assert.Equal(t, 3, TransactionCount(transactions))

	totals := AssetTotals(transactions)
	assert.Len(t, totals, 2)
	assert.True(t, totals["AAPL"].Equal(dec(600)))
	assert.True(t, totals["TSLA"].Equal(dec(600)))

	percentages := Percentages(totals)
	assert.True(t, percentages["AAPL"].Equal(dec(50)), percentages["AAPL"].String())
	assert.True(t, percentages["TSLA"].Equal(dec(50)), percentages["TSLA"].String())
}

func TestAggregation_Empty(t *testing.T) {
	assert.True(t, NetTotal(nil).IsZero())
	assert.Equal(t, 0, AssetCount(nil))
	assert.Equal(t, 0, TransactionCount(nil))
	assert.Empty(t, AssetTotals(nil))
	assert.Empty(t, Percentages(AssetTotals(nil)))
	assert.Empty(t, Allocation(nil))
}

func TestPercentages_ZeroSum(t *testing.T) {
	transactions := []models.Transaction{
		tx("AAPL", models.Buy, 500),
		tx("AAPL", models.Sell, 500),
		tx("TSLA", models.Buy, 300),
		tx("TSLA", models.Sell, 300),
	}

	percentages := Percentages(AssetTotals(transactions))
	assert.Len(t, percentages, 2)
	for asset, p := range percentages {
		assert.True(t, p.IsZero(), asset)
	}
}

func TestPercentages_SignedSum(t *testing.T) {
	totals := map[string]decimal.Decimal{
		"AAPL": dec(300),
		"TSLA": dec(-100),
	}

	percentages := Percentages(totals)
	assert.True(t, percentages["AAPL"].Equal(dec(150)))
	assert.True(t, percentages["TSLA"].Equal(dec(-50)))
}

func TestAllocation_SortedByAsset(t *testing.T) {
	transactions := []models.Transaction{
		tx("TSLA", models.Buy, 600),
		tx("AAPL", models.Buy, 1000),
		tx("AAPL", models.Sell, 400),
	}

	shares := Allocation(transactions)
	if assert.Len(t, shares, 2) {
		assert.Equal(t, "AAPL", shares[0].Asset)
		assert.Equal(t, "TSLA", shares[1].Asset)
		assert.True(t, shares[0].Total.Equal(dec(600)))
		assert.True(t, shares[1].Percentage.Equal(dec(50)))
	}
}

func TestSummarize(t *testing.T) {
	transactions := []models.Transaction{
		tx("AAPL", models.Buy, 10.1),
		tx("AAPL", models.Buy, 20.2),
		tx("KSPI", models.Sell, 0.3),
	}

	summary := Summarize(transactions)
	assert.True(t, summary.NetTotal.Equal(decimal.RequireFromString("30")), summary.NetTotal.String())
	assert.Equal(t, 2, summary.AssetCount)
	assert.Equal(t, 3, summary.TransactionCount)
}

// randomLedger builds a deterministic pseudo-random collection.
func randomLedger(seed int64, n int) []models.Transaction {
	r := rand.New(rand.NewSource(seed))
	assets := []string{"AAPL", "TSLA", "KSPI", "HSBK", "KZTO"}
	brokers := []string{"Freedom", "Halyk", "Jusan"}
	transactions := make([]models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		action := models.Buy
		if r.Intn(3) == 0 {
			action = models.Sell
		}
		transactions = append(transactions, models.Transaction{
			ID:        fmt.Sprintf("id-%d", i),
			Asset:     assets[r.Intn(len(assets))],
			Broker:    brokers[r.Intn(len(brokers))],
			Action:    action,
			TotalCost: float64(r.Intn(100000)) / 100,
		})
	}
	return transactions
}

func TestAggregation_Properties(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		transactions := randomLedger(seed, int(seed)*7)

		sum := decimal.Zero
		for _, v := range AssetTotals(transactions) {
			sum = sum.Add(v)
		}
		assert.True(t, NetTotal(transactions).Equal(sum), "seed %d", seed)

		distinct := make(map[string]bool)
		for _, tr := range transactions {
			distinct[tr.Asset] = true
		}
		assert.Equal(t, len(distinct), AssetCount(transactions), "seed %d", seed)
		assert.Equal(t, len(Assets(transactions)), AssetCount(transactions), "seed %d", seed)
	}
}
