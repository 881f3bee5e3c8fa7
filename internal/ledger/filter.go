package ledger

import (
	"sort"

	"investment-ledger-go/internal/models"
)

// Values that disable a criterion, as offered by the filter selectors.
// The empty string and the legacy sentinels disable a criterion too.
const (
	AllAssets  = "All assets"
	AllActions = "All actions"
	AllBrokers = "All brokers"
)

// Sentinels written by the first version of the ledger's selectors.
const (
	legacyAllAssets  = "Все активы"
	legacyAllActions = "Все действия"
	legacyAllBrokers = "Все брокеры"
)

// Criteria selects transactions. Each active field must match exactly.
type Criteria struct {
	Asset  string
	Action string
	Broker string
}

func active(value string, all ...string) bool {
	if value == "" {
		return false
	}
	for _, a := range all {
		if value == a {
			return false
		}
	}
	return true
}

// Match reports whether t satisfies every active criterion.
func (c Criteria) Match(t models.Transaction) bool {
	if active(c.Asset, AllAssets, legacyAllAssets) && t.Asset != c.Asset {
		return false
	}
	if active(c.Action, AllActions, legacyAllActions) {
		action, err := models.ParseAction(c.Action)
		if err != nil || t.Action != action {
			return false
		}
	}
	if active(c.Broker, AllBrokers, legacyAllBrokers) && t.Broker != c.Broker {
		return false
	}
	return true
}

// Filter returns the transactions matching c, in input order.
// The result is never nil.
func Filter(transactions []models.Transaction, c Criteria) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if c.Match(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Assets returns the sorted distinct assets of the collection.
func Assets(transactions []models.Transaction) []string {
	return distinct(transactions, func(t models.Transaction) string { return t.Asset })
}

// Brokers returns the sorted distinct brokers of the collection.
func Brokers(transactions []models.Transaction) []string {
	return distinct(transactions, func(t models.Transaction) string { return t.Broker })
}

func distinct(transactions []models.Transaction, key func(models.Transaction) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, t := range transactions {
		k := key(t)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, k)
	}
	sort.Strings(values)
	return values
}
