package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action is the side of a transaction.
type Action string

const (
	Buy  Action = "Buy"
	Sell Action = "Sell"
)

// Literals written by the first version of the ledger.
const (
	legacyBuy  = "Покупка"
	legacySell = "Продажа"
)

// ParseAction resolves s to Buy or Sell. Matching is case-insensitive and
// also accepts the legacy literals found in older ledger files.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", strings.ToLower(legacyBuy):
		return Buy, nil
	case "sell", strings.ToLower(legacySell):
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown action %q", s)
	}
}

func (a Action) String() string { return string(a) }

// Valid reports whether a is Buy or Sell.
func (a Action) Valid() bool { return a == Buy || a == Sell }

// Sign returns +1 for Buy and -1 for Sell.
func (a Action) Sign() int64 {
	if a == Sell {
		return -1
	}
	return 1
}

// MarshalJSON refuses to write anything but Buy or Sell, so a saved ledger
// always loads again.
func (a Action) MarshalJSON() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("unknown action %q", string(a))
	}
	return json.Marshal(string(a))
}

// UnmarshalJSON normalizes the stored literal to Buy or Sell.
func (a *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("action must be a string: %w", err)
	}
	parsed, err := ParseAction(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
