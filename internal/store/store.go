// Package store persists the whole ledger as one snapshot.
//
// Every backend follows the same contract: Load returns the full ordered
// collection (empty, not an error, when nothing has been saved yet) and Save
// replaces the stored collection with the given one, all or nothing. There is
// no locking; a single writer is assumed.
package store

import (
	"fmt"

	"investment-ledger-go/internal/config"
	"investment-ledger-go/internal/database"
	"investment-ledger-go/internal/models"
)

// Store loads and saves the complete transaction collection.
type Store interface {
	Load() ([]models.Transaction, error)
	Save(transactions []models.Transaction) error
}

// checkActions rejects records whose action is missing or unknown. A record
// decoded without an "action" key would otherwise pass as the zero Action.
func checkActions(transactions []models.Transaction) error {
	for i, t := range transactions {
		if !t.Action.Valid() {
			return fmt.Errorf("transaction %d (id %q): missing or unknown action %q", i, t.ID, t.Action)
		}
	}
	return nil
}

// Open returns the backend selected by cfg.Driver.
func Open(cfg config.Storage) (Store, error) {
	switch cfg.Driver {
	case "", "json":
		return NewJSONStore(cfg.Path), nil
	case "sqlite":
		db, err := database.NewDatabase(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
