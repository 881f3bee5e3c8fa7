package store

import (
	"fmt"

	"gorm.io/gorm"

	"investment-ledger-go/internal/database"
	"investment-ledger-go/internal/models"
)

// SQLiteStore keeps the ledger in a sqlite table. Save replaces every row
// inside one database transaction.
type SQLiteStore struct {
	db *gorm.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a store on an already migrated database.
func NewSQLiteStore(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load returns all rows in saved order.
func (s *SQLiteStore) Load() ([]models.Transaction, error) {
	var rows []database.TransactionRow
	if err := s.db.Order("position asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		action, err := models.ParseAction(row.Action)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", row.ID, err)
		}
		transactions = append(transactions, models.Transaction{
			ID:             row.ID,
			Date:           row.Date,
			CompanyName:    row.CompanyName,
			Asset:          row.Asset,
			Action:         action,
			Quantity:       row.Quantity,
			PricePerShare:  row.PricePerShare,
			TotalCost:      row.TotalCost,
			Currency:       row.Currency,
			Exchange:       row.Exchange,
			Broker:         row.Broker,
			SettlementDate: row.SettlementDate,
			DealNumber:     row.DealNumber,
		})
	}
	return transactions, nil
}

// Save replaces the stored collection.
func (s *SQLiteStore) Save(transactions []models.Transaction) error {
	if err := checkActions(transactions); err != nil {
		return fmt.Errorf("refusing to save transactions: %w", err)
	}

	rows := make([]database.TransactionRow, 0, len(transactions))
	for i, t := range transactions {
		rows = append(rows, database.TransactionRow{
			Position:       i,
			ID:             t.ID,
			Date:           t.Date,
			CompanyName:    t.CompanyName,
			Asset:          t.Asset,
			Action:         t.Action.String(),
			Quantity:       t.Quantity,
			PricePerShare:  t.PricePerShare,
			TotalCost:      t.TotalCost,
			Currency:       t.Currency,
			Exchange:       t.Exchange,
			Broker:         t.Broker,
			SettlementDate: t.SettlementDate,
			DealNumber:     t.DealNumber,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&database.TransactionRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 100).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	return nil
}
