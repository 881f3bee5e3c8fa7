package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TransactionRow is the sqlite representation of a ledger transaction.
// Position keeps the collection order stable across saves.
type TransactionRow struct {
	Position       int    `gorm:"not null;index"`
	ID             string `gorm:"primaryKey"`
	Date           string
	CompanyName    string
	Asset          string `gorm:"index"`
	Action         string `gorm:"size:8;not null"`
	Quantity       int64
	PricePerShare  float64
	TotalCost      float64
	Currency       string `gorm:"size:8"`
	Exchange       string
	Broker         string `gorm:"index"`
	SettlementDate string
	DealNumber     string
}

// TableName specifies the table name for TransactionRow.
func (TransactionRow) TableName() string {
	return "transactions"
}

// NewDatabase opens the sqlite database at dsn and migrates the schema.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One connection: sqlite has a single writer, and in-memory databases
	// are private to the connection that created them.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate creates or updates the ledger tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&TransactionRow{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}
