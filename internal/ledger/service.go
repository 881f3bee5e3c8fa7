package ledger

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"investment-ledger-go/internal/models"
	"investment-ledger-go/internal/store"
)

var errOutOfRange = errors.New("value out of range")

// Service applies mutations to the ledger. Every mutation loads the full
// collection, changes it in memory and saves it back.
type Service struct {
	store  store.Store
	logger *zap.Logger
	newID  func() string
}

// NewService creates a ledger service on top of s.
func NewService(s store.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  s,
		logger: logger.Named("ledger"),
		newID:  uuid.NewString,
	}
}

// Build validates d and returns the transaction it describes under id.
// TotalCost is derived from the parsed quantity and price.
func Build(id string, d models.Draft) (models.Transaction, error) {
	quantity, err := strconv.ParseInt(strings.TrimSpace(d.Quantity), 10, 64)
	if err != nil {
		return models.Transaction{}, &ValidationError{Field: "quantity", Value: d.Quantity, Err: err}
	}
	price, err := decimal.NewFromString(strings.TrimSpace(d.PricePerShare))
	if err != nil {
		return models.Transaction{}, &ValidationError{Field: "price_per_share", Value: d.PricePerShare, Err: err}
	}
	total := decimal.NewFromInt(quantity).Mul(price)
	if math.IsInf(total.InexactFloat64(), 0) || math.IsInf(price.InexactFloat64(), 0) {
		return models.Transaction{}, &ValidationError{Field: "price_per_share", Value: d.PricePerShare, Err: errOutOfRange}
	}
	action, err := models.ParseAction(d.Action)
	if err != nil {
		return models.Transaction{}, &ValidationError{Field: "action", Value: d.Action, Err: err}
	}

	return models.Transaction{
		ID:             id,
		Date:           d.Date,
		CompanyName:    d.CompanyName,
		Asset:          d.Asset,
		Action:         action,
		Quantity:       quantity,
		PricePerShare:  price.InexactFloat64(),
		TotalCost:      total.InexactFloat64(),
		Currency:       d.Currency,
		Exchange:       d.Exchange,
		Broker:         d.Broker,
		SettlementDate: d.SettlementDate,
		DealNumber:     d.DealNumber,
	}, nil
}

func indexOf(transactions []models.Transaction, id string) int {
	for i, t := range transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Create validates d, appends it under a fresh id and saves the ledger.
// Nothing is written when validation fails.
func (s *Service) Create(d models.Draft) (models.Transaction, error) {
	tx, err := Build("", d)
	if err != nil {
		s.logger.Warn("Rejected new transaction", zap.Error(err))
		return models.Transaction{}, err
	}

	transactions, err := s.store.Load()
	if err != nil {
		return models.Transaction{}, fmt.Errorf("could not load ledger: %w", err)
	}

	tx.ID = s.newID()
	for indexOf(transactions, tx.ID) >= 0 {
		tx.ID = s.newID()
	}

	transactions = append(transactions, tx)
	if err := s.store.Save(transactions); err != nil {
		s.logger.Error("Failed to save ledger", zap.Error(err))
		return models.Transaction{}, fmt.Errorf("could not save ledger: %w", err)
	}

	s.logger.Info("Created transaction",
		zap.String("id", tx.ID),
		zap.String("asset", tx.Asset),
		zap.String("action", tx.Action.String()),
		zap.Float64("total_cost", tx.TotalCost))
	return tx, nil
}

// Update replaces the whole transaction with the given id by the one d
// describes; only the id is kept. It returns ErrNotFound when id is absent.
func (s *Service) Update(id string, d models.Draft) (models.Transaction, error) {
	tx, err := Build(id, d)
	if err != nil {
		s.logger.Warn("Rejected transaction update", zap.String("id", id), zap.Error(err))
		return models.Transaction{}, err
	}

	transactions, err := s.store.Load()
	if err != nil {
		return models.Transaction{}, fmt.Errorf("could not load ledger: %w", err)
	}

	i := indexOf(transactions, id)
	if i < 0 {
		return models.Transaction{}, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	transactions[i] = tx

	if err := s.store.Save(transactions); err != nil {
		s.logger.Error("Failed to save ledger", zap.Error(err))
		return models.Transaction{}, fmt.Errorf("could not save ledger: %w", err)
	}

	s.logger.Info("Updated transaction", zap.String("id", id), zap.Float64("total_cost", tx.TotalCost))
	return tx, nil
}

// Delete removes the transaction with the given id. Deleting an absent id
// is a no-op and leaves storage untouched.
func (s *Service) Delete(id string) error {
	transactions, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("could not load ledger: %w", err)
	}

	remaining := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.ID != id {
			remaining = append(remaining, t)
		}
	}
	if len(remaining) == len(transactions) {
		s.logger.Debug("Nothing to delete", zap.String("id", id))
		return nil
	}

	if err := s.store.Save(remaining); err != nil {
		s.logger.Error("Failed to save ledger", zap.Error(err))
		return fmt.Errorf("could not save ledger: %w", err)
	}

	s.logger.Info("Deleted transaction", zap.String("id", id))
	return nil
}

// List returns the full collection in stored order.
func (s *Service) List() ([]models.Transaction, error) {
	transactions, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("could not load ledger: %w", err)
	}
	return transactions, nil
}

// Get returns the transaction with the given id.
func (s *Service) Get(id string) (models.Transaction, error) {
	transactions, err := s.List()
	if err != nil {
		return models.Transaction{}, err
	}
	i := indexOf(transactions, id)
	if i < 0 {
		return models.Transaction{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return transactions[i], nil
}

// Query loads the ledger and returns the transactions matching c.
func (s *Service) Query(c Criteria) ([]models.Transaction, error) {
	transactions, err := s.List()
	if err != nil {
		return nil, err
	}
	return Filter(transactions, c), nil
}

// Summary loads the ledger and computes the overview figures.
func (s *Service) Summary() (Summary, error) {
	transactions, err := s.List()
	if err != nil {
		return Summary{}, err
	}
	return Summarize(transactions), nil
}
