package main

import (
	"context"

	"github.com/shopspring/decimal"

	"investment-ledger-go/internal/client"
	"investment-ledger-go/internal/ledger"
	"investment-ledger-go/internal/models"
)

// backend is what the subcommands run against: the local ledger file or a
// running API server.
type backend interface {
	Create(ctx context.Context, d models.Draft) (models.Transaction, error)
	Update(ctx context.Context, id string, d models.Draft) (models.Transaction, error)
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, c ledger.Criteria) ([]models.Transaction, error)
	Summary(ctx context.Context) (ledger.Summary, error)
	Allocation(ctx context.Context) ([]ledger.AssetShare, error)
}

// localBackend works on the store directly. The service never blocks on
// anything it could cancel, so ctx is unused.
type localBackend struct {
	service *ledger.Service
}

func (b localBackend) Create(_ context.Context, d models.Draft) (models.Transaction, error) {
	return b.service.Create(d)
}

func (b localBackend) Update(_ context.Context, id string, d models.Draft) (models.Transaction, error) {
	return b.service.Update(id, d)
}

func (b localBackend) Delete(_ context.Context, id string) error {
	return b.service.Delete(id)
}

func (b localBackend) Query(_ context.Context, c ledger.Criteria) ([]models.Transaction, error) {
	return b.service.Query(c)
}

func (b localBackend) Summary(context.Context) (ledger.Summary, error) {
	return b.service.Summary()
}

func (b localBackend) Allocation(context.Context) ([]ledger.AssetShare, error) {
	transactions, err := b.service.List()
	if err != nil {
		return nil, err
	}
	return ledger.Allocation(transactions), nil
}

// remoteBackend sends every command to the API server.
type remoteBackend struct {
	client *client.Client
}

func (b remoteBackend) Create(ctx context.Context, d models.Draft) (models.Transaction, error) {
	return b.client.CreateTransaction(ctx, d)
}

func (b remoteBackend) Update(ctx context.Context, id string, d models.Draft) (models.Transaction, error) {
	return b.client.UpdateTransaction(ctx, id, d)
}

func (b remoteBackend) Delete(ctx context.Context, id string) error {
	return b.client.DeleteTransaction(ctx, id)
}

func (b remoteBackend) Query(ctx context.Context, c ledger.Criteria) ([]models.Transaction, error) {
	return b.client.ListTransactions(ctx, c)
}

func (b remoteBackend) Summary(ctx context.Context) (ledger.Summary, error) {
	stats, err := b.client.Statistics(ctx)
	if err != nil {
		return ledger.Summary{}, err
	}
	return ledger.Summary{
		NetTotal:         decimal.NewFromFloat(stats.NetTotal),
		AssetCount:       stats.AssetCount,
		TransactionCount: stats.TransactionCount,
	}, nil
}

func (b remoteBackend) Allocation(ctx context.Context) ([]ledger.AssetShare, error) {
	entries, err := b.client.Allocation(ctx)
	if err != nil {
		return nil, err
	}
	shares := make([]ledger.AssetShare, 0, len(entries))
	for _, e := range entries {
		shares = append(shares, ledger.AssetShare{
			Asset:      e.Asset,
			Total:      decimal.NewFromFloat(e.Total),
			Percentage: decimal.NewFromFloat(e.Percentage),
		})
	}
	return shares, nil
}
