// Package store provides the ledger table backends: flat CSV files (the
// default), Redis, and an in-memory store for tests and dry runs.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/dyluth/fily/internal/ledger"
)

// Memory keeps the ledger tables in process memory.
type Memory struct {
	mu       sync.Mutex
	products []ledger.Product
	stock    []ledger.StockRow
	sales    []ledger.Sale
}

var _ ledger.Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Products(ctx context.Context) ([]ledger.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ledger.Product, len(m.products))
	for i, p := range m.products {
		p.Sizes = slices.Clone(p.Sizes)
		out[i] = p
	}
	return out, nil
}

func (m *Memory) SaveProducts(ctx context.Context, products []ledger.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = make([]ledger.Product, len(products))
	for i, p := range products {
		p.Sizes = slices.Clone(p.Sizes)
		m.products[i] = p
	}
	return nil
}

func (m *Memory) Stock(ctx context.Context) ([]ledger.StockRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.stock), nil
}

func (m *Memory) SaveStock(ctx context.Context, rows []ledger.StockRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Rows with no units left are not kept
	m.stock = slices.DeleteFunc(slices.Clone(rows), func(r ledger.StockRow) bool { return r.Count <= 0 })
	return nil
}

func (m *Memory) Sales(ctx context.Context) ([]ledger.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.sales), nil
}

func (m *Memory) SaveSales(ctx context.Context, sales []ledger.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales = slices.Clone(sales)
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
