package ledger

import (
	"context"
	"fmt"
	"strings"
)

// Product returns the catalog record for id.
func (l *Ledger) Product(ctx context.Context, id string) (Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	products, err := l.store.Products(ctx)
	if err != nil {
		return Product{}, fmt.Errorf("failed to load products: %w", err)
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, &NotFoundError{Kind: "product", ID: id}
}

// Products returns the whole catalog.
func (l *Ledger) Products(ctx context.Context) ([]Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	products, err := l.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

// AvailableStock returns every stock row.
func (l *Ledger) AvailableStock(ctx context.Context) ([]StockRow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stock, err := l.store.Stock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}
	return stock, nil
}

// AvailableSizes lists the in-stock sizes of a product.
func (l *Ledger) AvailableSizes(ctx context.Context, id string) ([]string, error) {
	stock, err := l.AvailableStock(ctx)
	if err != nil {
		return nil, err
	}
	sizes := sizesOf(stock, id)
	if len(sizes) == 0 {
		return nil, &NotFoundError{Kind: "product", ID: id}
	}
	return sizes, nil
}

// Search returns the stock rows whose name contains term, ignoring case.
// A blank term matches everything.
func (l *Ledger) Search(ctx context.Context, term string) ([]StockRow, error) {
	stock, err := l.AvailableStock(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return stock, nil
	}
	var matches []StockRow
	for _, r := range stock {
		if strings.Contains(strings.ToLower(r.Name), term) {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

// Sales returns the sold log in recording order.
func (l *Ledger) Sales(ctx context.Context) ([]Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sales, err := l.store.Sales(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	return sales, nil
}

// Sale returns the first sold-log entry for productID.
func (l *Ledger) Sale(ctx context.Context, productID string) (Sale, error) {
	sales, err := l.Sales(ctx)
	if err != nil {
		return Sale{}, err
	}
	for _, s := range sales {
		if s.ID == productID {
			return s, nil
		}
	}
	return Sale{}, &NotFoundError{Kind: "sale", ID: productID}
}
