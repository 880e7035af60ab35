package ledger

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// SellItem records the sale of one unit of (ProductID, Size). The sold stock
// row is snapshotted into the sold log and its count decremented; a row that
// reaches zero is removed.
func (l *Ledger) SellItem(ctx context.Context, in SaleInput) (Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := strings.TrimSpace(in.ProductID)
	size := strings.TrimSpace(in.Size)
	if id == "" {
		return Sale{}, &ValidationError{Field: "product ID", Reason: "product ID is required"}
	}
	if in.SellingDate.IsZero() {
		return Sale{}, &ValidationError{Field: "selling date", Reason: "date is required (YYYY-MM-DD)"}
	}
	if in.FinalPrice.IsNegative() {
		return Sale{}, &ValidationError{Field: "final price", Reason: "amount must not be negative"}
	}

	stock, err := l.store.Stock(ctx)
	if err != nil {
		return Sale{}, fmt.Errorf("failed to load stock: %w", err)
	}
	sizes := sizesOf(stock, id)
	if len(sizes) == 0 {
		return Sale{}, &NotFoundError{Kind: "product", ID: id}
	}
	idx := slices.IndexFunc(stock, func(r StockRow) bool { return r.ID == id && r.Size == size })
	if idx < 0 {
		return Sale{}, &SizeUnavailableError{ProductID: id, Size: size, Available: sizes}
	}
	sales, err := l.store.Sales(ctx)
	if err != nil {
		return Sale{}, fmt.Errorf("failed to load sales: %w", err)
	}

	row := stock[idx]
	sale := Sale{
		ID:          row.ID,
		Details:     row.Details,
		Size:        row.Size,
		Count:       row.Count,
		SellingDate: in.SellingDate,
		FinalPrice:  in.FinalPrice,
		Customer:    in.Customer,
		Notes:       in.Notes,
		SizeSold:    size,
	}

	row.Count--
	if row.Count > 0 {
		stock[idx] = row
	} else {
		stock = slices.Delete(stock, idx, idx+1)
	}

	if err := l.store.SaveSales(ctx, append(sales, sale)); err != nil {
		return Sale{}, fmt.Errorf("failed to save sales: %w", err)
	}
	if err := l.store.SaveStock(ctx, stock); err != nil {
		return Sale{}, fmt.Errorf("failed to save stock: %w", err)
	}

	l.logger.Info("item sold",
		zap.String("product_id", id),
		zap.String("size", size),
		zap.Int("remaining", row.Count),
		zap.Stringer("final_price", sale.FinalPrice),
		zap.Stringer("selling_date", sale.SellingDate))
	return sale, nil
}

// sizesOf lists the in-stock sizes of a product in stock-row order.
func sizesOf(stock []StockRow, id string) []string {
	var sizes []string
	for _, r := range stock {
		if r.ID == id {
			sizes = append(sizes, r.Size)
		}
	}
	return sizes
}

// ModifySale overwrites fields of the first sold-log entry for productID.
//
// Sales are keyed by product ID only, so when a product was sold more than
// once only its earliest sale can be amended.
func (l *Ledger) ModifySale(ctx context.Context, productID string, upd SaleUpdate) (Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sales, err := l.store.Sales(ctx)
	if err != nil {
		return Sale{}, fmt.Errorf("failed to load sales: %w", err)
	}
	idx := slices.IndexFunc(sales, func(s Sale) bool { return s.ID == productID })
	if idx < 0 {
		return Sale{}, &NotFoundError{Kind: "sale", ID: productID}
	}

	s := sales[idx]
	applyString(&s.SizeSold, upd.SizeSold)
	applyString(&s.Customer, upd.Customer)
	applyString(&s.Notes, upd.Notes)
	if upd.SellingDate != nil {
		if upd.SellingDate.IsZero() {
			return Sale{}, &ValidationError{Field: "selling date", Reason: "date is required (YYYY-MM-DD)"}
		}
		s.SellingDate = *upd.SellingDate
	}
	if upd.FinalPrice != nil {
		if upd.FinalPrice.IsNegative() {
			return Sale{}, &ValidationError{Field: "final price", Reason: "amount must not be negative"}
		}
		s.FinalPrice = *upd.FinalPrice
	}
	sales[idx] = s

	if err := l.store.SaveSales(ctx, sales); err != nil {
		return Sale{}, fmt.Errorf("failed to save sales: %w", err)
	}

	l.logger.Info("sale modified",
		zap.String("product_id", productID),
		zap.String("size_sold", s.SizeSold),
		zap.Stringer("final_price", s.FinalPrice))
	return s, nil
}
