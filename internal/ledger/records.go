package ledger

import (
	"context"
	"strings"
)

// Details are the descriptive fields a product carries into every stock row
// and sale snapshot.
type Details struct {
	Type          string `json:"type"`
	Gender        string `json:"gender"`
	Brand         string `json:"brand"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	Cost          Money  `json:"cost"`
	ExpectedPrice Money  `json:"expected_price"`
	Trip          string `json:"trip"`
}

// Product is a catalog record: one per product ID.
type Product struct {
	ID string `json:"id"`
	Details
	Sizes []string `json:"sizes"` // distinct size labels in entry order
	Count int      `json:"count"` // total units across all sizes
}

// StockRow is one sellable (product, size) entry with its remaining units.
type StockRow struct {
	ID string `json:"id"`
	Details
	Size  string `json:"size"`
	Count int    `json:"count"`
}

// Sale is an entry of the append-only sold log. It snapshots the stock row
// that was sold, including that row's count before the sale.
type Sale struct {
	ID string `json:"id"`
	Details
	Size        string       `json:"size"`
	Count       int          `json:"count"`
	SellingDate CalendarDate `json:"selling_date"`
	FinalPrice  Money        `json:"final_price"`
	Customer    string       `json:"customer"`
	Notes       string       `json:"notes"`
	SizeSold    string       `json:"size_sold"`
}

// Profit is what the sale made over the product cost.
func (s Sale) Profit() Money {
	return s.FinalPrice.Sub(s.Cost)
}

// NewProduct is the input of AddProduct. Sizes may repeat a label once per unit.
type NewProduct struct {
	Details
	Sizes []string
}

// SaleInput is the input of SellItem.
type SaleInput struct {
	ProductID   string
	Size        string
	SellingDate CalendarDate
	FinalPrice  Money
	Customer    string
	Notes       string
}

// ProductUpdate carries the catalog fields to overwrite. Nil fields keep their
// prior value. A nil Sizes keeps the current size list.
type ProductUpdate struct {
	Type          *string
	Gender        *string
	Brand         *string
	Name          *string
	Color         *string
	Cost          *Money
	ExpectedPrice *Money
	Trip          *string
	Sizes         []string
}

// SaleUpdate carries the sale fields to overwrite. Nil fields keep their prior value.
type SaleUpdate struct {
	SizeSold    *string
	SellingDate *CalendarDate
	FinalPrice  *Money
	Customer    *string
	Notes       *string
}

// Store owns the three ledger tables. Each Save replaces the whole table.
type Store interface {
	Products(ctx context.Context) ([]Product, error)
	SaveProducts(ctx context.Context, products []Product) error
	Stock(ctx context.Context) ([]StockRow, error)
	SaveStock(ctx context.Context, rows []StockRow) error
	Sales(ctx context.Context) ([]Sale, error)
	SaveSales(ctx context.Context, sales []Sale) error
}

// ParseSizes splits comma separated size input ("40, 41, 41") into trimmed
// labels. Blank entries are dropped.
func ParseSizes(s string) []string {
	var sizes []string
	for _, part := range strings.Split(s, ",") {
		if label := strings.TrimSpace(part); label != "" {
			sizes = append(sizes, label)
		}
	}
	return sizes
}

// JoinSizes is the inverse of ParseSizes.
func JoinSizes(sizes []string) string {
	return strings.Join(sizes, ", ")
}

type sizeTally struct {
	size  string
	count int
}

// tallySizes counts occurrences of each label, keeping first-seen order.
func tallySizes(sizes []string) []sizeTally {
	var tallies []sizeTally
	index := make(map[string]int)
	for _, s := range sizes {
		if i, ok := index[s]; ok {
			tallies[i].count++
			continue
		}
		index[s] = len(tallies)
		tallies = append(tallies, sizeTally{size: s, count: 1})
	}
	return tallies
}

func stockRowsFor(p Product, tallies []sizeTally) []StockRow {
	rows := make([]StockRow, 0, len(tallies))
	for _, t := range tallies {
		rows = append(rows, StockRow{ID: p.ID, Details: p.Details, Size: t.size, Count: t.count})
	}
	return rows
}
