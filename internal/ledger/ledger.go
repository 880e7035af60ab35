// Package ledger keeps the product catalog, the available stock and the sold
// log consistent with each other.
//
// Every operation loads the tables it needs from the Store, validates its
// input, computes the new table contents and only then persists them. A
// rejected operation never writes. Operations are serialised by the Ledger,
// so one Ledger value may be shared by several callers.
package ledger

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/dyluth/fily/internal/ordering"
	"go.uber.org/zap"
)

// Ledger applies bookkeeping operations to a Store.
type Ledger struct {
	mu     sync.Mutex
	store  Store
	logger *zap.Logger
}

// New creates a Ledger over store. A nil logger disables logging.
func New(store Store, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{store: store, logger: logger}
}

var idSuffix = regexp.MustCompile(`(\d+)$`)

// nextProductID mints {TypeCode}{GenderCode}{NN}: the highest numeric suffix
// among IDs with the same prefix plus one, or 01 for a new prefix.
func nextProductID(products []Product, prefix string) string {
	highest := 0
	for _, p := range products {
		if !strings.HasPrefix(p.ID, prefix) {
			continue
		}
		m := idSuffix.FindStringSubmatch(p.ID)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%02d", prefix, highest+1)
}

func validateDetails(d Details) error {
	if ordering.Initial(d.Type) == "" {
		return &ValidationError{Field: "type", Reason: "type is required"}
	}
	if ordering.Initial(d.Gender) == "" {
		return &ValidationError{Field: "gender", Reason: "gender is required"}
	}
	if d.Cost.IsNegative() {
		return &ValidationError{Field: "cost", Reason: "amount must not be negative"}
	}
	if d.ExpectedPrice.IsNegative() {
		return &ValidationError{Field: "expected price", Reason: "amount must not be negative"}
	}
	return nil
}

// AddProduct registers a new product and stocks one row per distinct size,
// counting repeated labels as extra units.
func (l *Ledger) AddProduct(ctx context.Context, in NewProduct) (Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := validateDetails(in.Details); err != nil {
		return Product{}, err
	}
	tallies := tallySizes(cleanSizes(in.Sizes))
	if len(tallies) == 0 {
		return Product{}, &ValidationError{Field: "sizes", Reason: "at least one size is required"}
	}

	products, err := l.store.Products(ctx)
	if err != nil {
		return Product{}, fmt.Errorf("failed to load products: %w", err)
	}
	stock, err := l.store.Stock(ctx)
	if err != nil {
		return Product{}, fmt.Errorf("failed to load stock: %w", err)
	}

	prefix := ordering.Initial(in.Type) + ordering.Initial(in.Gender)
	product := Product{
		ID:      nextProductID(products, prefix),
		Details: in.Details,
	}
	for _, t := range tallies {
		product.Sizes = append(product.Sizes, t.size)
		product.Count += t.count
	}

	if err := l.store.SaveProducts(ctx, append(products, product)); err != nil {
		return Product{}, fmt.Errorf("failed to save products: %w", err)
	}
	if err := l.store.SaveStock(ctx, append(stock, stockRowsFor(product, tallies)...)); err != nil {
		return Product{}, fmt.Errorf("failed to save stock: %w", err)
	}

	l.logger.Info("product added",
		zap.String("product_id", product.ID),
		zap.Strings("sizes", product.Sizes),
		zap.Int("units", product.Count),
		zap.String("trip", product.Trip))
	return product, nil
}

func cleanSizes(sizes []string) []string {
	out := make([]string, 0, len(sizes))
	for _, s := range sizes {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ModifyProduct overwrites the given catalog fields and regenerates the
// product's stock rows from its size list.
//
// Regeneration starts from the size list alone: every remaining-count the
// product had in stock is discarded. With new Sizes the counts come from the
// label occurrences in that list and the catalog Count is recomputed; without
// them each current size is restocked with one unit.
func (l *Ledger) ModifyProduct(ctx context.Context, id string, upd ProductUpdate) (Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	products, err := l.store.Products(ctx)
	if err != nil {
		return Product{}, fmt.Errorf("failed to load products: %w", err)
	}
	idx := slices.IndexFunc(products, func(p Product) bool { return p.ID == id })
	if idx < 0 {
		return Product{}, &NotFoundError{Kind: "product", ID: id}
	}
	stock, err := l.store.Stock(ctx)
	if err != nil {
		return Product{}, fmt.Errorf("failed to load stock: %w", err)
	}

	p := products[idx]
	p.Sizes = slices.Clone(p.Sizes)
	applyString(&p.Type, upd.Type)
	applyString(&p.Gender, upd.Gender)
	applyString(&p.Brand, upd.Brand)
	applyString(&p.Name, upd.Name)
	applyString(&p.Color, upd.Color)
	applyString(&p.Trip, upd.Trip)
	if upd.Cost != nil {
		p.Cost = *upd.Cost
	}
	if upd.ExpectedPrice != nil {
		p.ExpectedPrice = *upd.ExpectedPrice
	}
	if err := validateDetails(p.Details); err != nil {
		return Product{}, err
	}

	var tallies []sizeTally
	if upd.Sizes != nil {
		tallies = tallySizes(cleanSizes(upd.Sizes))
		if len(tallies) == 0 {
			return Product{}, &ValidationError{Field: "sizes", Reason: "at least one size is required"}
		}
		p.Sizes, p.Count = nil, 0
		for _, t := range tallies {
			p.Sizes = append(p.Sizes, t.size)
			p.Count += t.count
		}
	} else {
		tallies = tallySizes(p.Sizes)
	}
	products[idx] = p

	kept := slices.DeleteFunc(stock, func(r StockRow) bool { return r.ID == id })
	kept = append(kept, stockRowsFor(p, tallies)...)

	if err := l.store.SaveProducts(ctx, products); err != nil {
		return Product{}, fmt.Errorf("failed to save products: %w", err)
	}
	if err := l.store.SaveStock(ctx, kept); err != nil {
		return Product{}, fmt.Errorf("failed to save stock: %w", err)
	}

	l.logger.Info("product modified",
		zap.String("product_id", p.ID),
		zap.Strings("sizes", p.Sizes),
		zap.Int("units", p.Count))
	return p, nil
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// DeleteProduct removes a product from the catalog and the stock. The sold
// log keeps its snapshots. Nothing changes unless confirmed is true.
func (l *Ledger) DeleteProduct(ctx context.Context, id string, confirmed bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	products, err := l.store.Products(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	if !slices.ContainsFunc(products, func(p Product) bool { return p.ID == id }) {
		return &NotFoundError{Kind: "product", ID: id}
	}
	if !confirmed {
		return ErrNotConfirmed
	}
	stock, err := l.store.Stock(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stock: %w", err)
	}

	products = slices.DeleteFunc(products, func(p Product) bool { return p.ID == id })
	stock = slices.DeleteFunc(stock, func(r StockRow) bool { return r.ID == id })

	if err := l.store.SaveProducts(ctx, products); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}
	if err := l.store.SaveStock(ctx, stock); err != nil {
		return fmt.Errorf("failed to save stock: %w", err)
	}

	l.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}
