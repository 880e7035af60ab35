package menu

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dyluth/fily/internal/ledger"
	"github.com/dyluth/fily/internal/store"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2024, time.November, 15, 12, 0, 0, 0, time.UTC) }

type session struct {
	ledger *ledger.Ledger
	store  *store.Memory
	hooks  Hooks
}

func newSession(t *testing.T) *session {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	s := store.NewMemory()
	return &session{ledger: ledger.New(s, nil), store: s, hooks: Hooks{Now: fixedNow}}
}

func (s *session) seed(t *testing.T, sizes ...string) ledger.Product {
	t.Helper()
	p, err := s.ledger.AddProduct(context.Background(), ledger.NewProduct{
		Details: ledger.Details{
			Type:          "H",
			Gender:        "W",
			Brand:         "Nike",
			Name:          "Club Fleece",
			Color:         "Grey",
			Cost:          ledger.MoneyFromInt(30),
			ExpectedPrice: ledger.MoneyFromInt(55),
			Trip:          "T1",
		},
		Sizes: sizes,
	})
	require.NoError(t, err)
	return p
}

// run feeds the given answers, one per line, and returns everything printed.
func (s *session) run(t *testing.T, answers ...string) string {
	t.Helper()
	var out bytes.Buffer
	input := strings.NewReader(strings.Join(answers, "\n") + "\n")
	require.NoError(t, New(s.ledger, input, &out, s.hooks, nil).Run(context.Background()))
	return out.String()
}

func TestRun_MenuAndExit(t *testing.T) {
	s := newSession(t)
	out := s.run(t, "12")

	assert.Contains(t, out, "1. Add Product\n")
	assert.Contains(t, out, "6. Create HTML Report of Available Items\n")
	assert.Contains(t, out, "12. Exit\n")
	assert.Contains(t, out, "Goodbye!")
}

func TestRun_EndOfInputExits(t *testing.T) {
	s := newSession(t)
	out := s.run(t, "1", "Hoodie")
	assert.Contains(t, out, "Goodbye!")

	products, err := s.store.Products(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestRun_CancelWhileWaitingForInput(t *testing.T) {
	s := newSession(t)
	in, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- New(s.ledger, in, &out, s.hooks, nil).Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("menu did not return after cancel")
	}
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestAddProduct_GenderPromptListsCodes(t *testing.T) {
	s := newSession(t)
	out := s.run(t, "1", "H", "NG", "Nike", "Tech", "Black", "30", "60", "T1", "M", "12")
	assert.Contains(t, out, "K=Kids, J=Jordans, NG=No Gender")

	products, err := s.store.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "HN01", products[0].ID)
}

func TestRun_InvalidChoice(t *testing.T) {
	s := newSession(t)
	out := s.run(t, "abc", "13", "12")
	assert.Equal(t, 2, strings.Count(out, "Invalid choice. Please try again."))
}

func TestAddProduct(t *testing.T) {
	s := newSession(t)
	out := s.run(t,
		"1", "Hoodie", "Women", "Nike", "Club Fleece", "Grey", "30", "55", "T1", "S, M, M",
		"2",
		"12",
	)

	assert.Contains(t, out, "✓ Product HW01 added: Club Fleece, 3 units (S, M)")
	assert.Contains(t, out, "2 rows, 3 units in stock")

	products, err := s.store.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "T1", products[0].Trip)
}

func TestAddProduct_InvalidPriceReturnsToMenu(t *testing.T) {
	s := newSession(t)
	out := s.run(t,
		"1", "Hoodie", "Women", "Nike", "Club Fleece", "Grey", "thirty",
		"12",
	)

	assert.Contains(t, out, "Invalid input")
	assert.Contains(t, out, "Invalid cost: not a decimal number: thirty.")
	assert.Contains(t, out, "Goodbye!")

	products, err := s.store.Products(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestSellItem(t *testing.T) {
	t.Run("records the sale with today's date", func(t *testing.T) {
		s := newSession(t)
		p := s.seed(t, "M", "S")
		out := s.run(t, "3", p.ID, "M", "", "60", "Ana", "paid cash", "12")

		assert.Contains(t, out, "Available sizes: S, M")
		assert.Contains(t, out, "✓ Sold HW01 size M for $60 (profit $30)")

		sales, err := s.store.Sales(context.Background())
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, "2024-11-15", sales[0].SellingDate.String())
		assert.Equal(t, "paid cash", sales[0].Notes)
	})

	t.Run("unavailable size is reported", func(t *testing.T) {
		s := newSession(t)
		p := s.seed(t, "M", "S")
		out := s.run(t, "3", p.ID, "XL", "2024-11-02", "50", "Ana", "", "12")

		assert.Contains(t, out, "Size not available")
		assert.Contains(t, out, "Available sizes: M, S")

		sales, err := s.store.Sales(context.Background())
		require.NoError(t, err)
		assert.Empty(t, sales)
	})

	t.Run("unknown product stops before the size prompt", func(t *testing.T) {
		s := newSession(t)
		out := s.run(t, "3", "XX01", "12")

		assert.Contains(t, out, "Not found")
		assert.Contains(t, out, `Product "XX01" not found.`)
		assert.NotContains(t, out, "Size sold")
	})
}

func TestProfitReports(t *testing.T) {
	s := newSession(t)
	p := s.seed(t, "M", "S")
	_, err := s.ledger.SellItem(context.Background(), ledger.SaleInput{
		ProductID:   p.ID,
		Size:        "M",
		SellingDate: ledger.NewDate(2024, time.November, 30),
		FinalPrice:  ledger.MoneyFromInt(50),
	})
	require.NoError(t, err)

	out := s.run(t, "4", "5", "2024-11-01", "2024-11-30", "5", "30/11/2024", "2024-11-30", "8", "12")

	assert.Contains(t, out, "$110")
	assert.Contains(t, out, "Net profit from 2024-11-01 to 2024-11-30")
	assert.Contains(t, out, "Net profit: $20")
	assert.Contains(t, out, "Invalid start date")
	assert.Contains(t, out, "1 sale, $20 profit")
}

func TestModifyProduct(t *testing.T) {
	s := newSession(t)
	p := s.seed(t, "M", "L")

	out := s.run(t,
		"9", p.ID, "", "", "", "Tech Fleece", "", "", "", "70", "S, M, M",
		"12",
	)
	assert.Contains(t, out, "Brand [Nike]: ")
	assert.Contains(t, out, "Sizes [M, L]: ")
	assert.Contains(t, out, "✓ Product HW01 updated: 3 units (S, M)")

	updated, err := s.ledger.Product(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tech Fleece", updated.Name)
	assert.Equal(t, "Nike", updated.Brand)
	assert.Equal(t, "70", updated.ExpectedPrice.String())
	assert.Equal(t, "30", updated.Cost.String())

	sizes, err := s.ledger.AvailableSizes(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "M"}, sizes)
}

func TestDeleteProduct(t *testing.T) {
	s := newSession(t)
	p := s.seed(t, "M")

	out := s.run(t, "10", p.ID, "n", "12")
	assert.Contains(t, out, "Delete HW01 (Nike Club Fleece)? This cannot be undone [y/N]: ")
	assert.Contains(t, out, "Deletion cancelled.")
	_, err := s.ledger.Product(context.Background(), p.ID)
	require.NoError(t, err)

	out = s.run(t, "10", p.ID, "yes", "12")
	assert.Contains(t, out, "✓ Product HW01 deleted")
	_, err = s.ledger.Product(context.Background(), p.ID)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestModifySale(t *testing.T) {
	s := newSession(t)
	p := s.seed(t, "M", "S")
	_, err := s.ledger.SellItem(context.Background(), ledger.SaleInput{
		ProductID:   p.ID,
		Size:        "M",
		SellingDate: ledger.NewDate(2024, time.November, 2),
		FinalPrice:  ledger.MoneyFromInt(60),
		Customer:    "Ana",
	})
	require.NoError(t, err)

	out := s.run(t, "11", p.ID, "S", "", "45", "", "swapped size", "12")
	assert.Contains(t, out, "Customer [Ana]: ")
	assert.Contains(t, out, "✓ Sale of HW01 updated: size S, $45 on 2024-11-02")

	sale, err := s.ledger.Sale(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "S", sale.SizeSold)
	assert.Equal(t, "Ana", sale.Customer)
	assert.Equal(t, "swapped size", sale.Notes)

	out = s.run(t, "11", "JM01", "12")
	assert.Contains(t, out, `Sale "JM01" not found.`)
}

func TestPublishAndSearchHooks(t *testing.T) {
	s := newSession(t)
	s.seed(t, "M", "S")

	var rendered, published []ledger.StockRow
	var searched string
	s.hooks.Render = func(stock []ledger.StockRow) ([]string, error) {
		rendered = stock
		return []string{"/tmp/index.html", "/tmp/catalogue.html"}, nil
	}
	s.hooks.Publish = func(_ context.Context, stock []ledger.StockRow) (string, error) {
		published = stock
		return "Catalogue published", nil
	}
	s.hooks.SearchPage = func(term string, matches []ledger.StockRow) (string, error) {
		searched = term
		return "/tmp/search_results.html", nil
	}

	out := s.run(t, "6", "7", "fleece", "12")
	assert.Len(t, rendered, 2)
	assert.Len(t, published, 2)
	assert.Contains(t, out, "✓ Wrote /tmp/index.html\n✓ Wrote /tmp/catalogue.html\n✓ Catalogue published")
	assert.Equal(t, "fleece", searched)
	assert.Contains(t, out, "✓ Search results written to /tmp/search_results.html")
}

func TestPublish_FailureKeepsRenderedPages(t *testing.T) {
	s := newSession(t)
	s.seed(t, "M")

	var order []string
	s.hooks.Render = func([]ledger.StockRow) ([]string, error) {
		order = append(order, "render")
		return []string{"/tmp/index.html"}, nil
	}
	s.hooks.Publish = func(context.Context, []ledger.StockRow) (string, error) {
		order = append(order, "publish")
		return "", errors.New("publish.public.remote is not configured")
	}

	out := s.run(t, "6", "12")
	assert.Equal(t, []string{"render", "publish"}, order)
	assert.Contains(t, out, "✓ Wrote /tmp/index.html")
	assert.Contains(t, out, "Publish failed")
	assert.Contains(t, out, "publish.public.remote is not configured")
	assert.Contains(t, out, "The HTML pages were written.")
	assert.Contains(t, out, "Goodbye!")
}

func TestPublish_RenderFailureSkipsPush(t *testing.T) {
	s := newSession(t)
	s.seed(t, "M")

	pushed := false
	s.hooks.Render = func([]ledger.StockRow) ([]string, error) {
		return nil, errors.New("failed to create directory /readonly")
	}
	s.hooks.Publish = func(context.Context, []ledger.StockRow) (string, error) {
		pushed = true
		return "", nil
	}

	out := s.run(t, "6", "12")
	assert.False(t, pushed)
	assert.Contains(t, out, "Operation failed")
}

func TestPublish_NotConfigured(t *testing.T) {
	s := newSession(t)
	out := s.run(t, "6", "12")
	assert.Contains(t, out, "Publishing is not available in this session.")
}
