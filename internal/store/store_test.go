package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/fily/internal/ledger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDetails() ledger.Details {
	return ledger.Details{
		Type:          "H",
		Gender:        "W",
		Brand:         "Nike",
		Name:          "Club Fleece, Hoodie",
		Color:         "Grey",
		Cost:          ledger.MoneyFromInt(30),
		ExpectedPrice: ledger.MoneyFromInt(55),
		Trip:          "T1",
	}
}

// testRoundTrip saves one row in every table and reads them back.
func testRoundTrip(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	d := sampleDetails()

	products, err := s.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	require.NoError(t, s.SaveProducts(ctx, []ledger.Product{
		{ID: "HW01", Details: d, Sizes: []string{"S", "M"}, Count: 3},
	}))
	require.NoError(t, s.SaveStock(ctx, []ledger.StockRow{
		{ID: "HW01", Details: d, Size: "S", Count: 1},
		{ID: "HW01", Details: d, Size: "M", Count: 2},
		{ID: "HW01", Details: d, Size: "L", Count: 0},
	}))
	require.NoError(t, s.SaveSales(ctx, []ledger.Sale{
		{
			ID:          "HW01",
			Details:     d,
			Size:        "M",
			Count:       3,
			SellingDate: ledger.NewDate(2024, 11, 2),
			FinalPrice:  ledger.MoneyFromInt(60),
			Customer:    "Ana",
			Notes:       "paid cash",
			SizeSold:    "M",
		},
	}))

	products, err = s.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "HW01", products[0].ID)
	assert.Equal(t, "Club Fleece, Hoodie", products[0].Name)
	assert.Equal(t, []string{"S", "M"}, products[0].Sizes)
	assert.Equal(t, 3, products[0].Count)
	assert.True(t, products[0].Cost.Equal(ledger.MoneyFromInt(30)))

	stock, err := s.Stock(ctx)
	require.NoError(t, err)
	require.Len(t, stock, 2, "rows with no units are not persisted")
	assert.Equal(t, "S", stock[0].Size)
	assert.Equal(t, 2, stock[1].Count)

	sales, err := s.Sales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "2024-11-02", sales[0].SellingDate.String())
	assert.True(t, sales[0].FinalPrice.Equal(ledger.MoneyFromInt(60)))
	assert.Equal(t, "Ana", sales[0].Customer)
	assert.Equal(t, "M", sales[0].SizeSold)

	require.NoError(t, s.SaveSales(ctx, nil))
	sales, err = s.Sales(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestMemory_RoundTrip(t *testing.T) {
	testRoundTrip(t, NewMemory())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.SaveProducts(ctx, []ledger.Product{{ID: "SM01", Sizes: []string{"40"}}}))

	products, err := s.Products(ctx)
	require.NoError(t, err)
	products[0].Sizes[0] = "41"
	products[0].ID = "XX01"

	again, err := s.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SM01", again[0].ID)
	assert.Equal(t, []string{"40"}, again[0].Sizes)
}

func TestCSV_RoundTrip(t *testing.T) {
	s := NewCSV(t.TempDir())
	_, err := s.Bootstrap()
	require.NoError(t, err)
	testRoundTrip(t, s)
}

func setupRedisStore(t *testing.T) (*Redis, *miniredis.Miniredis) {
	mr := miniredis.NewMiniRedis()
	err := mr.Start()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	s, err := NewRedis(&redis.Options{Addr: mr.Addr()}, "test-shop")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s, mr
}

func TestRedis_RoundTrip(t *testing.T) {
	s, _ := setupRedisStore(t)
	testRoundTrip(t, s)
}

func TestRedis_KeysAreNamespaced(t *testing.T) {
	s, mr := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveProducts(ctx, []ledger.Product{{ID: "TM01", Details: sampleDetails(), Count: 1}}))

	assert.True(t, mr.Exists("fily:test-shop:products"))
	values, err := mr.List("fily:test-shop:products")
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Contains(t, values[0], `"id":"TM01"`)
	assert.Contains(t, values[0], `"cost":"30"`)
}

func TestNewRedis_RejectsEmptyNamespace(t *testing.T) {
	_, err := NewRedis(&redis.Options{Addr: "localhost:6379"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "namespace cannot be empty")
}

func TestRedis_Ping(t *testing.T) {
	s, _ := setupRedisStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
