package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV_Bootstrap(t *testing.T) {
	t.Run("creates header-only files", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "data")
		s := NewCSV(dir)

		created, err := s.Bootstrap()
		require.NoError(t, err)
		assert.Len(t, created, 3)

		content, err := os.ReadFile(filepath.Join(dir, ProductsFile))
		require.NoError(t, err)
		assert.Equal(t, "ID,Type,Gender,Brand,Name,Color,Cost (USD),Expected Price (USD),Trip #,Sizes,Count\n", string(content))

		content, err = os.ReadFile(filepath.Join(dir, SoldFile))
		require.NoError(t, err)
		assert.Contains(t, string(content), "Count,Selling Date,Final Price,Customer,Notes,Size Sold\n")
	})

	t.Run("leaves existing files alone", func(t *testing.T) {
		dir := t.TempDir()
		existing := "ID,Name\nSM01,Dunk\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ProductsFile), []byte(existing), 0644))

		created, err := NewCSV(dir).Bootstrap()
		require.NoError(t, err)
		assert.Len(t, created, 2)

		content, err := os.ReadFile(filepath.Join(dir, ProductsFile))
		require.NoError(t, err)
		assert.Equal(t, existing, string(content))
	})
}

func TestCSV_ReadsByColumnName(t *testing.T) {
	dir := t.TempDir()
	// Column order differs from ours, Count is written as a float and the
	// products file predates the Count column.
	available := "Sizes,Count,ID,Name,Type,Gender,Brand,Color,Cost (USD),Expected Price (USD),Trip #\n" +
		"42,2.0,SM01,Air Max,S,M,Nike,White,80.0,150.0,3\n"
	products := "ID,Type,Gender,Brand,Name,Color,Cost (USD),Expected Price (USD),Trip #,Sizes\n" +
		"SM01,S,M,Nike,Air Max,White,80.0,150.0,3,\"41, 42\"\n"
	sold := "ID,Type,Gender,Brand,Name,Color,Cost (USD),Expected Price (USD),Trip #,Sizes,Count,Selling Date,Final Price,Customer,Notes,Size Sold\n" +
		"SM01,S,M,Nike,Air Max,White,80.0,150.0,3,41,1,2024-10-05 00:00:00,140.0,Juan,,41\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, AvailableFile), []byte(available), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProductsFile), []byte(products), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, SoldFile), []byte(sold), 0644))

	s := NewCSV(dir)
	ctx := context.Background()

	stock, err := s.Stock(ctx)
	require.NoError(t, err)
	require.Len(t, stock, 1)
	assert.Equal(t, "SM01", stock[0].ID)
	assert.Equal(t, "42", stock[0].Size)
	assert.Equal(t, 2, stock[0].Count)
	assert.Equal(t, "150", stock[0].ExpectedPrice.String())

	list, err := s.Products(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"41", "42"}, list[0].Sizes)
	assert.Equal(t, 0, list[0].Count)

	sales, err := s.Sales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "2024-10-05", sales[0].SellingDate.String())
	assert.Equal(t, "140", sales[0].FinalPrice.String())
}

func TestCSV_MissingFilesReadAsEmpty(t *testing.T) {
	s := NewCSV(t.TempDir())
	stock, err := s.Stock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stock)
}

func TestCSV_MalformedValue(t *testing.T) {
	dir := t.TempDir()
	products := "ID,Cost (USD)\nSM01,cheap\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProductsFile), []byte(products), 0644))

	_, err := NewCSV(dir).Products(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `products.csv line 2, column "Cost (USD)"`)
}

func TestCSV_SaveLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewCSV(dir)
	require.NoError(t, s.SaveProducts(context.Background(), nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ProductsFile, entries[0].Name())
}
