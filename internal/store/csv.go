package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dyluth/fily/internal/ledger"
	"github.com/shopspring/decimal"
)

// Table file names inside the data directory.
const (
	ProductsFile  = "products.csv"
	AvailableFile = "available.csv"
	SoldFile      = "sold.csv"
)

// Column names. Files are read by column name, so column order on disk is free.
const (
	colID            = "ID"
	colType          = "Type"
	colGender        = "Gender"
	colBrand         = "Brand"
	colName          = "Name"
	colColor         = "Color"
	colCost          = "Cost (USD)"
	colExpectedPrice = "Expected Price (USD)"
	colTrip          = "Trip #"
	colSizes         = "Sizes"
	colCount         = "Count"
	colSellingDate   = "Selling Date"
	colFinalPrice    = "Final Price"
	colCustomer      = "Customer"
	colNotes         = "Notes"
	colSizeSold      = "Size Sold"
)

var (
	productColumns   = []string{colID, colType, colGender, colBrand, colName, colColor, colCost, colExpectedPrice, colTrip, colSizes, colCount}
	availableColumns = productColumns
	soldColumns      = append(append([]string{}, availableColumns...), colSellingDate, colFinalPrice, colCustomer, colNotes, colSizeSold)
)

// CSV stores each ledger table as a CSV file with a header row.
type CSV struct {
	dir string
}

var _ ledger.Store = (*CSV)(nil)

// NewCSV returns a store over the table files in dir.
func NewCSV(dir string) *CSV {
	return &CSV{dir: dir}
}

// Dir returns the data directory.
func (s *CSV) Dir() string { return s.dir }

// Files returns the paths of the three table files.
func (s *CSV) Files() []string {
	return []string{s.path(ProductsFile), s.path(AvailableFile), s.path(SoldFile)}
}

func (s *CSV) path(name string) string { return filepath.Join(s.dir, name) }

// Bootstrap creates the data directory and any missing table file with a
// header-only content. Existing files are left untouched. Returns the files
// it created.
func (s *CSV) Bootstrap() ([]string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", s.dir, err)
	}

	tables := []struct {
		name    string
		columns []string
	}{
		{ProductsFile, productColumns},
		{AvailableFile, availableColumns},
		{SoldFile, soldColumns},
	}

	var created []string
	for _, t := range tables {
		path := s.path(t.name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return created, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if err := writeCSV(path, t.columns, nil); err != nil {
			return created, err
		}
		created = append(created, path)
	}
	return created, nil
}

// Close is a no-op; files are opened per operation.
func (s *CSV) Close() error { return nil }

func (s *CSV) Products(ctx context.Context) ([]ledger.Product, error) {
	var products []ledger.Product
	err := readCSV(s.path(ProductsFile), func(r record) error {
		d, err := r.details()
		if err != nil {
			return err
		}
		count, err := r.count(colCount)
		if err != nil {
			return err
		}
		products = append(products, ledger.Product{
			ID:      r.get(colID),
			Details: d,
			Sizes:   ledger.ParseSizes(r.get(colSizes)),
			Count:   count,
		})
		return nil
	})
	return products, err
}

func (s *CSV) SaveProducts(ctx context.Context, products []ledger.Product) error {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, append(detailFields(p.ID, p.Details),
			ledger.JoinSizes(p.Sizes), strconv.Itoa(p.Count)))
	}
	return writeCSV(s.path(ProductsFile), productColumns, rows)
}

func (s *CSV) Stock(ctx context.Context) ([]ledger.StockRow, error) {
	var stock []ledger.StockRow
	err := readCSV(s.path(AvailableFile), func(r record) error {
		d, err := r.details()
		if err != nil {
			return err
		}
		count, err := r.count(colCount)
		if err != nil {
			return err
		}
		stock = append(stock, ledger.StockRow{
			ID:      r.get(colID),
			Details: d,
			Size:    r.get(colSizes),
			Count:   count,
		})
		return nil
	})
	return stock, err
}

func (s *CSV) SaveStock(ctx context.Context, stock []ledger.StockRow) error {
	rows := make([][]string, 0, len(stock))
	for _, row := range stock {
		if row.Count <= 0 {
			continue
		}
		rows = append(rows, append(detailFields(row.ID, row.Details),
			row.Size, strconv.Itoa(row.Count)))
	}
	return writeCSV(s.path(AvailableFile), availableColumns, rows)
}

func (s *CSV) Sales(ctx context.Context) ([]ledger.Sale, error) {
	var sales []ledger.Sale
	err := readCSV(s.path(SoldFile), func(r record) error {
		d, err := r.details()
		if err != nil {
			return err
		}
		count, err := r.count(colCount)
		if err != nil {
			return err
		}
		date, err := r.date(colSellingDate)
		if err != nil {
			return err
		}
		price, err := r.money(colFinalPrice)
		if err != nil {
			return err
		}
		sales = append(sales, ledger.Sale{
			ID:          r.get(colID),
			Details:     d,
			Size:        r.get(colSizes),
			Count:       count,
			SellingDate: date,
			FinalPrice:  price,
			Customer:    r.get(colCustomer),
			Notes:       r.get(colNotes),
			SizeSold:    r.get(colSizeSold),
		})
		return nil
	})
	return sales, err
}

func (s *CSV) SaveSales(ctx context.Context, sales []ledger.Sale) error {
	rows := make([][]string, 0, len(sales))
	for _, sale := range sales {
		row := append(detailFields(sale.ID, sale.Details), sale.Size, strconv.Itoa(sale.Count))
		row = append(row, sale.SellingDate.String(), sale.FinalPrice.String(),
			sale.Customer, sale.Notes, sale.SizeSold)
		rows = append(rows, row)
	}
	return writeCSV(s.path(SoldFile), soldColumns, rows)
}

func detailFields(id string, d ledger.Details) []string {
	return []string{id, d.Type, d.Gender, d.Brand, d.Name, d.Color,
		d.Cost.String(), d.ExpectedPrice.String(), d.Trip}
}

// record is one data row addressed by column name.
type record struct {
	file   string
	line   int
	index  map[string]int
	fields []string
}

func (r record) get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r record) errorf(col, format string, a ...any) error {
	return fmt.Errorf("%s line %d, column %q: %s", r.file, r.line, col, fmt.Sprintf(format, a...))
}

func (r record) money(col string) (ledger.Money, error) {
	v := r.get(col)
	if v == "" {
		return ledger.Money{}, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return ledger.Money{}, r.errorf(col, "not a decimal number: %s", v)
	}
	return ledger.MoneyFromDecimal(d), nil
}

// count accepts integers and the float form ("3.0") older files were written with.
func (r record) count(col string) (int, error) {
	v := r.get(col)
	if v == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, r.errorf(col, "not a count: %s", v)
	}
	return int(d.IntPart()), nil
}

// date accepts ISO dates, optionally followed by a time of day.
func (r record) date(col string) (ledger.CalendarDate, error) {
	v := r.get(col)
	if v == "" {
		return ledger.CalendarDate{}, nil
	}
	if len(v) > len(ledger.DateLayout) && (v[10] == ' ' || v[10] == 'T') {
		v = v[:len(ledger.DateLayout)]
	}
	d, err := ledger.ParseDate(col, v)
	if err != nil {
		return ledger.CalendarDate{}, r.errorf(col, "not a calendar date: %s", v)
	}
	return d, nil
}

func (r record) details() (ledger.Details, error) {
	cost, err := r.money(colCost)
	if err != nil {
		return ledger.Details{}, err
	}
	price, err := r.money(colExpectedPrice)
	if err != nil {
		return ledger.Details{}, err
	}
	return ledger.Details{
		Type:          r.get(colType),
		Gender:        r.get(colGender),
		Brand:         r.get(colBrand),
		Name:          r.get(colName),
		Color:         r.get(colColor),
		Cost:          cost,
		ExpectedPrice: price,
		Trip:          r.get(colTrip),
	}, nil
}

// readCSV calls fn for every data row of path. A missing file reads as an
// empty table.
func readCSV(path string, fn func(record) error) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))] = i
	}

	for line := 2; ; line++ {
		fields, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := fn(record{file: filepath.Base(path), line: line, index: index, fields: fields}); err != nil {
			return err
		}
	}
}

// writeCSV replaces path with header and rows. The table is written to a
// temporary file first and renamed into place.
func writeCSV(path string, header []string, rows [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
