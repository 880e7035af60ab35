package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dyluth/fily/internal/ledger"
	"github.com/dyluth/fily/internal/ordering"
)

// SortStock returns a copy of rows ordered for listing: by type section,
// then product ID, then size.
func SortStock(rows []ledger.StockRow) []ledger.StockRow {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b ledger.StockRow) int {
		if c := ordering.CompareTypes(a.Type, b.Type); c != 0 {
			return c
		}
		if c := strings.Compare(a.ID, b.ID); c != 0 {
			return c
		}
		return ordering.CompareSizes(formatSize(a.Size), formatSize(b.Size))
	})
	return sorted
}

// formatMoney shows USD amounts with thousands separators ("$1,299.99").
// Whole amounts drop the cents ("$1,500").
func formatMoney(m ledger.Money) string {
	d := m.Decimal()
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	cents := fixed[strings.IndexByte(fixed, '.'):]
	if cents == ".00" {
		cents = ""
	}
	return sign + "$" + humanize.Comma(d.IntPart()) + cents
}

// formatSize shows a blank size label as the one-size label.
func formatSize(size string) string {
	if size == "" {
		return ordering.OneSize
	}
	return size
}

// formatField shows blank values as "-".
func formatField(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
