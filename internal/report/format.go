package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dyluth/fily/internal/ledger"
	"github.com/olekukonko/tablewriter"
)

// OutputFormat specifies how listings are written.
type OutputFormat string

const (
	// OutputFormatDefault writes an aligned table
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSONL writes one JSON object per line
	OutputFormatJSONL OutputFormat = "jsonl"
)

// ParseOutputFormat validates a user supplied format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case "", OutputFormatDefault:
		return OutputFormatDefault, nil
	case OutputFormatJSONL:
		return OutputFormatJSONL, nil
	}
	return "", fmt.Errorf("unknown output format: %s (must be 'default' or 'jsonl')", s)
}

// FormatStock writes stock rows in listing order.
func FormatStock(w io.Writer, rows []ledger.StockRow, format OutputFormat) error {
	rows = SortStock(rows)
	switch format {
	case OutputFormatJSONL:
		return FormatJSONL(w, rows)
	case OutputFormatDefault:
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, "No products in stock")
		return nil
	}

	data := make([][]string, 0, len(rows))
	units := 0
	for _, r := range rows {
		data = append(data, []string{
			r.ID, r.Type, r.Gender, r.Brand, r.Name, r.Color,
			formatSize(r.Size), strconv.Itoa(r.Count),
			formatMoney(r.Cost), formatMoney(r.ExpectedPrice), formatField(r.Trip),
		})
		units += r.Count
	}
	if err := writeTable(w, []any{"ID", "TYPE", "GENDER", "BRAND", "NAME", "COLOR", "SIZE", "UNITS", "COST", "PRICE", "TRIP"}, data); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s, %s in stock\n", plural(len(rows), "row"), plural(units, "unit"))
	return nil
}

// FormatSales writes the sold log in recording order.
func FormatSales(w io.Writer, sales []ledger.Sale, format OutputFormat) error {
	switch format {
	case OutputFormatJSONL:
		return FormatJSONL(w, sales)
	case OutputFormatDefault:
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	if len(sales) == 0 {
		fmt.Fprintln(w, "No sales recorded")
		return nil
	}

	data := make([][]string, 0, len(sales))
	profit := ledger.Money{}
	for _, s := range sales {
		data = append(data, []string{
			s.ID, s.Name, formatSize(s.SizeSold), s.SellingDate.String(),
			formatMoney(s.Cost), formatMoney(s.FinalPrice), formatMoney(s.Profit()),
			formatField(s.Customer), formatField(s.Notes),
		})
		profit = profit.Add(s.Profit())
	}
	if err := writeTable(w, []any{"ID", "NAME", "SIZE", "DATE", "COST", "FINAL PRICE", "PROFIT", "CUSTOMER", "NOTES"}, data); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s, %s profit\n", plural(len(sales), "sale"), formatMoney(profit))
	return nil
}

// FormatTrips writes the expected profit of each trip.
func FormatTrips(w io.Writer, summaries []ledger.TripSummary, format OutputFormat) error {
	switch format {
	case OutputFormatJSONL:
		return FormatJSONL(w, summaries)
	case OutputFormatDefault:
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	if len(summaries) == 0 {
		fmt.Fprintln(w, "No products in the catalog")
		return nil
	}

	data := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		data = append(data, []string{
			formatField(s.Trip), strconv.Itoa(s.Units),
			formatMoney(s.GrossCost), formatMoney(s.ExpectedRevenue), formatMoney(s.ExpectedProfit),
		})
	}
	return writeTable(w, []any{"TRIP", "UNITS", "GROSS COST", "EXPECTED REVENUE", "EXPECTED PROFIT"}, data)
}

// FormatNetProfit writes the realised result of a period.
func FormatNetProfit(w io.Writer, np ledger.NetProfit, format OutputFormat) error {
	switch format {
	case OutputFormatJSONL:
		return FormatJSONL(w, []ledger.NetProfit{np})
	case OutputFormatDefault:
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	fmt.Fprintf(w, "Net profit from %s to %s\n\n", np.From, np.To)
	fmt.Fprintf(w, "  Units sold: %d\n", np.Units)
	fmt.Fprintf(w, "  Revenue:    %s\n", formatMoney(np.Revenue))
	fmt.Fprintf(w, "  Cost:       %s\n", formatMoney(np.Cost))
	fmt.Fprintf(w, "  Net profit: %s\n", formatMoney(np.Profit))
	return nil
}

// FormatJSONL writes each item as a single JSON object on its own line.
func FormatJSONL[T any](w io.Writer, items []T) error {
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal record to JSON: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

func writeTable(w io.Writer, header []any, data [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header...)
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("failed to build table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
