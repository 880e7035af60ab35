// Package render projects the available stock into the HTML catalogue pages.
//
// Build groups stock rows into one entry per product and orders the entries
// by type section; Write executes the embedded page template over the result.
// The page comes in two modes: Internal lists products without prices and is
// published as index.html, Public adds the USD price and its local currency
// conversion and is written as catalogue.html.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/dyluth/fily/internal/ledger"
	"github.com/dyluth/fily/internal/ordering"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

// Mode selects the page variant.
type Mode int

const (
	// Internal omits prices
	Internal Mode = iota
	// Public shows the USD price and the converted local price
	Public
)

// Filename is the file each mode is written to.
func (m Mode) Filename() string {
	if m == Public {
		return "catalogue.html"
	}
	return "index.html"
}

func (m Mode) String() string {
	if m == Public {
		return "public"
	}
	return "internal"
}

// Options are the page settings taken from the catalogue configuration.
type Options struct {
	Title         string
	Tagline       string
	ExchangeRate  int64  // local currency units per USD
	LocalCurrency string // e.g. "ARS"
}

// Product is one catalogue entry.
type Product struct {
	ID         string
	Code       string // type code, used to filter the page by section
	Brand      string
	Name       string
	Color      string
	Sizes      []string
	Image      string
	PriceUSD   string // whole dollars with thousands separators
	PriceLocal string // PriceUSD times the exchange rate
}

// Document is the view model of one catalogue page.
type Document struct {
	Mode          Mode
	Title         string
	Tagline       string
	LocalCurrency string
	Sections      []ordering.Section
	Products      []Product
}

// ShowPrices reports whether the page includes prices.
func (d Document) ShowPrices() bool {
	return d.Mode == Public
}

// ImagePath is the page-relative path of a product's picture.
func ImagePath(id string) string {
	return path.Join("images", id+".jpg")
}

// Build groups rows by product ID and orders the products by type section,
// keeping first-seen order within a section. Each product's sizes are merged
// across its rows and sorted; a blank size label stands for the one-size label.
func Build(rows []ledger.StockRow, mode Mode, opts Options) Document {
	doc := Document{
		Mode:          mode,
		Title:         opts.Title,
		Tagline:       opts.Tagline,
		LocalCurrency: opts.LocalCurrency,
		Sections:      ordering.Sections(),
	}

	index := make(map[string]int)
	ranks := make([]int, 0)
	for _, r := range rows {
		size := r.Size
		if size == "" {
			size = ordering.OneSize
		}
		if i, ok := index[r.ID]; ok {
			if !slices.Contains(doc.Products[i].Sizes, size) {
				doc.Products[i].Sizes = append(doc.Products[i].Sizes, size)
			}
			continue
		}

		index[r.ID] = len(doc.Products)
		ranks = append(ranks, ordering.TypeRank(r.Type))
		price := r.ExpectedPrice.Whole()
		doc.Products = append(doc.Products, Product{
			ID:         r.ID,
			Code:       ordering.Initial(r.Type),
			Brand:      r.Brand,
			Name:       r.Name,
			Color:      r.Color,
			Sizes:      []string{size},
			Image:      ImagePath(r.ID),
			PriceUSD:   humanize.Comma(price),
			PriceLocal: humanize.Comma(price * opts.ExchangeRate),
		})
	}

	for i := range doc.Products {
		doc.Products[i].Sizes = ordering.SortSizes(doc.Products[i].Sizes)
	}

	// Sort positions, not products, so ranks stay aligned during the sort
	order := make([]int, len(doc.Products))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return ranks[a] - ranks[b] })
	sorted := make([]Product, len(order))
	for i, j := range order {
		sorted[i] = doc.Products[j]
	}
	doc.Products = sorted

	return doc
}

// Write renders the document as a self-contained HTML page.
func Write(w io.Writer, doc Document) error {
	if err := templates.ExecuteTemplate(w, "catalogue.html.tmpl", doc); err != nil {
		return fmt.Errorf("failed to render %s catalogue: %w", doc.Mode, err)
	}
	return nil
}
