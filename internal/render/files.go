package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dyluth/fily/internal/ledger"
)

// SearchFilename is the page written for search results.
const SearchFilename = "search_results.html"

// Pages holds both rendered catalogue variants.
type Pages struct {
	Internal []byte
	Public   []byte
}

// RenderPages renders both variants of the catalogue in memory.
func RenderPages(rows []ledger.StockRow, opts Options) (Pages, error) {
	var internal, public bytes.Buffer
	if err := Write(&internal, Build(rows, Internal, opts)); err != nil {
		return Pages{}, err
	}
	if err := Write(&public, Build(rows, Public, opts)); err != nil {
		return Pages{}, err
	}
	return Pages{Internal: internal.Bytes(), Public: public.Bytes()}, nil
}

// RenderAll writes index.html and catalogue.html into dir and returns their paths.
func RenderAll(rows []ledger.StockRow, opts Options, dir string) ([]string, error) {
	pages, err := RenderPages(rows, opts)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	written := []string{filepath.Join(dir, Internal.Filename()), filepath.Join(dir, Public.Filename())}
	for i, content := range [][]byte{pages.Internal, pages.Public} {
		if err := os.WriteFile(written[i], content, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", written[i], err)
		}
	}
	return written, nil
}

type searchPage struct {
	Term     string
	Products []Product
}

// WriteSearchResults renders the stock rows matching term as an HTML table
// with one line per product.
func WriteSearchResults(w io.Writer, term string, rows []ledger.StockRow) error {
	doc := Build(rows, Public, Options{ExchangeRate: 1})
	page := searchPage{Term: term, Products: doc.Products}
	if err := templates.ExecuteTemplate(w, "search.html.tmpl", page); err != nil {
		return fmt.Errorf("failed to render search results: %w", err)
	}
	return nil
}
