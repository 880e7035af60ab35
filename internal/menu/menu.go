// Package menu runs the interactive bookkeeping loop: a numbered list of
// actions read one line at a time from the operator. Every action reports
// its own errors and returns to the menu; only Exit or the end of input
// stops the loop.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dyluth/fily/internal/ledger"
	"github.com/dyluth/fily/internal/printer"
	"go.uber.org/zap"
)

// Hooks are the collaborators behind the actions that leave the ledger.
type Hooks struct {
	// Render writes the catalogue pages for the stock and returns their paths.
	Render func(stock []ledger.StockRow) ([]string, error)
	// Publish pushes the catalogue of the stock, returning a one-line summary.
	Publish func(ctx context.Context, stock []ledger.StockRow) (string, error)
	// SearchPage writes the search results page and returns its path.
	SearchPage func(term string, matches []ledger.StockRow) (string, error)
	// Now is the clock used for default selling dates.
	Now func() time.Time
}

type action struct {
	label string
	run   func(m *Menu, ctx context.Context) error
}

var actions = []action{
	{"Add Product", (*Menu).addProduct},
	{"View Available Products", (*Menu).viewAvailable},
	{"Process Sold Item", (*Menu).sellItem},
	{"Calculate Expected Profit", (*Menu).expectedProfit},
	{"Calculate Net Profit by Period", (*Menu).netProfit},
	{"Create HTML Report of Available Items", (*Menu).publish},
	{"Search Available Items", (*Menu).search},
	{"View Sales Records", (*Menu).viewSales},
	{"Modify a Product", (*Menu).modifyProduct},
	{"Delete a Product", (*Menu).deleteProduct},
	{"Modify a Sale", (*Menu).modifySale},
	{"Exit", nil},
}

// Menu is one interactive session over a ledger.
type Menu struct {
	ledger *ledger.Ledger
	in     *bufio.Scanner
	out    io.Writer
	p      *printer.Printer
	hooks  Hooks
	logger *zap.Logger

	// Set for the duration of Run
	lines     chan inputLine
	interrupt <-chan struct{}
}

type inputLine struct {
	text string
	err  error
}

// New creates a session reading answers from in and writing to out.
func New(l *ledger.Ledger, in io.Reader, out io.Writer, hooks Hooks, logger *zap.Logger) *Menu {
	if hooks.Now == nil {
		hooks.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Menu{
		ledger: l,
		in:     bufio.NewScanner(in),
		out:    out,
		p:      printer.New(out, out),
		hooks:  hooks,
		logger: logger,
	}
}

// Run shows the menu until the operator exits, input ends or ctx is
// cancelled. A prompt waiting for input returns as soon as ctx is done.
func (m *Menu) Run(ctx context.Context) error {
	quit := make(chan struct{})
	defer close(quit)
	m.lines = make(chan inputLine)
	m.interrupt = ctx.Done()
	go m.readLines(quit)

	for {
		if err := ctx.Err(); err != nil {
			return m.stop(err)
		}

		m.printMenu()
		choice, err := m.ask("Choose an option: ")
		if err != nil {
			return m.stop(err)
		}

		n, convErr := parseChoice(choice)
		if convErr != nil {
			m.p.Warning("Invalid choice. Please try again.\n")
			continue
		}
		a := actions[n-1]
		if a.run == nil {
			m.p.Info("Goodbye!\n")
			return nil
		}

		if err := a.run(m, ctx); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return m.stop(err)
			}
			m.logger.Warn("menu action failed", zap.String("action", a.label), zap.Error(err))
			m.fail(err)
		}
	}
}

// readLines feeds input lines to ask until input ends or Run returns.
func (m *Menu) readLines(quit <-chan struct{}) {
	defer close(m.lines)
	for m.in.Scan() {
		select {
		case m.lines <- inputLine{text: m.in.Text()}:
		case <-quit:
			return
		}
	}
	if err := m.in.Err(); err != nil {
		select {
		case m.lines <- inputLine{err: err}:
		case <-quit:
		}
	}
}

// stop ends the session quietly on end of input or interrupt.
func (m *Menu) stop(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		m.p.Info("\nGoodbye!\n")
		return nil
	}
	return err
}

func (m *Menu) printMenu() {
	m.p.Info("\nMenu:\n")
	for i, a := range actions {
		m.p.Info("%d. %s\n", i+1, a.label)
	}
}

func parseChoice(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > len(actions) {
		return 0, fmt.Errorf("choice out of range: %s", s)
	}
	return n, nil
}

// ask prints prompt and returns the next trimmed input line.
func (m *Menu) ask(prompt string) (string, error) {
	m.p.Info("%s", prompt)
	select {
	case <-m.interrupt:
		return "", context.Canceled
	case line, ok := <-m.lines:
		if !ok {
			return "", io.EOF
		}
		if line.err != nil {
			return "", fmt.Errorf("failed to read input: %w", line.err)
		}
		return strings.TrimSpace(line.text), nil
	}
}

// askDefault is ask with the current value shown; a blank answer returns nil.
func (m *Menu) askDefault(label, current string) (*string, error) {
	answer, err := m.ask(fmt.Sprintf("%s [%s]: ", label, current))
	if err != nil || answer == "" {
		return nil, err
	}
	return &answer, nil
}

// fail reports an action error in operator terms.
func (m *Menu) fail(err error) {
	var sizeErr *ledger.SizeUnavailableError
	switch {
	case errors.As(err, &sizeErr):
		_ = m.p.ErrorWithContext("Size not available", fmt.Sprintf("Size %s of product %s is not in stock.", sizeErr.Size, sizeErr.ProductID),
			map[string]string{"Available sizes": ledger.JoinSizes(sizeErr.Available)}, nil)
	case errors.Is(err, ledger.ErrNotFound):
		_ = m.p.Error("Not found", capitalize(err.Error())+".", []string{"Use option 2 to list the products in stock."})
	case errors.Is(err, ledger.ErrValidation):
		_ = m.p.Error("Invalid input", capitalize(err.Error())+".", nil)
	case errors.Is(err, ledger.ErrNotConfirmed):
		m.p.Info("Deletion cancelled.\n")
	default:
		_ = m.p.Error("Operation failed", err.Error(), nil)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
