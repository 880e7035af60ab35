package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/dyluth/fily/internal/ledger"
	"github.com/dyluth/fily/internal/ordering"
	"github.com/dyluth/fily/internal/report"
	"go.uber.org/zap"
)

func typePrompt() string {
	var codes []string
	for _, s := range ordering.Sections() {
		codes = append(codes, s.Code+"="+s.Name)
	}
	return "Type (" + strings.Join(codes, ", ") + "): "
}

func (m *Menu) addProduct(ctx context.Context) error {
	var in ledger.NewProduct
	fields := []struct {
		prompt string
		dst    *string
	}{
		{typePrompt(), &in.Type},
		{"Gender (M=Men, W=Women, K=Kids, J=Jordans, NG=No Gender, U=Unisex): ", &in.Gender},
		{"Brand: ", &in.Brand},
		{"Name: ", &in.Name},
		{"Color: ", &in.Color},
	}
	for _, f := range fields {
		answer, err := m.ask(f.prompt)
		if err != nil {
			return err
		}
		*f.dst = answer
	}

	var err error
	if in.Cost, err = m.askMoney("Cost (USD): ", "cost"); err != nil {
		return err
	}
	if in.ExpectedPrice, err = m.askMoney("Expected price (USD): ", "expected price"); err != nil {
		return err
	}
	if in.Trip, err = m.ask("Trip #: "); err != nil {
		return err
	}
	sizes, err := m.ask("Sizes (comma separated, repeat a size for each unit): ")
	if err != nil {
		return err
	}
	in.Sizes = ledger.ParseSizes(sizes)

	p, err := m.ledger.AddProduct(ctx, in)
	if err != nil {
		return err
	}
	m.p.Success("Product %s added: %s, %d units (%s)\n", p.ID, p.Name, p.Count, ledger.JoinSizes(p.Sizes))
	return nil
}

func (m *Menu) askMoney(prompt, field string) (ledger.Money, error) {
	answer, err := m.ask(prompt)
	if err != nil {
		return ledger.Money{}, err
	}
	return ledger.ParseMoney(field, answer)
}

func (m *Menu) viewAvailable(ctx context.Context) error {
	stock, err := m.ledger.AvailableStock(ctx)
	if err != nil {
		return err
	}
	return report.FormatStock(m.out, stock, report.OutputFormatDefault)
}

func (m *Menu) sellItem(ctx context.Context) error {
	id, err := m.ask("Product ID: ")
	if err != nil {
		return err
	}
	sizes, err := m.ledger.AvailableSizes(ctx, id)
	if err != nil {
		return err
	}
	m.p.Info("Available sizes: %s\n", ledger.JoinSizes(ordering.SortSizes(sizes)))

	in := ledger.SaleInput{ProductID: id}
	if in.Size, err = m.ask("Size sold: "); err != nil {
		return err
	}
	date, err := m.ask("Selling date (YYYY-MM-DD, blank for today): ")
	if err != nil {
		return err
	}
	if date == "" {
		in.SellingDate = ledger.DateOf(m.hooks.Now())
	} else if in.SellingDate, err = ledger.ParseDate("selling date", date); err != nil {
		return err
	}
	if in.FinalPrice, err = m.askMoney("Final price (USD): ", "final price"); err != nil {
		return err
	}
	if in.Customer, err = m.ask("Customer: "); err != nil {
		return err
	}
	if in.Notes, err = m.ask("Notes: "); err != nil {
		return err
	}

	sale, err := m.ledger.SellItem(ctx, in)
	if err != nil {
		return err
	}
	m.p.Success("Sold %s size %s for $%s (profit $%s)\n", sale.ID, sale.SizeSold, sale.FinalPrice, sale.Profit())
	return nil
}

func (m *Menu) expectedProfit(ctx context.Context) error {
	summaries, err := m.ledger.ExpectedProfit(ctx)
	if err != nil {
		return err
	}
	return report.FormatTrips(m.out, summaries, report.OutputFormatDefault)
}

func (m *Menu) netProfit(ctx context.Context) error {
	from, err := m.ask("Start date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	to, err := m.ask("End date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	result, err := m.ledger.NetProfit(ctx, from, to)
	if err != nil {
		return err
	}
	return report.FormatNetProfit(m.out, result, report.OutputFormatDefault)
}

func (m *Menu) publish(ctx context.Context) error {
	if m.hooks.Render == nil && m.hooks.Publish == nil {
		m.p.Warning("Publishing is not available in this session.\n")
		return nil
	}
	stock, err := m.ledger.AvailableStock(ctx)
	if err != nil {
		return err
	}

	if m.hooks.Render != nil {
		written, err := m.hooks.Render(stock)
		if err != nil {
			return err
		}
		for _, path := range written {
			m.p.Success("Wrote %s\n", path)
		}
	}
	if m.hooks.Publish == nil {
		return nil
	}

	summary, err := m.hooks.Publish(ctx, stock)
	if err != nil {
		// The pages are already on disk; only the push failed
		m.logger.Warn("publish failed", zap.Error(err))
		_ = m.p.Error("Publish failed", err.Error(), []string{"The HTML pages were written. Fix the remotes in fily.yml and choose option 6 again."})
		return nil
	}
	m.p.Success("%s\n", summary)
	return nil
}

func (m *Menu) search(ctx context.Context) error {
	term, err := m.ask("Search term (leave blank for all items): ")
	if err != nil {
		return err
	}
	matches, err := m.ledger.Search(ctx, term)
	if err != nil {
		return err
	}
	if err := report.FormatStock(m.out, matches, report.OutputFormatDefault); err != nil {
		return err
	}
	if m.hooks.SearchPage == nil || len(matches) == 0 {
		return nil
	}
	path, err := m.hooks.SearchPage(term, matches)
	if err != nil {
		return err
	}
	m.p.Success("Search results written to %s\n", path)
	return nil
}

func (m *Menu) viewSales(ctx context.Context) error {
	sales, err := m.ledger.Sales(ctx)
	if err != nil {
		return err
	}
	return report.FormatSales(m.out, sales, report.OutputFormatDefault)
}

func (m *Menu) modifyProduct(ctx context.Context) error {
	id, err := m.ask("Product ID: ")
	if err != nil {
		return err
	}
	p, err := m.ledger.Product(ctx, id)
	if err != nil {
		return err
	}
	m.p.Info("Modifying %s. Leave a field blank to keep its value.\n", p.ID)

	var upd ledger.ProductUpdate
	fields := []struct {
		label   string
		current string
		dst     **string
	}{
		{"Type", p.Type, &upd.Type},
		{"Gender", p.Gender, &upd.Gender},
		{"Brand", p.Brand, &upd.Brand},
		{"Name", p.Name, &upd.Name},
		{"Color", p.Color, &upd.Color},
		{"Trip #", p.Trip, &upd.Trip},
	}
	for _, f := range fields {
		if *f.dst, err = m.askDefault(f.label, f.current); err != nil {
			return err
		}
	}
	if upd.Cost, err = m.askMoneyDefault("Cost (USD)", "cost", p.Cost); err != nil {
		return err
	}
	if upd.ExpectedPrice, err = m.askMoneyDefault("Expected price (USD)", "expected price", p.ExpectedPrice); err != nil {
		return err
	}
	sizes, err := m.askDefault("Sizes", ledger.JoinSizes(p.Sizes))
	if err != nil {
		return err
	}
	if sizes != nil {
		upd.Sizes = ledger.ParseSizes(*sizes)
		if upd.Sizes == nil {
			upd.Sizes = []string{}
		}
	}

	updated, err := m.ledger.ModifyProduct(ctx, id, upd)
	if err != nil {
		return err
	}
	m.p.Success("Product %s updated: %d units (%s)\n", updated.ID, updated.Count, ledger.JoinSizes(updated.Sizes))
	return nil
}

func (m *Menu) askMoneyDefault(label, field string, current ledger.Money) (*ledger.Money, error) {
	answer, err := m.askDefault(label, current.String())
	if err != nil || answer == nil {
		return nil, err
	}
	v, err := ledger.ParseMoney(field, *answer)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (m *Menu) deleteProduct(ctx context.Context) error {
	id, err := m.ask("Product ID: ")
	if err != nil {
		return err
	}
	p, err := m.ledger.Product(ctx, id)
	if err != nil {
		return err
	}
	answer, err := m.ask(fmt.Sprintf("Delete %s (%s %s)? This cannot be undone [y/N]: ", p.ID, p.Brand, p.Name))
	if err != nil {
		return err
	}
	confirmed := strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
	if err := m.ledger.DeleteProduct(ctx, id, confirmed); err != nil {
		return err
	}
	m.p.Success("Product %s deleted\n", id)
	return nil
}

func (m *Menu) modifySale(ctx context.Context) error {
	id, err := m.ask("Product ID of the sale: ")
	if err != nil {
		return err
	}
	sale, err := m.ledger.Sale(ctx, id)
	if err != nil {
		return err
	}
	m.p.Info("Modifying the sale of %s on %s. Leave a field blank to keep its value.\n", sale.ID, sale.SellingDate)

	var upd ledger.SaleUpdate
	if upd.SizeSold, err = m.askDefault("Size sold", sale.SizeSold); err != nil {
		return err
	}
	date, err := m.askDefault("Selling date", sale.SellingDate.String())
	if err != nil {
		return err
	}
	if date != nil {
		d, err := ledger.ParseDate("selling date", *date)
		if err != nil {
			return err
		}
		upd.SellingDate = &d
	}
	if upd.FinalPrice, err = m.askMoneyDefault("Final price (USD)", "final price", sale.FinalPrice); err != nil {
		return err
	}
	if upd.Customer, err = m.askDefault("Customer", sale.Customer); err != nil {
		return err
	}
	if upd.Notes, err = m.askDefault("Notes", sale.Notes); err != nil {
		return err
	}

	updated, err := m.ledger.ModifySale(ctx, id, upd)
	if err != nil {
		return err
	}
	m.p.Success("Sale of %s updated: size %s, $%s on %s\n", updated.ID, updated.SizeSold, updated.FinalPrice, updated.SellingDate)
	return nil
}
