package ledger

import (
	"context"
	"fmt"
	"slices"

	"github.com/dyluth/fily/internal/ordering"
)

// TripSummary is the expected outcome of one purchasing trip.
type TripSummary struct {
	Trip            string `json:"trip"`
	GrossCost       Money  `json:"gross_cost"`
	ExpectedRevenue Money  `json:"expected_revenue"`
	ExpectedProfit  Money  `json:"expected_profit"`
	Units           int    `json:"units"`
}

// NetProfit is the realised result of the sales within a period.
type NetProfit struct {
	From    CalendarDate `json:"from"`
	To      CalendarDate `json:"to"`
	Revenue Money        `json:"revenue"`
	Cost    Money        `json:"cost"`
	Profit  Money        `json:"profit"`
	Units   int          `json:"units"`
}

// ExpectedProfit totals the catalog per trip: cost and expected price times
// units. Summaries are in natural trip order (T2 before T10).
func (l *Ledger) ExpectedProfit(ctx context.Context) ([]TripSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	products, err := l.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	byTrip := make(map[string]*TripSummary)
	for _, p := range products {
		s, ok := byTrip[p.Trip]
		if !ok {
			s = &TripSummary{Trip: p.Trip}
			byTrip[p.Trip] = s
		}
		s.GrossCost = s.GrossCost.Add(p.Cost.Times(p.Count))
		s.ExpectedRevenue = s.ExpectedRevenue.Add(p.ExpectedPrice.Times(p.Count))
		s.Units += p.Count
	}

	summaries := make([]TripSummary, 0, len(byTrip))
	for _, s := range byTrip {
		s.ExpectedProfit = s.ExpectedRevenue.Sub(s.GrossCost)
		summaries = append(summaries, *s)
	}
	slices.SortFunc(summaries, func(a, b TripSummary) int { return ordering.CompareTrips(a.Trip, b.Trip) })
	return summaries, nil
}

// NetProfit parses an ISO date range and totals the sales within it.
func (l *Ledger) NetProfit(ctx context.Context, startDate, endDate string) (NetProfit, error) {
	from, err := ParseDate("start date", startDate)
	if err != nil {
		return NetProfit{}, err
	}
	to, err := ParseDate("end date", endDate)
	if err != nil {
		return NetProfit{}, err
	}
	return l.NetProfitBetween(ctx, from, to)
}

// NetProfitBetween totals final price minus cost over the sales dated in
// [from, to], both days included.
func (l *Ledger) NetProfitBetween(ctx context.Context, from, to CalendarDate) (NetProfit, error) {
	if to.Before(from) {
		return NetProfit{}, &ValidationError{Field: "period", Reason: fmt.Sprintf("end date %s is before start date %s", to, from)}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	sales, err := l.store.Sales(ctx)
	if err != nil {
		return NetProfit{}, fmt.Errorf("failed to load sales: %w", err)
	}

	result := NetProfit{From: from, To: to}
	for _, s := range sales {
		if s.SellingDate.IsZero() || !s.SellingDate.Within(from, to) {
			continue
		}
		result.Revenue = result.Revenue.Add(s.FinalPrice)
		result.Cost = result.Cost.Add(s.Cost)
		result.Units++
	}
	result.Profit = result.Revenue.Sub(result.Cost)
	return result, nil
}
