// Package stats computes the aggregate views over a user's expenses and
// investments: totals, breakdowns, category spending, monthly trend and the
// financial summary. Functions are pure; callers pass owner-filtered records.
package stats

import (
	"sort"
	"time"

	"github.com/MateusMunaro/financial-manager/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Palette colors category spending entries by rank.
var Palette = []string{"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF", "#FF9F40"}

const (
	DefaultTrendMonths = 6
	MaxTrendMonths     = 24

	DefaultRecentLimit = 10
	MaxRecentLimit     = 50
)

// ExpenseSummary aggregates a set of expenses.
type ExpenseSummary struct {
	Total           decimal.Decimal            `json:"total"`
	Count           int                        `json:"count"`
	Average         decimal.Decimal            `json:"average"`
	ByCategory      map[string]decimal.Decimal `json:"by_category"`
	ByPaymentMethod map[string]decimal.Decimal `json:"by_payment_method"`
	Period          Period                     `json:"period"`
}

// ExpenseStats totals expenses by category and payment method. Untagged
// expenses count toward the total but not toward any payment method.
func ExpenseStats(expenses []models.Expense, period Period) ExpenseSummary {
	s := ExpenseSummary{
		Total:           decimal.Zero,
		Average:         decimal.Zero,
		ByCategory:      map[string]decimal.Decimal{},
		ByPaymentMethod: map[string]decimal.Decimal{},
		Period:          period,
	}
	for _, e := range expenses {
		s.Total = s.Total.Add(e.Value)
		s.ByCategory[e.Category] = s.ByCategory[e.Category].Add(e.Value)
		if e.PaymentMethod != nil && *e.PaymentMethod != "" {
			key := string(*e.PaymentMethod)
			s.ByPaymentMethod[key] = s.ByPaymentMethod[key].Add(e.Value)
		}
	}
	s.Count = len(expenses)
	if s.Count > 0 {
		s.Average = s.Total.Div(decimal.NewFromInt(int64(s.Count)))
	}
	return s
}

// TypeBreakdown is the per-type slice of an investment summary.
type TypeBreakdown struct {
	Invested decimal.Decimal `json:"invested"`
	Current  decimal.Decimal `json:"current"`
	Count    int             `json:"count"`
}

// InvestmentSummary aggregates a set of investments.
type InvestmentSummary struct {
	TotalInvested    decimal.Decimal          `json:"total_invested"`
	CurrentTotal     decimal.Decimal          `json:"current_total"`
	TotalProfit      decimal.Decimal          `json:"total_profit"`
	ProfitPercentage decimal.Decimal          `json:"profit_percentage"`
	Count            int                      `json:"count"`
	ByType           map[string]TypeBreakdown `json:"by_type"`
}

// InvestmentStats totals cost basis and current value, overall and per type.
func InvestmentStats(investments []models.Investment) InvestmentSummary {
	s := InvestmentSummary{
		TotalInvested:    decimal.Zero,
		CurrentTotal:     decimal.Zero,
		TotalProfit:      decimal.Zero,
		ProfitPercentage: decimal.Zero,
		ByType:           map[string]TypeBreakdown{},
	}
	for _, inv := range investments {
		s.TotalInvested = s.TotalInvested.Add(inv.Value)
		s.CurrentTotal = s.CurrentTotal.Add(inv.CurrentValue)

		b := s.ByType[string(inv.Type)]
		b.Invested = b.Invested.Add(inv.Value)
		b.Current = b.Current.Add(inv.CurrentValue)
		b.Count++
		s.ByType[string(inv.Type)] = b
	}
	s.Count = len(investments)
	s.TotalProfit = s.CurrentTotal.Sub(s.TotalInvested)
	if !s.TotalInvested.IsZero() {
		s.ProfitPercentage = s.TotalProfit.Mul(hundred).Div(s.TotalInvested)
	}
	return s
}

// CategoryItem is one row of category spending.
type CategoryItem struct {
	Category   string          `json:"category"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
	Color      string          `json:"color"`
}

// CategorySpending sums expenses per category over the period's spending
// window and ranks them by value, largest first. Equal values are ordered by
// category name.
func CategorySpending(expenses []models.Expense, period Period, now time.Time) []CategoryItem {
	from, to := Window(now, period.SpendingDays())

	total := decimal.Zero
	byCategory := map[string]decimal.Decimal{}
	for _, e := range expenses {
		if !inWindow(e.Date, from, to) {
			continue
		}
		total = total.Add(e.Value)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Value)
	}

	items := make([]CategoryItem, 0, len(byCategory))
	for category, value := range byCategory {
		items = append(items, CategoryItem{Category: category, Value: value, Percentage: decimal.Zero})
	}
	sort.Slice(items, func(i, j int) bool {
		if c := items[i].Value.Cmp(items[j].Value); c != 0 {
			return c > 0
		}
		return items[i].Category < items[j].Category
	})

	// The last row takes the remainder so the shares add up to exactly 100.
	assigned := decimal.Zero
	for i := range items {
		items[i].Color = Palette[i%len(Palette)]
		if !total.IsPositive() {
			continue
		}
		if i == len(items)-1 {
			items[i].Percentage = hundred.Sub(assigned)
			continue
		}
		items[i].Percentage = items[i].Value.Mul(hundred).Div(total)
		assigned = assigned.Add(items[i].Percentage)
	}
	return items
}

// TrendPoint is one calendar month of the monthly trend.
type TrendPoint struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// ClampMonths bounds a requested trend length to 1..MaxTrendMonths,
// treating non-positive values as the default.
func ClampMonths(months int) int {
	switch {
	case months <= 0:
		return DefaultTrendMonths
	case months > MaxTrendMonths:
		return MaxTrendMonths
	}
	return months
}

// MonthlyTrend groups expenses from the last months×30 days by calendar
// month. Months without expenses are omitted; income is always zero.
func MonthlyTrend(expenses []models.Expense, months int, now time.Time) []TrendPoint {
	from, to := Window(now, ClampMonths(months)*30)

	type bucket struct {
		first time.Time
		total decimal.Decimal
	}
	byMonth := map[string]*bucket{}
	for _, e := range expenses {
		if !inWindow(e.Date, from, to) {
			continue
		}
		key := e.Date.Format("2006-01")
		b, ok := byMonth[key]
		if !ok {
			b = &bucket{
				first: time.Date(e.Date.Year(), e.Date.Month(), 1, 0, 0, 0, 0, e.Date.Location()),
				total: decimal.Zero,
			}
			byMonth[key] = b
		}
		b.total = b.total.Add(e.Value)
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	points := make([]TrendPoint, 0, len(keys))
	for _, k := range keys {
		b := byMonth[k]
		points = append(points, TrendPoint{
			Month:    b.first.Format("Jan/2006"),
			Income:   decimal.Zero,
			Expenses: b.total,
		})
	}
	return points
}

// ChangePercentage holds period-over-period deltas shown on the dashboard.
type ChangePercentage struct {
	Balance     float64 `json:"balance"`
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	Investments float64 `json:"investments"`
}

// PlaceholderChange is reported until period-over-period history exists.
// TODO: compute from the previous window once income records are tracked.
var PlaceholderChange = ChangePercentage{Balance: 5.2, Income: 8.1, Expenses: -3.4, Investments: 12.7}

// FinancialSummary is the headline view of a user's finances.
type FinancialSummary struct {
	TotalBalance     decimal.Decimal  `json:"total_balance"`
	TotalIncome      decimal.Decimal  `json:"total_income"`
	TotalExpenses    decimal.Decimal  `json:"total_expenses"`
	TotalInvestments decimal.Decimal  `json:"total_investments"`
	Period           Period           `json:"period"`
	ChangePercentage ChangePercentage `json:"change_percentage"`
}

// Summarize totals expenses inside the period window and the current value
// of every investment. Balance is income minus expenses plus investments.
func Summarize(expenses []models.Expense, investments []models.Investment, period Period, now time.Time) FinancialSummary {
	from, to := Window(now, period.Days())

	spent := decimal.Zero
	for _, e := range expenses {
		if inWindow(e.Date, from, to) {
			spent = spent.Add(e.Value)
		}
	}
	invested := decimal.Zero
	for _, inv := range investments {
		invested = invested.Add(inv.CurrentValue)
	}
	income := decimal.Zero

	return FinancialSummary{
		TotalBalance:     income.Sub(spent).Add(invested),
		TotalIncome:      income,
		TotalExpenses:    spent,
		TotalInvestments: invested,
		Period:           period,
		ChangePercentage: PlaceholderChange,
	}
}

// RecentTransaction is a display row for the dashboard's activity list.
type RecentTransaction struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Value    decimal.Decimal `json:"value"`
	Date     string          `json:"date"`
	Category string          `json:"category"`
	Type     string          `json:"type"`
}

// ClampLimit bounds a recent-transactions limit to 1..MaxRecentLimit,
// treating non-positive values as the default.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultRecentLimit
	case limit > MaxRecentLimit:
		return MaxRecentLimit
	}
	return limit
}

// RecentTransactions returns up to limit expenses, newest first, formatted
// for display.
func RecentTransactions(expenses []models.Expense, limit int) []RecentTransaction {
	sorted := append([]models.Expense(nil), expenses...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if n := ClampLimit(limit); len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make([]RecentTransaction, 0, len(sorted))
	for _, e := range sorted {
		out = append(out, RecentTransaction{
			ID:       e.ID,
			Name:     e.Name,
			Value:    e.Value,
			Date:     e.Date.Format("02/01/2006"),
			Category: e.Category,
			Type:     "expense",
		})
	}
	return out
}
