package stats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/MateusMunaro/financial-manager/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func expense(category, value string, date time.Time, pm *models.PaymentMethodType) models.Expense {
	return models.Expense{Name: category + " item", Category: category, Value: dec(value), Date: date, PaymentMethod: pm}
}

func pmt(t models.PaymentMethodType) *models.PaymentMethodType { return &t }

func TestExpenseStats(t *testing.T) {
	expenses := []models.Expense{
		expense("Food", "10.50", now, pmt(models.PaymentMethodPix)),
		expense("Food", "20.00", now, pmt(models.PaymentMethodCreditCard)),
		expense("Transport", "5.25", now, nil),
	}

	s := ExpenseStats(expenses, PeriodWeek)

	assert.True(t, s.Total.Equal(dec("35.75")))
	assert.Equal(t, 3, s.Count)
	assert.True(t, s.Average.Mul(decimal.NewFromInt(3)).Sub(s.Total).Abs().LessThan(dec("0.000000000001")), "got %s", s.Average)
	assert.Equal(t, "11.92", s.Average.StringFixed(2))
	assert.True(t, s.ByCategory["Food"].Equal(dec("30.50")))
	assert.True(t, s.ByCategory["Transport"].Equal(dec("5.25")))
	assert.Len(t, s.ByPaymentMethod, 2)
	assert.True(t, s.ByPaymentMethod["pix"].Equal(dec("10.50")))
	assert.Equal(t, PeriodWeek, s.Period)
}

func TestExpenseStats_Partition(t *testing.T) {
	expenses := []models.Expense{
		expense("A", "1.10", now, nil),
		expense("B", "2.20", now, pmt(models.PaymentMethodCash)),
		expense("a", "3.30", now, pmt(models.PaymentMethodCash)),
		expense("C", "4.40", now, pmt(models.PaymentMethodOther)),
	}
	s := ExpenseStats(expenses, PeriodMonth)

	sum := decimal.Zero
	for _, v := range s.ByCategory {
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(s.Total))
	assert.Len(t, s.ByCategory, 4, "category keys are case-sensitive")

	tagged := decimal.Zero
	for _, v := range s.ByPaymentMethod {
		tagged = tagged.Add(v)
	}
	assert.True(t, tagged.LessThanOrEqual(s.Total))
	assert.True(t, tagged.Equal(dec("9.90")))
}

func TestExpenseStats_Empty(t *testing.T) {
	s := ExpenseStats(nil, PeriodMonth)

	assert.True(t, s.Total.IsZero())
	assert.Equal(t, 0, s.Count)
	assert.True(t, s.Average.IsZero())
	assert.Empty(t, s.ByCategory)
	assert.NotNil(t, s.ByCategory)
	assert.NotNil(t, s.ByPaymentMethod)
}

func TestInvestmentStats(t *testing.T) {
	investments := []models.Investment{
		{Type: models.InvestmentStocks, Value: dec("1000"), CurrentValue: dec("1200")},
		{Type: models.InvestmentStocks, Value: dec("500"), CurrentValue: dec("400")},
		{Type: models.InvestmentCrypto, Value: dec("500"), CurrentValue: dec("900")},
	}

	s := InvestmentStats(investments)

	assert.True(t, s.TotalInvested.Equal(dec("2000")))
	assert.True(t, s.CurrentTotal.Equal(dec("2500")))
	assert.True(t, s.TotalProfit.Equal(dec("500")))
	assert.True(t, s.ProfitPercentage.Equal(dec("25")), "got %s", s.ProfitPercentage)
	assert.Equal(t, 3, s.Count)

	stocks := s.ByType["stocks"]
	assert.Equal(t, 2, stocks.Count)
	assert.True(t, stocks.Invested.Equal(dec("1500")))
	assert.True(t, stocks.Current.Equal(dec("1600")))
	assert.Equal(t, 1, s.ByType["crypto"].Count)
}

func TestInvestmentStats_ZeroInvested(t *testing.T) {
	s := InvestmentStats(nil)
	assert.True(t, s.ProfitPercentage.IsZero())
	assert.Equal(t, 0, s.Count)

	s = InvestmentStats([]models.Investment{{Type: models.InvestmentOther, Value: decimal.Zero, CurrentValue: dec("10")}})
	assert.True(t, s.ProfitPercentage.IsZero())
	assert.True(t, s.TotalProfit.Equal(dec("10")))
}

func TestCategorySpending(t *testing.T) {
	expenses := []models.Expense{
		expense("Food", "60", now.AddDate(0, 0, -1), nil),
		expense("Rent", "30", now.AddDate(0, 0, -10), nil),
		expense("Fun", "10", now.AddDate(0, 0, -29), nil),
		expense("Old", "999", now.AddDate(0, 0, -45), nil),
	}

	items := CategorySpending(expenses, PeriodMonth, now)
	require.Len(t, items, 3)

	assert.Equal(t, "Food", items[0].Category)
	assert.Equal(t, "Rent", items[1].Category)
	assert.Equal(t, "Fun", items[2].Category)
	assert.True(t, items[0].Percentage.Equal(dec("60")))

	pct := decimal.Zero
	for i, it := range items {
		pct = pct.Add(it.Percentage)
		assert.Equal(t, Palette[i], it.Color)
		if i > 0 {
			assert.True(t, items[i-1].Value.GreaterThanOrEqual(it.Value))
		}
	}
	assert.True(t, pct.Equal(hundred))
}

func TestCategorySpending_YearWindow(t *testing.T) {
	expenses := []models.Expense{
		expense("Old", "10", now.AddDate(0, 0, -45), nil),
		expense("Ancient", "10", now.AddDate(-2, 0, 0), nil),
	}
	for _, p := range []Period{PeriodDay, PeriodWeek, PeriodYear} {
		items := CategorySpending(expenses, p, now)
		require.Len(t, items, 1, "period %s", p)
		assert.Equal(t, "Old", items[0].Category)
	}
}

func TestCategorySpending_TiesAndPaletteWrap(t *testing.T) {
	var expenses []models.Expense
	for _, c := range []string{"g", "f", "e", "d", "c", "b", "a"} {
		expenses = append(expenses, expense(c, "5", now, nil))
	}

	items := CategorySpending(expenses, PeriodMonth, now)
	require.Len(t, items, 7)
	assert.Equal(t, "a", items[0].Category)
	assert.Equal(t, "g", items[6].Category)
	assert.Equal(t, Palette[0], items[6].Color)
}

func TestCategorySpending_ThreeWaySplit(t *testing.T) {
	expenses := []models.Expense{
		expense("Food", "10", now, nil),
		expense("Rent", "10", now, nil),
		expense("Fun", "10", now, nil),
	}

	items := CategorySpending(expenses, PeriodMonth, now)
	require.Len(t, items, 3)

	pct := decimal.Zero
	for _, it := range items {
		assert.Equal(t, "33.33", it.Percentage.StringFixed(2), "category %s", it.Category)
		pct = pct.Add(it.Percentage)
	}
	assert.True(t, pct.Equal(hundred), "shares add up to %s", pct)
}

func TestExpenseStats_NonTerminatingAverage(t *testing.T) {
	expenses := []models.Expense{
		expense("A", "10", now, nil),
		expense("B", "0", now, nil),
		expense("C", "0.01", now, nil),
	}

	s := ExpenseStats(expenses, PeriodMonth)

	assert.True(t, s.Total.Equal(dec("10.01")))
	diff := s.Average.Mul(decimal.NewFromInt(int64(s.Count))).Sub(s.Total).Abs()
	assert.True(t, diff.LessThan(dec("0.000000000001")), "average %s drifts from total by %s", s.Average, diff)
}

func TestInvestmentStats_FractionalPercentage(t *testing.T) {
	s := InvestmentStats([]models.Investment{
		{Type: models.InvestmentStocks, Value: dec("3"), CurrentValue: dec("4")},
	})
	assert.Equal(t, "33.3333", s.ProfitPercentage.StringFixed(4))
}

func TestCategorySpending_Empty(t *testing.T) {
	items := CategorySpending(nil, PeriodMonth, now)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestMonthlyTrend(t *testing.T) {
	expenses := []models.Expense{
		expense("Food", "10", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), nil),
		expense("Food", "15", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), nil),
		expense("Rent", "100", time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC), nil),
		expense("Rent", "100", time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), nil),
	}

	points := MonthlyTrend(expenses, 6, now)
	require.Len(t, points, 2, "months without expenses are omitted")

	assert.Equal(t, "Apr/2024", points[0].Month)
	assert.True(t, points[0].Expenses.Equal(dec("100")))
	assert.Equal(t, "Jun/2024", points[1].Month)
	assert.True(t, points[1].Expenses.Equal(dec("25")))
	for _, p := range points {
		assert.True(t, p.Income.IsZero())
	}
}

func TestMonthlyTrend_AcrossYears(t *testing.T) {
	expenses := []models.Expense{
		expense("x", "1", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), nil),
		expense("x", "1", time.Date(2023, 12, 10, 0, 0, 0, 0, time.UTC), nil),
		expense("x", "1", time.Date(2023, 11, 10, 0, 0, 0, 0, time.UTC), nil),
	}

	points := MonthlyTrend(expenses, 12, now)
	require.Len(t, points, 3)
	assert.Equal(t, []string{"Nov/2023", "Dec/2023", "Jan/2024"}, []string{points[0].Month, points[1].Month, points[2].Month})
}

func TestClampMonths(t *testing.T) {
	assert.Equal(t, 6, ClampMonths(0))
	assert.Equal(t, 6, ClampMonths(-3))
	assert.Equal(t, 1, ClampMonths(1))
	assert.Equal(t, 24, ClampMonths(24))
	assert.Equal(t, 24, ClampMonths(100))
}

func TestSummarize(t *testing.T) {
	expenses := []models.Expense{
		expense("Food", "100", now.AddDate(0, 0, -3), nil),
		expense("Food", "50", now.AddDate(0, 0, -20), nil),
		expense("Food", "70", now.AddDate(0, -3, 0), nil),
	}
	investments := []models.Investment{
		{Value: dec("500"), CurrentValue: dec("800")},
		{Value: dec("100"), CurrentValue: dec("200")},
	}

	tests := []struct {
		period   Period
		expenses string
		balance  string
	}{
		{PeriodDay, "0", "1000"},
		{PeriodWeek, "100", "900"},
		{PeriodMonth, "150", "850"},
		{PeriodYear, "220", "780"},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			s := Summarize(expenses, investments, tt.period, now)

			assert.True(t, s.TotalExpenses.Equal(dec(tt.expenses)), "expenses %s", s.TotalExpenses)
			assert.True(t, s.TotalInvestments.Equal(dec("1000")))
			assert.True(t, s.TotalIncome.IsZero())
			assert.True(t, s.TotalBalance.Equal(dec(tt.balance)), "balance %s", s.TotalBalance)
			assert.True(t, s.TotalBalance.Equal(s.TotalIncome.Sub(s.TotalExpenses).Add(s.TotalInvestments)))
			assert.Equal(t, tt.period, s.Period)
			assert.Equal(t, PlaceholderChange, s.ChangePercentage)
		})
	}
}

func TestRecentTransactions(t *testing.T) {
	var expenses []models.Expense
	for i := 0; i < 15; i++ {
		e := expense("Food", "1", now.AddDate(0, 0, -i), nil)
		e.ID = string(rune('a' + i))
		expenses = append(expenses, e)
	}
	// Shuffle order: newest last.
	for i, j := 0, len(expenses)-1; i < j; i, j = i+1, j-1 {
		expenses[i], expenses[j] = expenses[j], expenses[i]
	}

	recent := RecentTransactions(expenses, 0)
	require.Len(t, recent, DefaultRecentLimit)
	assert.Equal(t, "a", recent[0].ID)
	assert.Equal(t, "15/06/2024", recent[0].Date)
	assert.Equal(t, "expense", recent[0].Type)
	assert.Equal(t, "14/06/2024", recent[1].Date)

	assert.Len(t, RecentTransactions(expenses, 3), 3)
	assert.Len(t, RecentTransactions(expenses, 500), 15)
	assert.Empty(t, RecentTransactions(nil, 10))
}

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, PeriodDay, ParsePeriod("day"))
	assert.Equal(t, PeriodYear, ParsePeriod("year"))
	assert.Equal(t, PeriodMonth, ParsePeriod(""))
	assert.Equal(t, PeriodMonth, ParsePeriod("fortnight"))
}

func TestJSONNumbers(t *testing.T) {
	s := ExpenseStats([]models.Expense{expense("Food", "12.34", now, nil)}, PeriodMonth)
	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"total":12.34`)
}
