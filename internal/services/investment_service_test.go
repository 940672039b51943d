package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MateusMunaro/financial-manager/internal/models"
	"github.com/MateusMunaro/financial-manager/internal/pagination"
	"github.com/MateusMunaro/financial-manager/internal/testutil"
)

func TestCreateInvestment(t *testing.T) {
	t.Run("writes_first_history_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db)
		user := testutil.CreateTestUser(t, db)

		qty := 10.0
		inv, err := svc.CreateInvestment(user.ID, models.Investment{
			Name:         "Petrobras",
			Type:         models.InvestmentStocks,
			Value:        decimal.NewFromInt(300),
			CurrentValue: decimal.NewFromInt(320),
			PurchaseDate: day(2024, 1, 10),
			Quantity:     &qty,
			Ticker:       "PETR4",
		})
		testutil.AssertNoError(t, err)

		history, err := svc.GetInvestmentHistory(user.ID, inv.ID)
		testutil.AssertNoError(t, err)
		if len(history) != 1 || !history[0].Value.Equal(decimal.NewFromInt(320)) {
			t.Errorf("expected one snapshot of the current value, got %+v", history)
		}
	})

	t.Run("unknown_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateInvestment(user.ID, models.Investment{Name: "Bond", Type: "bond", Value: decimal.NewFromInt(1)})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetInvestments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewInvestmentService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	older := testutil.CreateTestInvestment(t, db, user.ID, models.InvestmentStocks, 100, 150)
	db.Model(older).Updates(map[string]interface{}{"purchase_date": day(2023, 1, 1), "name": "Vale", "ticker": "VALE3"})
	newer := testutil.CreateTestInvestment(t, db, user.ID, models.InvestmentCrypto, 1000, 900)
	db.Model(newer).Updates(map[string]interface{}{"purchase_date": day(2024, 1, 1), "name": "Bitcoin", "ticker": "BTC"})
	testutil.CreateTestInvestment(t, db, other.ID, models.InvestmentStocks, 100, 150)

	resp, err := svc.GetInvestments(user.ID, firstPage(), InvestmentFilter{})
	testutil.AssertNoError(t, err)
	if resp.TotalItems != 2 || resp.Data[0].ID != newer.ID {
		t.Fatalf("expected 2 investments newest first, got %+v", resp.Data)
	}

	crypto := models.InvestmentCrypto
	minV := decimal.NewFromInt(200)
	tests := []struct {
		name   string
		filter InvestmentFilter
		want   int64
	}{
		{"type", InvestmentFilter{Type: &crypto}, 1},
		{"min_current_value", InvestmentFilter{MinValue: &minV}, 1},
		{"search_ticker", InvestmentFilter{Search: "vale3"}, 1},
		{"search_name", InvestmentFilter{Search: "coin"}, 1},
		{"search_miss", InvestmentFilter{Search: "tesla"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetInvestments(user.ID, pagination.PageRequest{Page: 1, PageSize: 10}, tt.filter)
			testutil.AssertNoError(t, err)
			if resp.TotalItems != tt.want {
				t.Errorf("expected %d, got %d", tt.want, resp.TotalItems)
			}
		})
	}
}

func TestUpdateCurrentValue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	user := testutil.CreateTestUser(t, db)

	clock := day(2024, 5, 1)
	svc := &investmentService{db: db, now: func() time.Time { return clock }}

	inv, err := svc.CreateInvestment(user.ID, models.Investment{
		Name: "Tesouro Selic", Type: models.InvestmentFixedIncome,
		Value: decimal.NewFromInt(1000), CurrentValue: decimal.NewFromInt(1000), PurchaseDate: clock,
	})
	testutil.AssertNoError(t, err)

	clock = day(2024, 6, 1)
	updated, err := svc.UpdateCurrentValue(user.ID, inv.ID, decimal.RequireFromString("1012.40"))
	testutil.AssertNoError(t, err)
	testutil.AssertDecimal(t, updated.CurrentValue, "1012.40")

	history, err := svc.GetInvestmentHistory(user.ID, inv.ID)
	testutil.AssertNoError(t, err)
	if len(history) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(history))
	}
	if !history[0].Date.Equal(day(2024, 6, 1)) || !history[0].Value.Equal(decimal.RequireFromString("1012.40")) {
		t.Errorf("expected newest snapshot first, got %+v", history[0])
	}

	_, err = svc.UpdateCurrentValue(user.ID, inv.ID, decimal.NewFromInt(-1))
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestUpdateInvestment_History(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	clock := day(2024, 1, 1)
	svc := &investmentService{db: db, now: func() time.Time { return clock }}
	user := testutil.CreateTestUser(t, db)

	inv, err := svc.CreateInvestment(user.ID, models.Investment{
		Name: "IVVB11", Type: models.InvestmentETF,
		Value: decimal.NewFromInt(500), CurrentValue: decimal.NewFromInt(500), PurchaseDate: clock,
	})
	testutil.AssertNoError(t, err)

	t.Run("plain_update_keeps_history", func(t *testing.T) {
		name := "IVVB11 S&P"
		updated, err := svc.UpdateInvestment(user.ID, inv.ID, models.InvestmentPatch{Name: &name})
		testutil.AssertNoError(t, err)
		if updated.Name != name {
			t.Errorf("expected %s, got %s", name, updated.Name)
		}

		history, _ := svc.GetInvestmentHistory(user.ID, inv.ID)
		if len(history) != 1 {
			t.Errorf("expected 1 entry, got %d", len(history))
		}
	})

	t.Run("current_value_update_appends_entry", func(t *testing.T) {
		clock = day(2024, 2, 1)
		value := decimal.RequireFromString("540.25")
		updated, err := svc.UpdateInvestment(user.ID, inv.ID, models.InvestmentPatch{CurrentValue: &value})
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, updated.CurrentValue, "540.25")

		history, _ := svc.GetInvestmentHistory(user.ID, inv.ID)
		if len(history) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(history))
		}
		if !history[0].Date.Equal(day(2024, 2, 1)) {
			t.Errorf("expected newest entry dated 2024-02-01, got %s", history[0].Date)
		}
		testutil.AssertDecimal(t, history[0].Value, "540.25")
	})

	t.Run("negative_current_value", func(t *testing.T) {
		value := decimal.NewFromInt(-1)
		_, err := svc.UpdateInvestment(user.ID, inv.ID, models.InvestmentPatch{CurrentValue: &value})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteInvestment_CascadesHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewInvestmentService(db)
	user := testutil.CreateTestUser(t, db)

	inv, err := svc.CreateInvestment(user.ID, models.Investment{
		Name: "ETH", Type: models.InvestmentCrypto,
		Value: decimal.NewFromInt(100), CurrentValue: decimal.NewFromInt(100), PurchaseDate: day(2024, 1, 1),
	})
	testutil.AssertNoError(t, err)
	_, err = svc.UpdateCurrentValue(user.ID, inv.ID, decimal.NewFromInt(130))
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.DeleteInvestment(user.ID, inv.ID))

	var count int64
	db.Model(&models.InvestmentHistory{}).Where("investment_id = ?", inv.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected history to be deleted, %d entries left", count)
	}
	_, err = svc.GetInvestmentHistory(user.ID, inv.ID)
	testutil.AssertAppError(t, err, "INVESTMENT_NOT_FOUND")
}

func TestInvestment_OtherOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewInvestmentService(db)
	owner := testutil.CreateTestUser(t, db)
	intruder := testutil.CreateTestUser(t, db)
	inv := testutil.CreateTestInvestment(t, db, owner.ID, models.InvestmentFunds, 100, 100)

	_, err := svc.GetInvestmentByID(intruder.ID, inv.ID)
	testutil.AssertAppError(t, err, "INVESTMENT_NOT_FOUND")
	_, err = svc.UpdateCurrentValue(intruder.ID, inv.ID, decimal.NewFromInt(1))
	testutil.AssertNotFound(t, err)
	err = svc.DeleteInvestment(intruder.ID, inv.ID)
	testutil.AssertNotFound(t, err)
}

func TestGetInvestmentStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewInvestmentService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestInvestment(t, db, user.ID, models.InvestmentStocks, 1000, 1200)
	testutil.CreateTestInvestment(t, db, user.ID, models.InvestmentREIT, 1000, 1000)

	summary, err := svc.GetInvestmentStats(user.ID)
	testutil.AssertNoError(t, err)
	if summary.Count != 2 || !summary.TotalProfit.Equal(decimal.NewFromInt(200)) {
		t.Errorf("unexpected summary: %+v", summary)
	}
	testutil.AssertDecimal(t, summary.ProfitPercentage, "10")
	if summary.ByType["reit"].Count != 1 {
		t.Errorf("expected one reit, got %+v", summary.ByType)
	}
}
