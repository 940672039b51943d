package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/MateusMunaro/financial-manager/internal/services"
	"github.com/MateusMunaro/financial-manager/internal/stats"
)

// --- mock dashboard service ---

type mockDashboardService struct {
	getDashboardFn          func(ctx context.Context, userID string, period stats.Period) (*services.Dashboard, error)
	getSummaryFn            func(ctx context.Context, userID string, period stats.Period) (*stats.FinancialSummary, error)
	getRecentTransactionsFn func(ctx context.Context, userID string, limit int) ([]stats.RecentTransaction, error)
	getCategorySpendingFn   func(ctx context.Context, userID string, period stats.Period) ([]stats.CategoryItem, error)
	getMonthlyTrendFn       func(ctx context.Context, userID string, months int) ([]stats.TrendPoint, error)
}

func (m *mockDashboardService) GetDashboard(ctx context.Context, userID string, period stats.Period) (*services.Dashboard, error) {
	if m.getDashboardFn != nil {
		return m.getDashboardFn(ctx, userID, period)
	}
	return &services.Dashboard{}, nil
}

func (m *mockDashboardService) GetSummary(ctx context.Context, userID string, period stats.Period) (*stats.FinancialSummary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(ctx, userID, period)
	}
	return &stats.FinancialSummary{Period: period}, nil
}

func (m *mockDashboardService) GetRecentTransactions(ctx context.Context, userID string, limit int) ([]stats.RecentTransaction, error) {
	if m.getRecentTransactionsFn != nil {
		return m.getRecentTransactionsFn(ctx, userID, limit)
	}
	return []stats.RecentTransaction{}, nil
}

func (m *mockDashboardService) GetCategorySpending(ctx context.Context, userID string, period stats.Period) ([]stats.CategoryItem, error) {
	if m.getCategorySpendingFn != nil {
		return m.getCategorySpendingFn(ctx, userID, period)
	}
	return []stats.CategoryItem{}, nil
}

func (m *mockDashboardService) GetMonthlyTrend(ctx context.Context, userID string, months int) ([]stats.TrendPoint, error) {
	if m.getMonthlyTrendFn != nil {
		return m.getMonthlyTrendFn(ctx, userID, months)
	}
	return []stats.TrendPoint{}, nil
}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

func setupDashboardRouter(handler *DashboardHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/dashboard", handler.GetDashboard)
	auth.GET("/dashboard/summary", handler.GetSummary)
	auth.GET("/dashboard/recent-transactions", handler.GetRecentTransactions)
	auth.GET("/dashboard/category-spending", handler.GetCategorySpending)
	auth.GET("/dashboard/monthly-trend", handler.GetMonthlyTrend)
	return r
}

func TestDashboardHandler_Period(t *testing.T) {
	tests := []struct {
		query string
		want  stats.Period
	}{
		{"", stats.PeriodMonth},
		{"?period=day", stats.PeriodDay},
		{"?period=week", stats.PeriodWeek},
		{"?period=year", stats.PeriodYear},
	}
	for _, tt := range tests {
		t.Run("summary"+tt.query, func(t *testing.T) {
			var got stats.Period
			svc := &mockDashboardService{
				getSummaryFn: func(_ context.Context, _ string, period stats.Period) (*stats.FinancialSummary, error) {
					got = period
					return &stats.FinancialSummary{Period: period}, nil
				},
			}
			r := setupDashboardRouter(NewDashboardHandler(svc))

			rec := doRequest(r, "GET", "/dashboard/summary"+tt.query, "")

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	t.Run("returns 400 on unknown period", func(t *testing.T) {
		r := setupDashboardRouter(NewDashboardHandler(&mockDashboardService{}))

		rec := doRequest(r, "GET", "/dashboard?period=quarter", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	t.Run("returns the composite payload", func(t *testing.T) {
		svc := &mockDashboardService{
			getDashboardFn: func(_ context.Context, userID string, period stats.Period) (*services.Dashboard, error) {
				if userID != testUserID {
					t.Errorf("expected user %s, got %s", testUserID, userID)
				}
				return &services.Dashboard{
					Summary:            stats.FinancialSummary{Period: period, ChangePercentage: stats.PlaceholderChange},
					RecentTransactions: []stats.RecentTransaction{},
					CategorySpending:   []stats.CategoryItem{},
					MonthlyTrend:       []stats.TrendPoint{},
				}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard?period=week", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		for _, key := range []string{"summary", "recent_transactions", "category_spending", "monthly_trend"} {
			if _, ok := result[key]; !ok {
				t.Errorf("missing %s in %v", key, result)
			}
		}
		change := result["summary"].(map[string]interface{})["change_percentage"].(map[string]interface{})
		if change["expenses"].(float64) != -3.4 {
			t.Errorf("expected placeholder expenses change -3.4, got %v", change["expenses"])
		}
	})

	t.Run("returns 500 on storage failure", func(t *testing.T) {
		svc := &mockDashboardService{
			getDashboardFn: func(context.Context, string, stats.Period) (*services.Dashboard, error) {
				return nil, errors.New("connection reset")
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}

func TestDashboardHandler_RecentTransactions(t *testing.T) {
	t.Run("passes the limit", func(t *testing.T) {
		var got int
		svc := &mockDashboardService{
			getRecentTransactionsFn: func(_ context.Context, _ string, limit int) ([]stats.RecentTransaction, error) {
				got = limit
				return []stats.RecentTransaction{}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/recent-transactions?limit=25", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got != 25 {
			t.Errorf("expected limit 25, got %d", got)
		}
	})

	for _, limit := range []string{"0", "51", "ten"} {
		t.Run("returns 400 on limit "+limit, func(t *testing.T) {
			r := setupDashboardRouter(NewDashboardHandler(&mockDashboardService{}))

			rec := doRequest(r, "GET", "/dashboard/recent-transactions?limit="+limit, "")

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestDashboardHandler_MonthlyTrend(t *testing.T) {
	var got int
	svc := &mockDashboardService{
		getMonthlyTrendFn: func(_ context.Context, _ string, months int) ([]stats.TrendPoint, error) {
			got = months
			return []stats.TrendPoint{}, nil
		},
	}
	r := setupDashboardRouter(NewDashboardHandler(svc))

	rec := doRequest(r, "GET", "/dashboard/monthly-trend?months=36", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != 36 {
		t.Errorf("expected months to reach the service unclamped, got %d", got)
	}
}

func TestDashboardHandler_CategorySpending(t *testing.T) {
	var got stats.Period
	svc := &mockDashboardService{
		getCategorySpendingFn: func(_ context.Context, _ string, period stats.Period) ([]stats.CategoryItem, error) {
			got = period
			return []stats.CategoryItem{{Category: "Food", Color: stats.Palette[0]}}, nil
		},
	}
	r := setupDashboardRouter(NewDashboardHandler(svc))

	rec := doRequest(r, "GET", "/dashboard/category-spending?period=year", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != stats.PeriodYear {
		t.Errorf("expected year, got %s", got)
	}
}
