package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/MateusMunaro/financial-manager/internal/errors"
	"github.com/MateusMunaro/financial-manager/internal/models"
	"github.com/MateusMunaro/financial-manager/internal/pagination"
	"github.com/MateusMunaro/financial-manager/internal/services"
	"github.com/MateusMunaro/financial-manager/internal/stats"
)

// --- mock investment service ---

type mockInvestmentService struct {
	createInvestmentFn     func(userID string, draft models.Investment) (*models.Investment, error)
	getInvestmentsFn       func(userID string, page pagination.PageRequest, filter services.InvestmentFilter) (*pagination.PageResponse[models.Investment], error)
	getInvestmentByIDFn    func(userID, investmentID string) (*models.Investment, error)
	updateInvestmentFn     func(userID, investmentID string, patch models.InvestmentPatch) (*models.Investment, error)
	deleteInvestmentFn     func(userID, investmentID string) error
	getInvestmentHistoryFn func(userID, investmentID string) ([]models.InvestmentHistory, error)
	updateCurrentValueFn   func(userID, investmentID string, value decimal.Decimal) (*models.Investment, error)
	getInvestmentStatsFn   func(userID string) (*stats.InvestmentSummary, error)
}

func (m *mockInvestmentService) CreateInvestment(userID string, draft models.Investment) (*models.Investment, error) {
	if m.createInvestmentFn != nil {
		return m.createInvestmentFn(userID, draft)
	}
	draft.ID = testOtherID
	return &draft, nil
}

func (m *mockInvestmentService) GetInvestments(userID string, page pagination.PageRequest, filter services.InvestmentFilter) (*pagination.PageResponse[models.Investment], error) {
	if m.getInvestmentsFn != nil {
		return m.getInvestmentsFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Investment{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockInvestmentService) GetInvestmentByID(userID, investmentID string) (*models.Investment, error) {
	if m.getInvestmentByIDFn != nil {
		return m.getInvestmentByIDFn(userID, investmentID)
	}
	return &models.Investment{Base: models.Base{ID: investmentID}, UserID: userID}, nil
}

func (m *mockInvestmentService) UpdateInvestment(userID, investmentID string, patch models.InvestmentPatch) (*models.Investment, error) {
	if m.updateInvestmentFn != nil {
		return m.updateInvestmentFn(userID, investmentID, patch)
	}
	return &models.Investment{Base: models.Base{ID: investmentID}, UserID: userID}, nil
}

func (m *mockInvestmentService) DeleteInvestment(userID, investmentID string) error {
	if m.deleteInvestmentFn != nil {
		return m.deleteInvestmentFn(userID, investmentID)
	}
	return nil
}

func (m *mockInvestmentService) GetInvestmentHistory(userID, investmentID string) ([]models.InvestmentHistory, error) {
	if m.getInvestmentHistoryFn != nil {
		return m.getInvestmentHistoryFn(userID, investmentID)
	}
	return nil, nil
}

func (m *mockInvestmentService) UpdateCurrentValue(userID, investmentID string, value decimal.Decimal) (*models.Investment, error) {
	if m.updateCurrentValueFn != nil {
		return m.updateCurrentValueFn(userID, investmentID, value)
	}
	return &models.Investment{Base: models.Base{ID: investmentID}, UserID: userID, CurrentValue: value}, nil
}

func (m *mockInvestmentService) GetInvestmentStats(userID string) (*stats.InvestmentSummary, error) {
	if m.getInvestmentStatsFn != nil {
		return m.getInvestmentStatsFn(userID)
	}
	summary := stats.InvestmentStats(nil)
	return &summary, nil
}

var _ services.InvestmentServicer = (*mockInvestmentService)(nil)

func setupInvestmentRouter(handler *InvestmentHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/investments", handler.CreateInvestment)
	auth.GET("/investments", handler.GetInvestments)
	auth.GET("/investments/stats", handler.GetInvestmentStats)
	auth.GET("/investments/:id", handler.GetInvestment)
	auth.PUT("/investments/:id", handler.UpdateInvestment)
	auth.DELETE("/investments/:id", handler.DeleteInvestment)
	auth.GET("/investments/:id/history", handler.GetInvestmentHistory)
	auth.PATCH("/investments/:id/update-value", handler.UpdateValue)
	return r
}

func TestInvestmentHandler_CreateInvestment(t *testing.T) {
	t.Run("current value defaults to cost basis", func(t *testing.T) {
		var got models.Investment
		svc := &mockInvestmentService{
			createInvestmentFn: func(_ string, draft models.Investment) (*models.Investment, error) {
				got = draft
				return &draft, nil
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/investments",
			`{"name":"Petrobras","type":"stocks","value":3000,"purchase_date":"2024-02-01","quantity":100,"ticker":"PETR4"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.CurrentValue.Equal(decimal.NewFromInt(3000)) {
			t.Errorf("expected current value 3000, got %s", got.CurrentValue)
		}
		if got.Quantity == nil || *got.Quantity != 100 {
			t.Errorf("expected quantity 100, got %v", got.Quantity)
		}
	})

	t.Run("accepts a zero current value", func(t *testing.T) {
		var got models.Investment
		svc := &mockInvestmentService{
			createInvestmentFn: func(_ string, draft models.Investment) (*models.Investment, error) {
				got = draft
				return &draft, nil
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/investments",
			`{"name":"Startup","type":"other","value":1000,"current_value":0,"purchase_date":"2024-02-01"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.CurrentValue.IsZero() {
			t.Errorf("expected current value 0, got %s", got.CurrentValue)
		}
	})

	tests := []struct {
		name string
		body string
	}{
		{"unknown type", `{"name":"X","type":"bond","value":10,"purchase_date":"2024-02-01"}`},
		{"zero value", `{"name":"X","type":"stocks","value":0,"purchase_date":"2024-02-01"}`},
		{"negative current value", `{"name":"X","type":"stocks","value":10,"current_value":-1,"purchase_date":"2024-02-01"}`},
		{"zero quantity", `{"name":"X","type":"stocks","value":10,"quantity":0,"purchase_date":"2024-02-01"}`},
		{"ticker too long", `{"name":"X","type":"stocks","value":10,"ticker":"ABCDEFGHIJKLMNOPQRSTU","purchase_date":"2024-02-01"}`},
		{"missing purchase date", `{"name":"X","type":"stocks","value":10}`},
	}
	for _, tt := range tests {
		t.Run("returns 400 on "+tt.name, func(t *testing.T) {
			r := setupInvestmentRouter(NewInvestmentHandler(&mockInvestmentService{}, &mockAuditService{}))

			rec := doRequest(r, "POST", "/investments", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestInvestmentHandler_GetInvestments(t *testing.T) {
	t.Run("parses filters", func(t *testing.T) {
		var got services.InvestmentFilter
		svc := &mockInvestmentService{
			getInvestmentsFn: func(_ string, page pagination.PageRequest, filter services.InvestmentFilter) (*pagination.PageResponse[models.Investment], error) {
				got = filter
				resp := pagination.NewPageResponse([]models.Investment{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/investments?type=crypto&min_value=100&search=btc", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.Type == nil || *got.Type != models.InvestmentCrypto {
			t.Errorf("expected crypto, got %v", got.Type)
		}
		if got.MinValue == nil || got.MaxValue != nil || got.Search != "btc" {
			t.Errorf("unexpected filter: %+v", got)
		}
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		r := setupInvestmentRouter(NewInvestmentHandler(&mockInvestmentService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/investments?type=bond", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestInvestmentHandler_UpdateValue(t *testing.T) {
	t.Run("passes the new value", func(t *testing.T) {
		var got decimal.Decimal
		svc := &mockInvestmentService{
			updateCurrentValueFn: func(userID, investmentID string, value decimal.Decimal) (*models.Investment, error) {
				got = value
				return &models.Investment{Base: models.Base{ID: investmentID}, UserID: userID, CurrentValue: value}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, audit))

		rec := doRequest(r, "PATCH", "/investments/"+testOtherID+"/update-value", `{"current_value":1012.4}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.Equal(decimal.RequireFromString("1012.4")) {
			t.Errorf("expected 1012.4, got %s", got)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "UPDATE_INVESTMENT_VALUE" {
			t.Errorf("expected UPDATE_INVESTMENT_VALUE audit, got %+v", audit.entries)
		}
	})

	t.Run("accepts zero", func(t *testing.T) {
		r := setupInvestmentRouter(NewInvestmentHandler(&mockInvestmentService{}, &mockAuditService{}))

		rec := doRequest(r, "PATCH", "/investments/"+testOtherID+"/update-value", `{"current_value":0}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 when missing", func(t *testing.T) {
		r := setupInvestmentRouter(NewInvestmentHandler(&mockInvestmentService{}, &mockAuditService{}))

		rec := doRequest(r, "PATCH", "/investments/"+testOtherID+"/update-value", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 for another user's investment", func(t *testing.T) {
		svc := &mockInvestmentService{
			updateCurrentValueFn: func(_, _ string, _ decimal.Decimal) (*models.Investment, error) {
				return nil, apperrors.ErrInvestmentNotFound
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PATCH", "/investments/"+testOtherID+"/update-value", `{"current_value":5}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVESTMENT_NOT_FOUND")
	})
}

func TestInvestmentHandler_History(t *testing.T) {
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := &mockInvestmentService{
		getInvestmentHistoryFn: func(_, investmentID string) ([]models.InvestmentHistory, error) {
			return []models.InvestmentHistory{
				{ID: testUserID, InvestmentID: investmentID, Value: decimal.NewFromInt(110), Date: newer},
				{ID: testOtherID, InvestmentID: investmentID, Value: decimal.NewFromInt(100), Date: newer.AddDate(0, -1, 0)},
			}, nil
		},
	}
	r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/investments/"+testOtherID+"/history", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	history := parseJSON(t, rec)["history"].([]interface{})
	if len(history) != 2 || history[0].(map[string]interface{})["value"].(float64) != 110 {
		t.Errorf("expected newest snapshot first, got %v", history)
	}
}

func TestInvestmentHandler_Stats(t *testing.T) {
	svc := &mockInvestmentService{
		getInvestmentStatsFn: func(string) (*stats.InvestmentSummary, error) {
			summary := stats.InvestmentStats([]models.Investment{
				{Type: models.InvestmentStocks, Value: decimal.NewFromInt(100), CurrentValue: decimal.NewFromInt(150)},
			})
			return &summary, nil
		},
	}
	r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/investments/stats", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["profit_percentage"].(float64) != 50 {
		t.Errorf("expected 50%% profit, got %v", result["profit_percentage"])
	}
}
