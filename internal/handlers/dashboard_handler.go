package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MateusMunaro/financial-manager/internal/services"
	"github.com/MateusMunaro/financial-manager/internal/stats"
)

// DashboardHandler serves the aggregate views of the dashboard.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// PeriodQuery selects the reporting window.
type PeriodQuery struct {
	Period string `form:"period" binding:"omitempty,stats_period"`
}

// RecentQuery bounds the recent transactions list.
type RecentQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

// TrendQuery selects how many months the trend covers. Out-of-range values are clamped to 1..24.
type TrendQuery struct {
	Months int `form:"months"`
}

func (h *DashboardHandler) period(c *gin.Context) (stats.Period, error) {
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return "", bindError(err)
	}
	return stats.ParsePeriod(q.Period), nil
}

// GetDashboard returns the composite overview.
// @Summary     Dashboard
// @Description Summary and category spending for the period, the ten latest expenses and a six month trend
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "day, week, month or year (default month)"
// @Success     200 {object} services.Dashboard "Dashboard"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     429 {object} ErrorResponse "Repeated request"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := h.period(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dash, err := h.dashboardService.GetDashboard(c.Request.Context(), userID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}

// GetSummary returns the financial summary.
// @Summary     Financial summary
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "day, week, month or year (default month)"
// @Success     200 {object} stats.FinancialSummary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := h.period(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), userID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetRecentTransactions returns the latest expenses.
// @Summary     Recent transactions
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Number of rows, 1 to 50 (default 10)"
// @Success     200 {array}  stats.RecentTransaction "Recent transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/recent-transactions [get]
func (h *DashboardHandler) GetRecentTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q RecentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	rows, err := h.dashboardService.GetRecentTransactions(c.Request.Context(), userID, q.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// GetCategorySpending returns spending per category for the period.
// @Summary     Category spending
// @Description Trailing 30 days for month, 365 days for any other period
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "day, week, month or year (default month)"
// @Success     200 {array}  stats.CategoryItem "Category spending"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/category-spending [get]
func (h *DashboardHandler) GetCategorySpending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := h.period(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items, err := h.dashboardService.GetCategorySpending(c.Request.Context(), userID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetMonthlyTrend returns expenses per calendar month.
// @Summary     Monthly trend
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       months query int false "Months to cover, 1 to 24 (default 6)"
// @Success     200 {array}  stats.TrendPoint "Monthly trend"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/monthly-trend [get]
func (h *DashboardHandler) GetMonthlyTrend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q TrendQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	points, err := h.dashboardService.GetMonthlyTrend(c.Request.Context(), userID, q.Months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, points)
}
