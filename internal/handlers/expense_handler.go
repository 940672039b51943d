package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MateusMunaro/financial-manager/internal/models"
	"github.com/MateusMunaro/financial-manager/internal/pagination"
	"github.com/MateusMunaro/financial-manager/internal/services"
	"github.com/MateusMunaro/financial-manager/internal/stats"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// CreateExpenseRequest represents the request payload for creating an expense.
type CreateExpenseRequest struct {
	Name          string                    `json:"name" binding:"required,min=1,max=100"`
	Value         decimal.Decimal           `json:"value" binding:"required,gt=0,money"`
	Category      string                    `json:"category" binding:"required,min=1,max=50"`
	Date          string                    `json:"date" binding:"required"`
	Description   string                    `json:"description" binding:"max=500"`
	PaymentMethod *models.PaymentMethodType `json:"payment_method" binding:"omitempty,payment_method_type"`
	IsRecurring   bool                      `json:"is_recurring"`
}

// UpdateExpenseRequest represents the request payload for updating an expense.
// Omitted fields are kept.
type UpdateExpenseRequest struct {
	Name          *string                   `json:"name" binding:"omitempty,min=1,max=100"`
	Value         *decimal.Decimal          `json:"value" binding:"omitempty,gt=0,money"`
	Category      *string                   `json:"category" binding:"omitempty,min=1,max=50"`
	Date          *string                   `json:"date"`
	Description   *string                   `json:"description" binding:"omitempty,max=500"`
	PaymentMethod *models.PaymentMethodType `json:"payment_method" binding:"omitempty,payment_method_type"`
	IsRecurring   *bool                     `json:"is_recurring"`
}

// ExpenseStatsQuery holds the query parameters of the stats endpoint.
type ExpenseStatsQuery struct {
	Period string `form:"period" binding:"omitempty,stats_period"`
}

// CreateExpense handles creating a new expense.
// @Summary     Create expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(userID, models.Expense{
		Name:          req.Name,
		Value:         req.Value,
		Category:      req.Category,
		Date:          date,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		IsRecurring:   req.IsRecurring,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditCreateExpense, models.AuditExpense, expense.ID, c.ClientIP(),
		map[string]any{"name": expense.Name, "value": expense.Value, "category": expense.Category})

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetExpenses handles listing the user's expenses.
// @Summary     List expenses
// @Description Paginated expenses, newest first, with optional filters
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       page           query int    false "Page number (default 1)"
// @Param       page_size      query int    false "Items per page (default 20, max 100)"
// @Param       start_date     query string false "Earliest date (YYYY-MM-DD)"
// @Param       end_date       query string false "Latest date (YYYY-MM-DD)"
// @Param       category       query string false "Exact category"
// @Param       payment_method query string false "Payment method tag"
// @Param       min_value      query number false "Minimum value"
// @Param       max_value      query number false "Maximum value"
// @Param       is_recurring   query bool   false "Recurring flag"
// @Param       search         query string false "Substring of name or description"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     429 {object} ErrorResponse "Repeated request"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.expenseService.GetExpenses(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseExpenseFilter(c *gin.Context) (services.ExpenseFilter, error) {
	var (
		filter services.ExpenseFilter
		err    error
	)
	if filter.StartDate, err = queryDate(c, "start_date"); err != nil {
		return filter, err
	}
	if filter.EndDate, err = queryDate(c, "end_date"); err != nil {
		return filter, err
	}
	if filter.MinValue, err = queryDecimal(c, "min_value"); err != nil {
		return filter, err
	}
	if filter.MaxValue, err = queryDecimal(c, "max_value"); err != nil {
		return filter, err
	}
	if filter.IsRecurring, err = queryBool(c, "is_recurring"); err != nil {
		return filter, err
	}
	if pm := queryString(c, "payment_method"); pm != nil {
		t := models.PaymentMethodType(*pm)
		if !t.Valid() {
			return filter, invalidInput("Invalid payment_method")
		}
		filter.PaymentMethod = &t
	}
	filter.Category = queryString(c, "category")
	filter.Search = c.Query("search")
	return filter, nil
}

// GetExpenseStats handles the expense statistics view.
// @Summary     Expense statistics
// @Description Totals, average and breakdowns. The date range filters; period is echoed.
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       period     query string false "day, week, month or year (default month)"
// @Param       start_date query string false "Earliest date (YYYY-MM-DD)"
// @Param       end_date   query string false "Latest date (YYYY-MM-DD)"
// @Success     200 {object} stats.ExpenseSummary "Expense statistics"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     429 {object} ErrorResponse "Repeated request"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/stats [get]
func (h *ExpenseHandler) GetExpenseStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ExpenseStatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	from, err := queryDate(c, "start_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := queryDate(c, "end_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.expenseService.GetExpenseStats(userID, stats.ParsePeriod(q.Period), from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetExpense handles retrieving a specific expense.
// @Summary     Get expense by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.Expense "Expense details"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense handles a partial update of an expense.
// @Summary     Update expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to change"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	date, err := parseOptionalDate("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(userID, expenseID, models.ExpensePatch{
		Name:          req.Name,
		Value:         req.Value,
		Category:      req.Category,
		Date:          date,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		IsRecurring:   req.IsRecurring,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditUpdateExpense, models.AuditExpense, expense.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles deleting an expense.
// @Summary     Delete expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditDeleteExpense, models.AuditExpense, expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
