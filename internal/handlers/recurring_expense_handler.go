package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MateusMunaro/financial-manager/internal/models"
	"github.com/MateusMunaro/financial-manager/internal/services"
)

// RecurringExpenseHandler handles recurring expense templates.
type RecurringExpenseHandler struct {
	recurringService services.RecurringExpenseServicer
	auditService     services.AuditServicer
}

// NewRecurringExpenseHandler creates a new RecurringExpenseHandler.
func NewRecurringExpenseHandler(recurringService services.RecurringExpenseServicer, auditService services.AuditServicer) *RecurringExpenseHandler {
	return &RecurringExpenseHandler{recurringService: recurringService, auditService: auditService}
}

// CreateRecurringExpenseRequest represents the request payload for creating a template.
type CreateRecurringExpenseRequest struct {
	Name          string                    `json:"name" binding:"required,min=1,max=100"`
	Value         decimal.Decimal           `json:"value" binding:"required,gt=0,money"`
	Category      string                    `json:"category" binding:"required,min=1,max=50"`
	Frequency     models.RecurringFrequency `json:"frequency" binding:"required,recurring_frequency"`
	DayOfMonth    *int                      `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	DayOfWeek     *int                      `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	PaymentMethod *models.PaymentMethodType `json:"payment_method" binding:"omitempty,payment_method_type"`
	IsActive      *bool                     `json:"is_active"`
	StartDate     string                    `json:"start_date" binding:"required"`
	EndDate       *string                   `json:"end_date"`
	Description   string                    `json:"description" binding:"max=500"`
}

// UpdateRecurringExpenseRequest represents the request payload for updating a template.
// Omitted fields are kept.
type UpdateRecurringExpenseRequest struct {
	Name          *string                    `json:"name" binding:"omitempty,min=1,max=100"`
	Value         *decimal.Decimal           `json:"value" binding:"omitempty,gt=0,money"`
	Category      *string                    `json:"category" binding:"omitempty,min=1,max=50"`
	Frequency     *models.RecurringFrequency `json:"frequency" binding:"omitempty,recurring_frequency"`
	DayOfMonth    *int                       `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	DayOfWeek     *int                       `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	PaymentMethod *models.PaymentMethodType  `json:"payment_method" binding:"omitempty,payment_method_type"`
	IsActive      *bool                      `json:"is_active"`
	StartDate     *string                    `json:"start_date"`
	EndDate       *string                    `json:"end_date"`
	Description   *string                    `json:"description" binding:"omitempty,max=500"`
}

// GenerateExpensesRequest represents the optional range for generating expenses.
type GenerateExpensesRequest struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// GenerateExpensesResponse reports how many expenses were created.
type GenerateExpensesResponse struct {
	Message   string `json:"message"`
	Generated int    `json:"generated"`
}

// CreateRecurringExpense handles creating a recurring expense template.
// @Summary     Create recurring expense
// @Tags        recurring-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateRecurringExpenseRequest true "Template details"
// @Success     201 {object} models.RecurringExpense "Template created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-expenses [post]
func (h *RecurringExpenseHandler) CreateRecurringExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateRecurringExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	rec, err := h.recurringService.CreateRecurringExpense(userID, models.RecurringExpense{
		Name:          req.Name,
		Value:         req.Value,
		Category:      req.Category,
		Frequency:     req.Frequency,
		DayOfMonth:    req.DayOfMonth,
		DayOfWeek:     req.DayOfWeek,
		PaymentMethod: req.PaymentMethod,
		IsActive:      isActive,
		StartDate:     start,
		EndDate:       end,
		Description:   req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditCreateRecurringExpense, models.AuditRecurringExpense, rec.ID, c.ClientIP(),
		map[string]any{"name": rec.Name, "frequency": string(rec.Frequency)})

	c.JSON(http.StatusCreated, gin.H{"recurring_expense": rec})
}

// GetRecurringExpenses handles listing templates ordered by name.
// @Summary     List recurring expenses
// @Tags        recurring-expenses
// @Produce     json
// @Security    BearerAuth
// @Param       is_active query bool false "Filter by active flag"
// @Success     200 {array}  models.RecurringExpense "Templates"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-expenses [get]
func (h *RecurringExpenseHandler) GetRecurringExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	isActive, err := queryBool(c, "is_active")
	if err != nil {
		respondWithError(c, err)
		return
	}

	list, err := h.recurringService.GetRecurringExpenses(userID, isActive)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if list == nil {
		list = []models.RecurringExpense{}
	}

	c.JSON(http.StatusOK, gin.H{"recurring_expenses": list})
}

// GetRecurringExpense handles retrieving one template.
// @Summary     Get recurring expense by ID
// @Tags        recurring-expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Recurring expense ID"
// @Success     200 {object} models.RecurringExpense "Template"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Recurring expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-expenses/{id} [get]
func (h *RecurringExpenseHandler) GetRecurringExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rec, err := h.recurringService.GetRecurringExpenseByID(userID, recurringID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_expense": rec})
}

// UpdateRecurringExpense handles a partial update of a template.
// @Summary     Update recurring expense
// @Tags        recurring-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                        true "Recurring expense ID"
// @Param       request body UpdateRecurringExpenseRequest true "Fields to change"
// @Success     200 {object} models.RecurringExpense "Updated template"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Recurring expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-expenses/{id} [put]
func (h *RecurringExpenseHandler) UpdateRecurringExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRecurringExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	start, err := parseOptionalDate("start_date", req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rec, err := h.recurringService.UpdateRecurringExpense(userID, recurringID, models.RecurringExpensePatch{
		Name:          req.Name,
		Value:         req.Value,
		Category:      req.Category,
		Frequency:     req.Frequency,
		DayOfMonth:    req.DayOfMonth,
		DayOfWeek:     req.DayOfWeek,
		PaymentMethod: req.PaymentMethod,
		IsActive:      req.IsActive,
		StartDate:     start,
		EndDate:       end,
		Description:   req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditUpdateRecurringExpense, models.AuditRecurringExpense, rec.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"recurring_expense": rec})
}

// DeleteRecurringExpense handles deleting a template. Generated expenses are kept.
// @Summary     Delete recurring expense
// @Tags        recurring-expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Recurring expense ID"
// @Success     200 {object} MessageResponse "Template deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Recurring expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-expenses/{id} [delete]
func (h *RecurringExpenseHandler) DeleteRecurringExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.recurringService.DeleteRecurringExpense(userID, recurringID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditDeleteRecurringExpense, models.AuditRecurringExpense, recurringID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Recurring expense deleted successfully"})
}

// ToggleActive flips a template's active flag.
// @Summary     Toggle recurring expense
// @Tags        recurring-expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Recurring expense ID"
// @Success     200 {object} models.RecurringExpense "Updated template"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Recurring expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-expenses/{id}/toggle-active [patch]
func (h *RecurringExpenseHandler) ToggleActive(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rec, err := h.recurringService.ToggleActive(userID, recurringID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditToggleRecurringExpense, models.AuditRecurringExpense, rec.ID, c.ClientIP(),
		map[string]any{"is_active": rec.IsActive})

	c.JSON(http.StatusOK, gin.H{"recurring_expense": rec})
}

// GenerateExpenses materializes a template's occurrences as expenses.
// @Summary     Generate expenses from a template
// @Description Creates one expense per occurrence in [start_date, end_date]. Defaults to today through three months ahead.
// @Tags        recurring-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true  "Recurring expense ID"
// @Param       request body GenerateExpensesRequest false "Date range"
// @Success     201 {object} GenerateExpensesResponse "Expenses generated"
// @Failure     400 {object} ErrorResponse "Invalid input or range too large"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Recurring expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-expenses/{id}/generate [post]
func (h *RecurringExpenseHandler) GenerateExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GenerateExpensesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(c, bindError(err))
		return
	}

	start, err := parseOptionalDate("start_date", req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	generated, err := h.recurringService.GenerateExpenses(userID, recurringID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditGenerateExpenses, models.AuditRecurringExpense, recurringID, c.ClientIP(),
		map[string]any{"generated": generated})

	c.JSON(http.StatusCreated, GenerateExpensesResponse{
		Message:   fmt.Sprintf("%d expenses generated", generated),
		Generated: generated,
	})
}
