package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MateusMunaro/financial-manager/internal/models"
	"github.com/MateusMunaro/financial-manager/internal/pagination"
	"github.com/MateusMunaro/financial-manager/internal/services"
)

// InvestmentHandler handles investment-related requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
	auditService      services.AuditServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer, auditService services.AuditServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService, auditService: auditService}
}

// CreateInvestmentRequest represents the request payload for adding an investment.
// CurrentValue defaults to Value.
type CreateInvestmentRequest struct {
	Name         string                `json:"name" binding:"required,min=1,max=100"`
	Type         models.InvestmentType `json:"type" binding:"required,investment_type"`
	Value        decimal.Decimal       `json:"value" binding:"required,gt=0,money"`
	CurrentValue *decimal.Decimal      `json:"current_value" binding:"omitempty,gte=0,money"`
	PurchaseDate string                `json:"purchase_date" binding:"required"`
	Quantity     *float64              `json:"quantity" binding:"omitempty,gt=0"`
	Ticker       string                `json:"ticker" binding:"max=20"`
	Description  string                `json:"description" binding:"max=500"`
}

// UpdateInvestmentRequest represents the request payload for updating an investment.
// Omitted fields are kept. History is not touched.
type UpdateInvestmentRequest struct {
	Name         *string                `json:"name" binding:"omitempty,min=1,max=100"`
	Type         *models.InvestmentType `json:"type" binding:"omitempty,investment_type"`
	Value        *decimal.Decimal       `json:"value" binding:"omitempty,gt=0,money"`
	CurrentValue *decimal.Decimal       `json:"current_value" binding:"omitempty,gte=0,money"`
	PurchaseDate *string                `json:"purchase_date"`
	Quantity     *float64               `json:"quantity" binding:"omitempty,gt=0"`
	Ticker       *string                `json:"ticker" binding:"omitempty,max=20"`
	Description  *string                `json:"description" binding:"omitempty,max=500"`
}

// UpdateValueRequest represents the request payload for recording a new market value.
type UpdateValueRequest struct {
	CurrentValue *decimal.Decimal `json:"current_value" binding:"required,gte=0,money"`
}

// CreateInvestment handles adding a new investment.
// @Summary     Add investment
// @Description Stores the holding and its first value snapshot
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvestmentRequest true "Investment details"
// @Success     201 {object} models.Investment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	purchased, err := parseDate("purchase_date", req.PurchaseDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	current := req.Value
	if req.CurrentValue != nil {
		current = *req.CurrentValue
	}

	investment, err := h.investmentService.CreateInvestment(userID, models.Investment{
		Name:         req.Name,
		Type:         req.Type,
		Value:        req.Value,
		CurrentValue: current,
		PurchaseDate: purchased,
		Quantity:     req.Quantity,
		Ticker:       req.Ticker,
		Description:  req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditCreateInvestment, models.AuditInvestment, investment.ID, c.ClientIP(),
		map[string]any{"name": investment.Name, "type": string(investment.Type), "value": investment.Value})

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// GetInvestments handles listing the user's investments.
// @Summary     List investments
// @Description Paginated investments, most recent purchase first. Value bounds apply to the current value.
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       type      query string false "Investment type"
// @Param       min_value query number false "Minimum current value"
// @Param       max_value query number false "Maximum current value"
// @Param       search    query string false "Substring of name or ticker"
// @Success     200 {object} pagination.PageResponse[models.Investment] "Paginated investments"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [get]
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
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

	filter, err := parseInvestmentFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.investmentService.GetInvestments(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseInvestmentFilter(c *gin.Context) (services.InvestmentFilter, error) {
	var (
		filter services.InvestmentFilter
		err    error
	)
	if raw := queryString(c, "type"); raw != nil {
		t := models.InvestmentType(*raw)
		if !t.Valid() {
			return filter, invalidInput("Invalid type")
		}
		filter.Type = &t
	}
	if filter.MinValue, err = queryDecimal(c, "min_value"); err != nil {
		return filter, err
	}
	if filter.MaxValue, err = queryDecimal(c, "max_value"); err != nil {
		return filter, err
	}
	filter.Search = c.Query("search")
	return filter, nil
}

// GetInvestmentStats handles the portfolio statistics view.
// @Summary     Investment statistics
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} stats.InvestmentSummary "Portfolio statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/stats [get]
func (h *InvestmentHandler) GetInvestmentStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.investmentService.GetInvestmentStats(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetInvestment handles retrieving a specific investment.
// @Summary     Get investment by ID
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} models.Investment "Investment details"
// @Failure     400 {object} ErrorResponse "Invalid investment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.GetInvestmentByID(userID, investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// UpdateInvestment handles a partial update of an investment.
// @Summary     Update investment
// @Description Changing current_value here also appends a history entry
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "Investment ID"
// @Param       request body UpdateInvestmentRequest true "Fields to change"
// @Success     200 {object} models.Investment "Updated investment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [put]
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	purchased, err := parseOptionalDate("purchase_date", req.PurchaseDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.UpdateInvestment(userID, investmentID, models.InvestmentPatch{
		Name:         req.Name,
		Type:         req.Type,
		Value:        req.Value,
		CurrentValue: req.CurrentValue,
		PurchaseDate: purchased,
		Quantity:     req.Quantity,
		Ticker:       req.Ticker,
		Description:  req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditUpdateInvestment, models.AuditInvestment, investment.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// DeleteInvestment handles deleting an investment and its history.
// @Summary     Delete investment
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} MessageResponse "Investment deleted"
// @Failure     400 {object} ErrorResponse "Invalid investment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investmentService.DeleteInvestment(userID, investmentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditDeleteInvestment, models.AuditInvestment, investmentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Investment deleted successfully"})
}

// GetInvestmentHistory handles listing an investment's value snapshots.
// @Summary     Investment value history
// @Description Snapshots, newest first
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {array}  models.InvestmentHistory "History"
// @Failure     400 {object} ErrorResponse "Invalid investment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/history [get]
func (h *InvestmentHandler) GetInvestmentHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	history, err := h.investmentService.GetInvestmentHistory(userID, investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if history == nil {
		history = []models.InvestmentHistory{}
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// UpdateValue records a new market value and appends it to the history.
// @Summary     Update investment value
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Investment ID"
// @Param       request body UpdateValueRequest true "New current value"
// @Success     200 {object} models.Investment "Updated investment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/update-value [patch]
func (h *InvestmentHandler) UpdateValue(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	investment, err := h.investmentService.UpdateCurrentValue(userID, investmentID, *req.CurrentValue)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditUpdateInvestmentValue, models.AuditInvestment, investment.ID, c.ClientIP(),
		map[string]any{"current_value": investment.CurrentValue})

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}
