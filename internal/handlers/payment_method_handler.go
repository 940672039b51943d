package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MateusMunaro/financial-manager/internal/models"
	"github.com/MateusMunaro/financial-manager/internal/services"
)

// PaymentMethodHandler handles payment method requests.
type PaymentMethodHandler struct {
	paymentMethodService services.PaymentMethodServicer
	auditService         services.AuditServicer
}

// NewPaymentMethodHandler creates a new PaymentMethodHandler.
func NewPaymentMethodHandler(paymentMethodService services.PaymentMethodServicer, auditService services.AuditServicer) *PaymentMethodHandler {
	return &PaymentMethodHandler{paymentMethodService: paymentMethodService, auditService: auditService}
}

// CreatePaymentMethodRequest represents the request payload for creating a payment method.
type CreatePaymentMethodRequest struct {
	Name       string                   `json:"name" binding:"required,min=1,max=50"`
	Type       models.PaymentMethodType `json:"type" binding:"required,payment_method_type"`
	LastDigits string                   `json:"last_digits" binding:"omitempty,last_digits"`
	IsDefault  bool                     `json:"is_default"`
	Limit      *decimal.Decimal         `json:"limit" binding:"omitempty,gt=0,money"`
	UsedLimit  *decimal.Decimal         `json:"used_limit" binding:"omitempty,gte=0,money"`
}

// UpdatePaymentMethodRequest represents the request payload for updating a payment method.
// Omitted fields are kept.
type UpdatePaymentMethodRequest struct {
	Name       *string                   `json:"name" binding:"omitempty,min=1,max=50"`
	Type       *models.PaymentMethodType `json:"type" binding:"omitempty,payment_method_type"`
	LastDigits *string                   `json:"last_digits" binding:"omitempty,last_digits"`
	IsDefault  *bool                     `json:"is_default"`
	Limit      *decimal.Decimal          `json:"limit" binding:"omitempty,gt=0,money"`
	UsedLimit  *decimal.Decimal          `json:"used_limit" binding:"omitempty,gte=0,money"`
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

// CreatePaymentMethod handles creating a payment method.
// @Summary     Create payment method
// @Description Setting is_default clears the flag on every other method of the user
// @Tags        payment-methods
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePaymentMethodRequest true "Payment method details"
// @Success     201 {object} models.PaymentMethod "Payment method created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payment-methods [post]
func (h *PaymentMethodHandler) CreatePaymentMethod(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	pm, err := h.paymentMethodService.CreatePaymentMethod(userID, models.PaymentMethod{
		Name:       req.Name,
		Type:       req.Type,
		LastDigits: req.LastDigits,
		IsDefault:  req.IsDefault,
		Limit:      nullDecimal(req.Limit),
		UsedLimit:  nullDecimal(req.UsedLimit),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditCreatePaymentMethod, models.AuditPaymentMethod, pm.ID, c.ClientIP(),
		map[string]any{"name": pm.Name, "type": string(pm.Type)})

	c.JSON(http.StatusCreated, gin.H{"payment_method": pm})
}

// GetPaymentMethods handles listing the user's payment methods.
// @Summary     List payment methods
// @Description Default method first, then by name
// @Tags        payment-methods
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.PaymentMethod "Payment methods"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payment-methods [get]
func (h *PaymentMethodHandler) GetPaymentMethods(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	methods, err := h.paymentMethodService.GetPaymentMethods(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if methods == nil {
		methods = []models.PaymentMethod{}
	}

	c.JSON(http.StatusOK, gin.H{"payment_methods": methods})
}

// GetPaymentMethod handles retrieving one payment method.
// @Summary     Get payment method by ID
// @Tags        payment-methods
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payment method ID"
// @Success     200 {object} models.PaymentMethod "Payment method"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment method not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payment-methods/{id} [get]
func (h *PaymentMethodHandler) GetPaymentMethod(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	methodID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	pm, err := h.paymentMethodService.GetPaymentMethodByID(userID, methodID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_method": pm})
}

// UpdatePaymentMethod handles a partial update of a payment method.
// @Summary     Update payment method
// @Tags        payment-methods
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                     true "Payment method ID"
// @Param       request body UpdatePaymentMethodRequest true "Fields to change"
// @Success     200 {object} models.PaymentMethod "Updated payment method"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment method not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payment-methods/{id} [put]
func (h *PaymentMethodHandler) UpdatePaymentMethod(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	methodID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	pm, err := h.paymentMethodService.UpdatePaymentMethod(userID, methodID, models.PaymentMethodPatch{
		Name:       req.Name,
		Type:       req.Type,
		LastDigits: req.LastDigits,
		IsDefault:  req.IsDefault,
		Limit:      req.Limit,
		UsedLimit:  req.UsedLimit,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditUpdatePaymentMethod, models.AuditPaymentMethod, pm.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"payment_method": pm})
}

// DeletePaymentMethod handles deleting a payment method.
// @Summary     Delete payment method
// @Tags        payment-methods
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payment method ID"
// @Success     200 {object} MessageResponse "Payment method deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment method not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payment-methods/{id} [delete]
func (h *PaymentMethodHandler) DeletePaymentMethod(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	methodID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.paymentMethodService.DeletePaymentMethod(userID, methodID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditDeletePaymentMethod, models.AuditPaymentMethod, methodID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Payment method deleted successfully"})
}

// SetDefault makes a payment method the user's default.
// @Summary     Set default payment method
// @Tags        payment-methods
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payment method ID"
// @Success     200 {object} models.PaymentMethod "New default"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment method not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payment-methods/{id}/set-default [patch]
func (h *PaymentMethodHandler) SetDefault(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	methodID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	pm, err := h.paymentMethodService.SetDefault(userID, methodID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditSetDefaultPaymentMethod, models.AuditPaymentMethod, pm.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"payment_method": pm})
}
