package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "github.com/MateusMunaro/financial-manager/internal/errors"
	"github.com/MateusMunaro/financial-manager/internal/middleware"
)

// dateLayouts are the accepted formats for date inputs, most specific last.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID reads a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id.String(), nil
}

// parseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
// Calendar dates are read as midnight UTC.
func parseDate(field, raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+field+": expected YYYY-MM-DD or RFC 3339")
}

// parseOptionalDate is parseDate for optional inputs; nil or empty yields nil.
func parseOptionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := parseDate(field, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// queryDate reads an optional date query parameter.
func queryDate(c *gin.Context, name string) (*time.Time, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	return parseOptionalDate(name, &raw)
}

// queryDecimal reads an optional decimal query parameter.
func queryDecimal(c *gin.Context, name string) (*decimal.Decimal, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+name)
	}
	return &d, nil
}

// queryBool reads an optional boolean query parameter.
func queryBool(c *gin.Context, name string) (*bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+name)
	}
	return &b, nil
}

// queryString reads an optional non-empty string query parameter.
func queryString(c *gin.Context, name string) *string {
	if raw := c.Query(name); raw != "" {
		return &raw
	}
	return nil
}

// respondWithError writes the JSON error envelope for err. Errors that are
// not an *AppError surface as INTERNAL_ERROR with the cause logged.
func respondWithError(c *gin.Context, err error) {
	appErr := apperrors.Resolve(err)
	middleware.LogAppError(c, appErr)
	c.JSON(appErr.StatusCode, appErr.Envelope())
}

// bindError wraps a request binding failure as invalid input.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// invalidInput builds an INVALID_INPUT error with a custom message.
func invalidInput(message string) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, message)
}
