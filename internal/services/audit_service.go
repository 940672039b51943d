package services

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/MateusMunaro/financial-manager/internal/logger"
	"github.com/MateusMunaro/financial-manager/internal/models"
)

// auditService appends entries to the audit trail.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Failures are logged and never reach the caller:
// the audited operation has already succeeded.
func (s *auditService) Log(userID string, action models.AuditAction, resourceType models.AuditResource, resourceID, ipAddress string, changes map[string]any) {
	log := logger.Named("audit")

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
	}

	if len(changes) > 0 {
		data, err := json.Marshal(auditValues(changes))
		if err != nil {
			log.Errorw("failed to marshal audit changes", "error", err, "action", action)
			data = []byte("{}")
		}
		entry.Changes = string(data)
	}

	if err := s.db.Create(entry).Error; err != nil {
		log.Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
		return
	}
	log.Debugw("audit", "user_id", userID, "action", action, "resource_id", resourceID)
}

// auditValues renders money with two decimals and times as calendar dates so
// entries read the same regardless of how the value was computed.
func auditValues(changes map[string]any) map[string]any {
	out := make(map[string]any, len(changes))
	for k, v := range changes {
		switch val := v.(type) {
		case decimal.Decimal:
			out[k] = val.StringFixed(2)
		case *decimal.Decimal:
			if val != nil {
				out[k] = val.StringFixed(2)
			}
		case time.Time:
			out[k] = val.UTC().Format("2006-01-02")
		default:
			out[k] = v
		}
	}
	return out
}
