package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/MateusMunaro/financial-manager/internal/errors"
	"github.com/MateusMunaro/financial-manager/internal/models"
)

// paymentMethodService handles payment method business logic. It keeps at
// most one default method per user.
type paymentMethodService struct {
	db *gorm.DB
}

// NewPaymentMethodService creates a new PaymentMethodServicer.
func NewPaymentMethodService(db *gorm.DB) PaymentMethodServicer {
	return &paymentMethodService{db: db}
}

// CreatePaymentMethod stores a new method. When it is marked default, every
// other method of the user stops being default.
func (s *paymentMethodService) CreatePaymentMethod(userID string, draft models.PaymentMethod) (*models.PaymentMethod, error) {
	if !draft.Type.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown payment method type")
	}

	pm := draft
	pm.ID = ""
	pm.UserID = userID
	if !pm.UsedLimit.Valid {
		pm.UsedLimit = decimal.NewNullDecimal(decimal.Zero)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pm).Error; err != nil {
			return err
		}
		if pm.IsDefault {
			return clearOtherDefaults(tx, userID, pm.ID)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &pm, nil
}

// GetPaymentMethods lists the user's methods, default first, then by name.
func (s *paymentMethodService) GetPaymentMethods(userID string) ([]models.PaymentMethod, error) {
	methods := []models.PaymentMethod{}
	if err := s.db.Where("user_id = ?", userID).
		Order("is_default DESC").Order("name ASC").
		Find(&methods).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return methods, nil
}

// GetPaymentMethodByID retrieves a method by ID for a specific user
func (s *paymentMethodService) GetPaymentMethodByID(userID, methodID string) (*models.PaymentMethod, error) {
	var pm models.PaymentMethod
	if err := s.db.Where("id = ? AND user_id = ?", methodID, userID).First(&pm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPaymentMethodNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &pm, nil
}

// UpdatePaymentMethod applies patch to the user's method.
func (s *paymentMethodService) UpdatePaymentMethod(userID, methodID string, patch models.PaymentMethodPatch) (*models.PaymentMethod, error) {
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown payment method type")
	}

	pm, err := s.GetPaymentMethodByID(userID, methodID)
	if err != nil {
		return nil, err
	}

	patch.ApplyTo(pm)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(pm).Error; err != nil {
			return err
		}
		if pm.IsDefault {
			return clearOtherDefaults(tx, userID, pm.ID)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pm, nil
}

// DeletePaymentMethod removes the user's method.
func (s *paymentMethodService) DeletePaymentMethod(userID, methodID string) error {
	result := s.db.Where("id = ? AND user_id = ?", methodID, userID).Delete(&models.PaymentMethod{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrPaymentMethodNotFound
	}
	return nil
}

// SetDefault makes the method the user's only default.
func (s *paymentMethodService) SetDefault(userID, methodID string) (*models.PaymentMethod, error) {
	pm, err := s.GetPaymentMethodByID(userID, methodID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := clearOtherDefaults(tx, userID, pm.ID); err != nil {
			return err
		}
		return tx.Model(pm).Update("is_default", true).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	pm.IsDefault = true
	return pm, nil
}

func clearOtherDefaults(tx *gorm.DB, userID, keepID string) error {
	return tx.Model(&models.PaymentMethod{}).
		Where("user_id = ? AND id <> ? AND is_default = ?", userID, keepID, true).
		Update("is_default", false).Error
}
