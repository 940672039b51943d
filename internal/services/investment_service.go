package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/MateusMunaro/financial-manager/internal/errors"
	"github.com/MateusMunaro/financial-manager/internal/models"
	"github.com/MateusMunaro/financial-manager/internal/pagination"
	"github.com/MateusMunaro/financial-manager/internal/stats"
)

// investmentService handles investment-related business logic, including
// the append-only value history of each holding.
type investmentService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB) InvestmentServicer {
	return &investmentService{db: db, now: time.Now}
}

// CreateInvestment stores a new holding and its first history snapshot.
func (s *investmentService) CreateInvestment(userID string, draft models.Investment) (*models.Investment, error) {
	if !draft.Type.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown investment type")
	}

	inv := draft
	inv.ID = ""
	inv.UserID = userID
	inv.History = nil

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		return tx.Create(&models.InvestmentHistory{
			InvestmentID: inv.ID,
			Value:        inv.CurrentValue,
			Date:         s.now().UTC(),
		}).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &inv, nil
}

// GetInvestments lists the user's holdings matching filter, most recently
// purchased first.
func (s *investmentService) GetInvestments(userID string, page pagination.PageRequest, filter InvestmentFilter) (*pagination.PageResponse[models.Investment], error) {
	query := applyInvestmentFilters(s.db.Model(&models.Investment{}).Where("user_id = ?", userID), filter)

	result, err := pagination.Fetch[models.Investment](query, page, "purchase_date DESC, id DESC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

func applyInvestmentFilters(q *gorm.DB, f InvestmentFilter) *gorm.DB {
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.MinValue != nil {
		q = q.Where("current_value >= ?", *f.MinValue)
	}
	if f.MaxValue != nil {
		q = q.Where("current_value <= ?", *f.MaxValue)
	}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		q = q.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(ticker) LIKE ? ESCAPE '\\')", pattern, pattern)
	}
	return q
}

// GetInvestmentByID retrieves a holding by ID for a specific user
func (s *investmentService) GetInvestmentByID(userID, investmentID string) (*models.Investment, error) {
	var inv models.Investment
	if err := s.db.Where("id = ? AND user_id = ?", investmentID, userID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &inv, nil
}

// UpdateInvestment applies patch to the holding. A patch carrying a current
// value appends it to the history like UpdateCurrentValue does.
func (s *investmentService) UpdateInvestment(userID, investmentID string, patch models.InvestmentPatch) (*models.Investment, error) {
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown investment type")
	}
	if patch.CurrentValue != nil && patch.CurrentValue.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current value cannot be negative")
	}

	inv, err := s.GetInvestmentByID(userID, investmentID)
	if err != nil {
		return nil, err
	}

	patch.ApplyTo(inv)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(inv).Error; err != nil {
			return err
		}
		if patch.CurrentValue == nil {
			return nil
		}
		return tx.Create(&models.InvestmentHistory{
			InvestmentID: inv.ID,
			Value:        inv.CurrentValue,
			Date:         s.now().UTC(),
		}).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return inv, nil
}

// DeleteInvestment removes the holding together with its history.
func (s *investmentService) DeleteInvestment(userID, investmentID string) error {
	inv, err := s.GetInvestmentByID(userID, investmentID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("investment_id = ?", inv.ID).Delete(&models.InvestmentHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(inv).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetInvestmentHistory returns the holding's snapshots, newest first.
func (s *investmentService) GetInvestmentHistory(userID, investmentID string) ([]models.InvestmentHistory, error) {
	inv, err := s.GetInvestmentByID(userID, investmentID)
	if err != nil {
		return nil, err
	}

	history := []models.InvestmentHistory{}
	if err := s.db.Where("investment_id = ?", inv.ID).Order("date DESC").Order("id DESC").Find(&history).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return history, nil
}

// UpdateCurrentValue sets a new market value and appends it to the history.
func (s *investmentService) UpdateCurrentValue(userID, investmentID string, value decimal.Decimal) (*models.Investment, error) {
	if value.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current value cannot be negative")
	}

	inv, err := s.GetInvestmentByID(userID, investmentID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(inv).Update("current_value", value).Error; err != nil {
			return err
		}
		return tx.Create(&models.InvestmentHistory{
			InvestmentID: inv.ID,
			Value:        value,
			Date:         s.now().UTC(),
		}).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	inv.CurrentValue = value
	return inv, nil
}

// GetInvestmentStats aggregates every holding of the user.
func (s *investmentService) GetInvestmentStats(userID string) (*stats.InvestmentSummary, error) {
	var investments []models.Investment
	if err := s.db.Where("user_id = ?", userID).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := stats.InvestmentStats(investments)
	return &summary, nil
}
