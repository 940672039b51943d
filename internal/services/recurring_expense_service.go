package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/MateusMunaro/financial-manager/internal/errors"
	"github.com/MateusMunaro/financial-manager/internal/logger"
	"github.com/MateusMunaro/financial-manager/internal/models"
	"github.com/MateusMunaro/financial-manager/internal/recurrence"
)

const generateBatchSize = 200

// recurringExpenseService handles recurring expense templates and the
// expenses generated from them.
type recurringExpenseService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRecurringExpenseService creates a new RecurringExpenseServicer.
func NewRecurringExpenseService(db *gorm.DB) RecurringExpenseServicer {
	return &recurringExpenseService{db: db, now: time.Now}
}

// CreateRecurringExpense stores a new template owned by userID.
func (s *recurringExpenseService) CreateRecurringExpense(userID string, draft models.RecurringExpense) (*models.RecurringExpense, error) {
	if !draft.Frequency.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "frequency must be weekly, monthly or yearly")
	}

	rec := draft
	rec.ID = ""
	rec.UserID = userID
	if err := s.db.Create(&rec).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rec, nil
}

// GetRecurringExpenses lists the user's templates ordered by name.
func (s *recurringExpenseService) GetRecurringExpenses(userID string, isActive *bool) ([]models.RecurringExpense, error) {
	q := s.db.Where("user_id = ?", userID)
	if isActive != nil {
		q = q.Where("is_active = ?", *isActive)
	}

	recs := []models.RecurringExpense{}
	if err := q.Order("name ASC").Find(&recs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return recs, nil
}

// GetRecurringExpenseByID retrieves a template by ID for a specific user
func (s *recurringExpenseService) GetRecurringExpenseByID(userID, recurringID string) (*models.RecurringExpense, error) {
	var rec models.RecurringExpense
	if err := s.db.Where("id = ? AND user_id = ?", recurringID, userID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecurringExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rec, nil
}

// UpdateRecurringExpense applies patch to the user's template.
func (s *recurringExpenseService) UpdateRecurringExpense(userID, recurringID string, patch models.RecurringExpensePatch) (*models.RecurringExpense, error) {
	if patch.Frequency != nil && !patch.Frequency.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "frequency must be weekly, monthly or yearly")
	}

	rec, err := s.GetRecurringExpenseByID(userID, recurringID)
	if err != nil {
		return nil, err
	}

	patch.ApplyTo(rec)
	if err := s.db.Save(rec).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rec, nil
}

// DeleteRecurringExpense removes the template. Expenses already generated
// from it are kept.
func (s *recurringExpenseService) DeleteRecurringExpense(userID, recurringID string) error {
	result := s.db.Where("id = ? AND user_id = ?", recurringID, userID).Delete(&models.RecurringExpense{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrRecurringExpenseNotFound
	}
	return nil
}

// ToggleActive flips the template's active flag.
func (s *recurringExpenseService) ToggleActive(userID, recurringID string) (*models.RecurringExpense, error) {
	rec, err := s.GetRecurringExpenseByID(userID, recurringID)
	if err != nil {
		return nil, err
	}

	rec.IsActive = !rec.IsActive
	if err := s.db.Model(rec).Update("is_active", rec.IsActive).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rec, nil
}

// GenerateExpenses expands the template over [start, end] and inserts every
// resulting expense in a single transaction. It returns how many were created.
func (s *recurringExpenseService) GenerateExpenses(userID, recurringID string, start, end *time.Time) (int, error) {
	rec, err := s.GetRecurringExpenseByID(userID, recurringID)
	if err != nil {
		return 0, err
	}

	drafts, err := recurrence.Expand(*rec, start, end, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, recurrence.ErrTooManyOccurrences):
			return 0, apperrors.Wrap(apperrors.ErrTooManyOccurrences, err)
		case errors.Is(err, recurrence.ErrUnknownFrequency):
			return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "recurring expense has an unknown frequency")
		}
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(drafts) == 0 {
		return 0, nil
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&drafts, generateBatchSize).Error
	}); err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Named("recurring").Infow("expenses generated",
		"user_id", userID,
		"recurring_id", recurringID,
		"count", len(drafts),
	)
	return len(drafts), nil
}
