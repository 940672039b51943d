package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringFrequency is the repetition step of a recurring expense.
type RecurringFrequency string

const (
	FrequencyWeekly  RecurringFrequency = "weekly"
	FrequencyMonthly RecurringFrequency = "monthly"
	FrequencyYearly  RecurringFrequency = "yearly"
)

// Valid reports whether f is a supported frequency.
func (f RecurringFrequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// RecurringExpense is a template from which dated expenses are generated.
// DayOfMonth and DayOfWeek are informational; generation steps from the
// requested start date.
type RecurringExpense struct {
	Base
	UserID        string             `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string             `gorm:"size:100;not null" json:"name"`
	Value         decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"value"`
	Category      string             `gorm:"size:50;not null" json:"category"`
	Frequency     RecurringFrequency `gorm:"size:10;not null" json:"frequency"`
	DayOfMonth    *int               `json:"day_of_month,omitempty"`
	DayOfWeek     *int               `json:"day_of_week,omitempty"`
	PaymentMethod *PaymentMethodType `gorm:"size:20" json:"payment_method,omitempty"`
	IsActive      bool               `gorm:"not null" json:"is_active"`
	StartDate     time.Time          `gorm:"not null" json:"start_date"`
	EndDate       *time.Time         `json:"end_date,omitempty"`
	Description   string             `gorm:"size:500" json:"description,omitempty"`
}

// RecurringExpensePatch carries the fields of a partial template update.
type RecurringExpensePatch struct {
	Name          *string
	Value         *decimal.Decimal
	Category      *string
	Frequency     *RecurringFrequency
	DayOfMonth    *int
	DayOfWeek     *int
	PaymentMethod *PaymentMethodType
	IsActive      *bool
	StartDate     *time.Time
	EndDate       *time.Time
	Description   *string
}

// ApplyTo copies every set field onto r.
func (p RecurringExpensePatch) ApplyTo(r *RecurringExpense) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Value != nil {
		r.Value = *p.Value
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Frequency != nil {
		r.Frequency = *p.Frequency
	}
	if p.DayOfMonth != nil {
		d := *p.DayOfMonth
		r.DayOfMonth = &d
	}
	if p.DayOfWeek != nil {
		d := *p.DayOfWeek
		r.DayOfWeek = &d
	}
	if p.PaymentMethod != nil {
		pm := *p.PaymentMethod
		r.PaymentMethod = &pm
	}
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
	if p.StartDate != nil {
		r.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		end := *p.EndDate
		r.EndDate = &end
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
}
