package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethodType tags how an expense was paid and what kind of
// instrument a PaymentMethod is.
type PaymentMethodType string

const (
	PaymentMethodCreditCard PaymentMethodType = "credit-card"
	PaymentMethodDebitCard  PaymentMethodType = "debit-card"
	PaymentMethodPix        PaymentMethodType = "pix"
	PaymentMethodBankSlip   PaymentMethodType = "bank-slip"
	PaymentMethodCash       PaymentMethodType = "cash"
	PaymentMethodOther      PaymentMethodType = "other"
)

// PaymentMethodTypes lists every accepted payment method tag.
var PaymentMethodTypes = []PaymentMethodType{
	PaymentMethodCreditCard,
	PaymentMethodDebitCard,
	PaymentMethodPix,
	PaymentMethodBankSlip,
	PaymentMethodCash,
	PaymentMethodOther,
}

// Valid reports whether t is a known payment method tag.
func (t PaymentMethodType) Valid() bool {
	for _, v := range PaymentMethodTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Expense is a single dated outflow of money.
type Expense struct {
	Base
	UserID        string             `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string             `gorm:"size:100;not null" json:"name"`
	Value         decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"value"`
	Category      string             `gorm:"size:50;not null;index" json:"category"`
	Date          time.Time          `gorm:"not null;index" json:"date"`
	Description   string             `gorm:"size:500" json:"description,omitempty"`
	PaymentMethod *PaymentMethodType `gorm:"size:20" json:"payment_method,omitempty"`
	IsRecurring   bool               `gorm:"not null" json:"is_recurring"`
}

// ExpensePatch carries the fields of a partial expense update.
// Nil fields are left untouched.
type ExpensePatch struct {
	Name          *string
	Value         *decimal.Decimal
	Category      *string
	Date          *time.Time
	Description   *string
	PaymentMethod *PaymentMethodType
	IsRecurring   *bool
}

// ApplyTo copies every set field onto e.
func (p ExpensePatch) ApplyTo(e *Expense) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Value != nil {
		e.Value = *p.Value
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.PaymentMethod != nil {
		pm := *p.PaymentMethod
		e.PaymentMethod = &pm
	}
	if p.IsRecurring != nil {
		e.IsRecurring = *p.IsRecurring
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p ExpensePatch) IsEmpty() bool {
	return p.Name == nil && p.Value == nil && p.Category == nil && p.Date == nil &&
		p.Description == nil && p.PaymentMethod == nil && p.IsRecurring == nil
}
