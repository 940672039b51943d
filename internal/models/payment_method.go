package models

import "github.com/shopspring/decimal"

// PaymentMethod is a user's card, account or other means of payment.
// At most one per user has IsDefault set.
type PaymentMethod struct {
	Base
	UserID     string              `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string              `gorm:"size:50;not null" json:"name"`
	Type       PaymentMethodType   `gorm:"size:20;not null" json:"type"`
	LastDigits string              `gorm:"size:4" json:"last_digits,omitempty"`
	IsDefault  bool                `gorm:"not null" json:"is_default"`
	Limit      decimal.NullDecimal `gorm:"column:credit_limit;type:numeric(12,2)" json:"limit"`
	UsedLimit  decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"used_limit"`
}

// PaymentMethodPatch carries the fields of a partial payment method update.
type PaymentMethodPatch struct {
	Name       *string
	Type       *PaymentMethodType
	LastDigits *string
	IsDefault  *bool
	Limit      *decimal.Decimal
	UsedLimit  *decimal.Decimal
}

// ApplyTo copies every set field onto m.
func (p PaymentMethodPatch) ApplyTo(m *PaymentMethod) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Type != nil {
		m.Type = *p.Type
	}
	if p.LastDigits != nil {
		m.LastDigits = *p.LastDigits
	}
	if p.IsDefault != nil {
		m.IsDefault = *p.IsDefault
	}
	if p.Limit != nil {
		m.Limit = decimal.NewNullDecimal(*p.Limit)
	}
	if p.UsedLimit != nil {
		m.UsedLimit = decimal.NewNullDecimal(*p.UsedLimit)
	}
}
