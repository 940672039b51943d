package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvestmentType classifies an investment.
type InvestmentType string

const (
	InvestmentFixedIncome InvestmentType = "fixed_income"
	InvestmentStocks      InvestmentType = "stocks"
	InvestmentREIT        InvestmentType = "reit"
	InvestmentETF         InvestmentType = "etf"
	InvestmentCrypto      InvestmentType = "crypto"
	InvestmentFunds       InvestmentType = "funds"
	InvestmentOther       InvestmentType = "other"
)

// InvestmentTypes lists every accepted investment type.
var InvestmentTypes = []InvestmentType{
	InvestmentFixedIncome,
	InvestmentStocks,
	InvestmentREIT,
	InvestmentETF,
	InvestmentCrypto,
	InvestmentFunds,
	InvestmentOther,
}

// Valid reports whether t is a known investment type.
func (t InvestmentType) Valid() bool {
	for _, v := range InvestmentTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Investment is a holding with a cost basis (Value) and a market value
// (CurrentValue) that changes over time.
type Investment struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	Type         InvestmentType  `gorm:"size:20;not null;index" json:"type"`
	Value        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"value"`
	CurrentValue decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"current_value"`
	PurchaseDate time.Time       `gorm:"not null" json:"purchase_date"`
	Quantity     *float64        `json:"quantity,omitempty"`
	Ticker       string          `gorm:"size:20" json:"ticker,omitempty"`
	Description  string          `gorm:"size:500" json:"description,omitempty"`

	History []InvestmentHistory `gorm:"foreignKey:InvestmentID;constraint:OnDelete:CASCADE" json:"-"`
}

// InvestmentHistory is an append-only snapshot of an investment's value.
type InvestmentHistory struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	InvestmentID string          `gorm:"type:uuid;not null;index" json:"investment_id"`
	Value        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"value"`
	Date         time.Time       `gorm:"not null" json:"date"`
}

// TableName overrides the pluralized default.
func (InvestmentHistory) TableName() string { return "investment_history" }

// BeforeCreate generates a UUIDv7 for new snapshots.
func (h *InvestmentHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		id, err := newID()
		if err != nil {
			return err
		}
		h.ID = id
	}
	return nil
}

// InvestmentPatch carries the fields of a partial investment update.
type InvestmentPatch struct {
	Name         *string
	Type         *InvestmentType
	Value        *decimal.Decimal
	CurrentValue *decimal.Decimal
	PurchaseDate *time.Time
	Quantity     *float64
	Ticker       *string
	Description  *string
}

// ApplyTo copies every set field onto inv.
func (p InvestmentPatch) ApplyTo(inv *Investment) {
	if p.Name != nil {
		inv.Name = *p.Name
	}
	if p.Type != nil {
		inv.Type = *p.Type
	}
	if p.Value != nil {
		inv.Value = *p.Value
	}
	if p.CurrentValue != nil {
		inv.CurrentValue = *p.CurrentValue
	}
	if p.PurchaseDate != nil {
		inv.PurchaseDate = *p.PurchaseDate
	}
	if p.Quantity != nil {
		q := *p.Quantity
		inv.Quantity = &q
	}
	if p.Ticker != nil {
		inv.Ticker = *p.Ticker
	}
	if p.Description != nil {
		inv.Description = *p.Description
	}
}
