package models

// User represents the user model in the database.
// PasswordHash is nil for accounts that only sign in through an external provider.
type User struct {
	Base
	Name         string  `gorm:"size:100;not null" json:"name"`
	Email        string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash *string `gorm:"column:hashed_password" json:"-"`
	ExternalID   *string `gorm:"size:255;uniqueIndex" json:"-"`
	Avatar       string  `gorm:"size:500" json:"avatar,omitempty"`

	Expenses          []Expense          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	RecurringExpenses []RecurringExpense `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	PaymentMethods    []PaymentMethod    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Investments       []Investment       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// HasPassword reports whether the user can sign in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
