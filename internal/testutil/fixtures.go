package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MateusMunaro/financial-manager/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	hashed := string(hash)

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: &hashed,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense creates an expense with the given category, value and date.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, category string, value float64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Expense %d", nextID()),
		Value:    decimal.NewFromFloat(value),
		Category: category,
		Date:     date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestRecurringExpense creates an active monthly template starting at start.
func CreateTestRecurringExpense(t *testing.T, db *gorm.DB, userID string, start time.Time) *models.RecurringExpense {
	t.Helper()

	rec := &models.RecurringExpense{
		UserID:    userID,
		Name:      fmt.Sprintf("Test Subscription %d", nextID()),
		Value:     decimal.NewFromFloat(39.9),
		Category:  "Subscriptions",
		Frequency: models.FrequencyMonthly,
		IsActive:  true,
		StartDate: start,
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("failed to create test recurring expense: %v", err)
	}
	return rec
}

// CreateTestPaymentMethod creates a payment method of the given type.
func CreateTestPaymentMethod(t *testing.T, db *gorm.DB, userID string, pmType models.PaymentMethodType, isDefault bool) *models.PaymentMethod {
	t.Helper()

	pm := &models.PaymentMethod{
		UserID:    userID,
		Name:      fmt.Sprintf("Test Card %d", nextID()),
		Type:      pmType,
		IsDefault: isDefault,
		UsedLimit: decimal.NewNullDecimal(decimal.Zero),
	}
	if err := db.Create(pm).Error; err != nil {
		t.Fatalf("failed to create test payment method: %v", err)
	}
	return pm
}

// CreateTestInvestment creates an investment with the given cost basis and current value.
func CreateTestInvestment(t *testing.T, db *gorm.DB, userID string, invType models.InvestmentType, value, current float64) *models.Investment {
	t.Helper()

	n := nextID()
	inv := &models.Investment{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Holding %d", n),
		Type:         invType,
		Value:        decimal.NewFromFloat(value),
		CurrentValue: decimal.NewFromFloat(current),
		PurchaseDate: time.Now().UTC().AddDate(0, -1, 0),
		Ticker:       fmt.Sprintf("TST%d", n),
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return inv
}
