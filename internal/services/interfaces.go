package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MateusMunaro/financial-manager/internal/models"
	"github.com/MateusMunaro/financial-manager/internal/pagination"
	"github.com/MateusMunaro/financial-manager/internal/stats"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	UpdateProfile(userID string, patch ProfilePatch) (*models.User, error)
	ChangePassword(userID, currentPassword, newPassword, confirmPassword string) error
}

// ProfilePatch carries the user-editable profile fields. Nil fields are kept.
type ProfilePatch struct {
	Name   *string
	Email  *string
	Avatar *string
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Category      *string
	PaymentMethod *models.PaymentMethodType
	MinValue      *decimal.Decimal
	MaxValue      *decimal.Decimal
	IsRecurring   *bool
	Search        string
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID string, draft models.Expense) (*models.Expense, error)
	GetExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	UpdateExpense(userID, expenseID string, patch models.ExpensePatch) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
	GetExpenseStats(userID string, period stats.Period, from, to *time.Time) (*stats.ExpenseSummary, error)
}

// RecurringExpenseServicer defines the contract for recurring expense templates.
type RecurringExpenseServicer interface {
	CreateRecurringExpense(userID string, draft models.RecurringExpense) (*models.RecurringExpense, error)
	GetRecurringExpenses(userID string, isActive *bool) ([]models.RecurringExpense, error)
	GetRecurringExpenseByID(userID, recurringID string) (*models.RecurringExpense, error)
	UpdateRecurringExpense(userID, recurringID string, patch models.RecurringExpensePatch) (*models.RecurringExpense, error)
	DeleteRecurringExpense(userID, recurringID string) error
	ToggleActive(userID, recurringID string) (*models.RecurringExpense, error)
	GenerateExpenses(userID, recurringID string, start, end *time.Time) (int, error)
}

// PaymentMethodServicer defines the contract for payment method business logic.
type PaymentMethodServicer interface {
	CreatePaymentMethod(userID string, draft models.PaymentMethod) (*models.PaymentMethod, error)
	GetPaymentMethods(userID string) ([]models.PaymentMethod, error)
	GetPaymentMethodByID(userID, methodID string) (*models.PaymentMethod, error)
	UpdatePaymentMethod(userID, methodID string, patch models.PaymentMethodPatch) (*models.PaymentMethod, error)
	DeletePaymentMethod(userID, methodID string) error
	SetDefault(userID, methodID string) (*models.PaymentMethod, error)
}

// InvestmentFilter holds optional filter parameters for listing investments.
// Value bounds apply to the current value.
type InvestmentFilter struct {
	Type     *models.InvestmentType
	MinValue *decimal.Decimal
	MaxValue *decimal.Decimal
	Search   string
}

// InvestmentServicer defines the contract for investment-related business logic.
type InvestmentServicer interface {
	CreateInvestment(userID string, draft models.Investment) (*models.Investment, error)
	GetInvestments(userID string, page pagination.PageRequest, filter InvestmentFilter) (*pagination.PageResponse[models.Investment], error)
	GetInvestmentByID(userID, investmentID string) (*models.Investment, error)
	UpdateInvestment(userID, investmentID string, patch models.InvestmentPatch) (*models.Investment, error)
	DeleteInvestment(userID, investmentID string) error
	GetInvestmentHistory(userID, investmentID string) ([]models.InvestmentHistory, error)
	UpdateCurrentValue(userID, investmentID string, value decimal.Decimal) (*models.Investment, error)
	GetInvestmentStats(userID string) (*stats.InvestmentSummary, error)
}

// Dashboard is the composite payload of the dashboard overview.
type Dashboard struct {
	Summary            stats.FinancialSummary    `json:"summary"`
	RecentTransactions []stats.RecentTransaction `json:"recent_transactions"`
	CategorySpending   []stats.CategoryItem      `json:"category_spending"`
	MonthlyTrend       []stats.TrendPoint        `json:"monthly_trend"`
}

// DashboardServicer defines the contract for the aggregate dashboard views.
type DashboardServicer interface {
	GetDashboard(ctx context.Context, userID string, period stats.Period) (*Dashboard, error)
	GetSummary(ctx context.Context, userID string, period stats.Period) (*stats.FinancialSummary, error)
	GetRecentTransactions(ctx context.Context, userID string, limit int) ([]stats.RecentTransaction, error)
	GetCategorySpending(ctx context.Context, userID string, period stats.Period) ([]stats.CategoryItem, error)
	GetMonthlyTrend(ctx context.Context, userID string, months int) ([]stats.TrendPoint, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID string, action models.AuditAction, resourceType models.AuditResource, resourceID, ipAddress string, changes map[string]any)
}
