package models

// AuditAction names an audited operation.
type AuditAction string

const (
	// Account
	AuditRegister       AuditAction = "REGISTER"
	AuditUpdateProfile  AuditAction = "UPDATE_PROFILE"
	AuditChangePassword AuditAction = "CHANGE_PASSWORD"

	// Expenses
	AuditCreateExpense AuditAction = "CREATE_EXPENSE"
	AuditUpdateExpense AuditAction = "UPDATE_EXPENSE"
	AuditDeleteExpense AuditAction = "DELETE_EXPENSE"

	// Recurring expenses
	AuditCreateRecurringExpense AuditAction = "CREATE_RECURRING_EXPENSE"
	AuditUpdateRecurringExpense AuditAction = "UPDATE_RECURRING_EXPENSE"
	AuditDeleteRecurringExpense AuditAction = "DELETE_RECURRING_EXPENSE"
	AuditToggleRecurringExpense AuditAction = "TOGGLE_RECURRING_EXPENSE"
	AuditGenerateExpenses       AuditAction = "GENERATE_EXPENSES"

	// Payment methods
	AuditCreatePaymentMethod     AuditAction = "CREATE_PAYMENT_METHOD"
	AuditUpdatePaymentMethod     AuditAction = "UPDATE_PAYMENT_METHOD"
	AuditDeletePaymentMethod     AuditAction = "DELETE_PAYMENT_METHOD"
	AuditSetDefaultPaymentMethod AuditAction = "SET_DEFAULT_PAYMENT_METHOD"

	// Investments
	AuditCreateInvestment      AuditAction = "CREATE_INVESTMENT"
	AuditUpdateInvestment      AuditAction = "UPDATE_INVESTMENT"
	AuditDeleteInvestment      AuditAction = "DELETE_INVESTMENT"
	AuditUpdateInvestmentValue AuditAction = "UPDATE_INVESTMENT_VALUE"
)

// AuditResource names the kind of record an audit entry points at.
type AuditResource string

const (
	AuditUser             AuditResource = "user"
	AuditExpense          AuditResource = "expense"
	AuditRecurringExpense AuditResource = "recurring_expense"
	AuditPaymentMethod    AuditResource = "payment_method"
	AuditInvestment       AuditResource = "investment"
)

// AuditLog records sensitive user operations. Changes holds a JSON object of
// the fields worth keeping, with money rendered to two decimals.
type AuditLog struct {
	Base
	UserID       string        `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       AuditAction   `gorm:"size:50;not null" json:"action"`
	ResourceType AuditResource `gorm:"size:50;not null" json:"resource_type"`
	ResourceID   string        `gorm:"type:uuid" json:"resource_id"`
	IPAddress    string        `gorm:"size:45" json:"ip_address"`
	Changes      string        `json:"changes,omitempty"`
}
