package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/beabzk/pft-api/internal/models"
	"github.com/beabzk/pft-api/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CategoryServicer defines the contract for category-related business logic.
// Every operation is scoped to the owning user; a category id that exists but
// belongs to someone else behaves exactly like a missing one.
type CategoryServicer interface {
	CreateCategory(userID, name string) (*models.Category, error)
	GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	CategoryID *string
}

// UpdateTransactionInput holds the fields of a transaction update. Nil fields
// are left unchanged; a CategoryID pointing at an empty string clears the
// category.
type UpdateTransactionInput struct {
	CategoryID  *string
	Type        *models.TransactionType
	Amount      *decimal.Decimal
	Date        *time.Time
	Description *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, categoryID *string, transactionType models.TransactionType, amount decimal.Decimal, date time.Time, description string) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, input UpdateTransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// MonthlySummary contains aggregated income and expense totals for one
// calendar month. Totals are decimals so the 2-fractional-digit precision of
// stored amounts survives the round trip.
type MonthlySummary struct {
	Year          int             `json:"year"`
	Month         string          `json:"month"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetSavings    decimal.Decimal `json:"net_savings"`
}

// ReportServicer defines the contract for reporting queries.
type ReportServicer interface {
	MonthlySummary(userID string, year, month int) (*MonthlySummary, error)
}
