package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/beabzk/pft-api/internal/errors"
	"github.com/beabzk/pft-api/internal/models"
	"github.com/beabzk/pft-api/internal/pagination"
	"github.com/beabzk/pft-api/internal/uuid"
)

// maxAmount matches the numeric(10,2) column: at most 10 digits total,
// 2 of them fractional.
var maxAmount = decimal.RequireFromString("99999999.99")

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// validateAmount checks that an amount is positive and fits numeric(10,2).
func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if amount.GreaterThan(maxAmount) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount exceeds the maximum of 99999999.99")
	}
	if amount.Exponent() < -2 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must have at most 2 decimal places")
	}
	return nil
}

// validateCategory checks that the referenced category exists and is owned by
// the user. A foreign or unknown category id is a validation error on the
// transaction payload, not a not-found on the category.
func (s *transactionService) validateCategory(userID, categoryID string) error {
	if !uuid.IsValid(categoryID) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid category")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid category")
	}
	return nil
}

// CreateTransaction creates a new transaction owned by the given user.
func (s *transactionService) CreateTransaction(
	userID string,
	categoryID *string,
	transactionType models.TransactionType,
	amount decimal.Decimal,
	date time.Time,
	description string,
) (*models.Transaction, error) {
	if transactionType != models.TransactionTypeIncome && transactionType != models.TransactionTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}

	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	// Default date to today if not provided
	if date.IsZero() {
		date = time.Now()
	}

	if categoryID != nil && *categoryID != "" {
		if err := s.validateCategory(userID, *categoryID); err != nil {
			return nil, err
		}
	} else {
		categoryID = nil
	}

	// Create transaction. The owner always comes from the authenticated
	// caller, never from the request payload.
	transaction := &models.Transaction{
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      amount,
		Date:        date,
		Description: description,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of transactions
// for a user, ordered by date descending. UUIDv7 ids are time-ordered, so
// "id DESC" is a stable newest-first tie-break for equal dates.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user. A
// transaction owned by another user is reported as not found, identical to a
// missing one.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	if !uuid.IsValid(transactionID) {
		return nil, apperrors.ErrTransactionNotFound
	}

	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction updates an existing transaction. Nil input fields are
// left unchanged.
func (s *transactionService) UpdateTransaction(userID, transactionID string, input UpdateTransactionInput) (*models.Transaction, error) {
	// Get the transaction to ensure it exists and belongs to the user
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if input.Type != nil {
		if *input.Type != models.TransactionTypeIncome && *input.Type != models.TransactionTypeExpense {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
		}
		updates["type"] = *input.Type
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		updates["amount"] = *input.Amount
	}

	if input.Date != nil {
		updates["date"] = *input.Date
	}

	if input.Description != nil {
		updates["description"] = *input.Description
	}

	if input.CategoryID != nil {
		if *input.CategoryID == "" {
			updates["category_id"] = nil
		} else {
			if err := s.validateCategory(userID, *input.CategoryID); err != nil {
				return nil, err
			}
			updates["category_id"] = *input.CategoryID
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return transaction, nil
}

// DeleteTransaction deletes a transaction
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	// Get the transaction to ensure it exists and belongs to the user
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
