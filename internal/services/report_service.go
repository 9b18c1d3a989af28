package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/beabzk/pft-api/internal/errors"
	"github.com/beabzk/pft-api/internal/models"
)

// reportService handles reporting queries.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// MonthlySummary computes income and expense totals for the given user over
// one calendar month. The window is the half-open range
// [first of month, first of next month); December rolls the year forward.
// Totals default to exact zero when no rows match.
func (s *reportService) MonthlySummary(userID string, year, month int) (*MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	if year < 1 || year > 9999 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "year is out of range")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	totalIncome, err := s.sumAmount(userID, models.TransactionTypeIncome, start, end)
	if err != nil {
		return nil, err
	}

	totalExpenses, err := s.sumAmount(userID, models.TransactionTypeExpense, start, end)
	if err != nil {
		return nil, err
	}

	return &MonthlySummary{
		Year:          year,
		Month:         time.Month(month).String(),
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		NetSavings:    totalIncome.Sub(totalExpenses),
	}, nil
}

// sumAmount sums transaction amounts of one type for a user within the
// half-open [start, end) window. The sum happens in the database as numeric
// arithmetic and is scanned into a decimal, so no float conversion occurs.
func (s *reportService) sumAmount(userID string, transactionType models.TransactionType, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ? AND date >= ? AND date < ?", userID, transactionType, start, end).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}
