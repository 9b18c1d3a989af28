package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/beabzk/pft-api/internal/errors"
	"github.com/beabzk/pft-api/internal/services"
)

type mockReportService struct {
	monthlySummaryFn func(userID string, year, month int) (*services.MonthlySummary, error)
}

func (m *mockReportService) MonthlySummary(userID string, year, month int) (*services.MonthlySummary, error) {
	if m.monthlySummaryFn != nil {
		return m.monthlySummaryFn(userID, year, month)
	}
	return &services.MonthlySummary{Year: year, Month: time.Month(month).String()}, nil
}

var _ services.ReportServicer = (*mockReportService)(nil)

// assertDecimalField compares a JSON-encoded decimal field by numeric value,
// not by string representation.
func assertDecimalField(t *testing.T, result map[string]interface{}, field, expected string) {
	t.Helper()
	raw, ok := result[field].(string)
	if !ok {
		t.Fatalf("expected %s to be a string, got %T", field, result[field])
	}
	got, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("failed to parse %s value %q: %v", field, raw, err)
	}
	if !got.Equal(decimal.RequireFromString(expected)) {
		t.Errorf("expected %s %s, got %s", field, expected, raw)
	}
}

func setupReportRouter(handler *ReportHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID("user-1"))
	auth.GET("/reports/monthly-summary", handler.MonthlySummary)
	return r
}

func TestReportHandler_MonthlySummary(t *testing.T) {
	t.Run("returns the summary", func(t *testing.T) {
		svc := &mockReportService{
			monthlySummaryFn: func(userID string, year, month int) (*services.MonthlySummary, error) {
				return &services.MonthlySummary{
					Year:          year,
					Month:         time.Month(month).String(),
					TotalIncome:   decimal.RequireFromString("100.00"),
					TotalExpenses: decimal.RequireFromString("40.00"),
					NetSavings:    decimal.RequireFromString("60.00"),
				}, nil
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/monthly-summary?year=2024&month=3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["year"] != float64(2024) {
			t.Errorf("expected year 2024, got %v", result["year"])
		}
		if result["month"] != "March" {
			t.Errorf("expected month March, got %v", result["month"])
		}
		assertDecimalField(t, result, "total_income", "100.00")
		assertDecimalField(t, result, "total_expenses", "40.00")
		assertDecimalField(t, result, "net_savings", "60.00")
	})

	t.Run("defaults to the current year and month", func(t *testing.T) {
		var gotYear, gotMonth int
		svc := &mockReportService{
			monthlySummaryFn: func(userID string, year, month int) (*services.MonthlySummary, error) {
				gotYear, gotMonth = year, month
				return &services.MonthlySummary{Year: year, Month: time.Month(month).String()}, nil
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/monthly-summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		now := time.Now()
		if gotYear != now.Year() {
			t.Errorf("expected year %d, got %d", now.Year(), gotYear)
		}
		if gotMonth != int(now.Month()) {
			t.Errorf("expected month %d, got %d", int(now.Month()), gotMonth)
		}
	})

	t.Run("returns 400 on non-integer year", func(t *testing.T) {
		r := setupReportRouter(NewReportHandler(&mockReportService{}))

		rec := doRequest(r, "GET", "/reports/monthly-summary?year=abc&month=3", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on non-integer month", func(t *testing.T) {
		r := setupReportRouter(NewReportHandler(&mockReportService{}))

		rec := doRequest(r, "GET", "/reports/monthly-summary?year=2024&month=x", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("propagates out-of-range month as 400", func(t *testing.T) {
		svc := &mockReportService{
			monthlySummaryFn: func(userID string, year, month int) (*services.MonthlySummary, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/monthly-summary?year=2024&month=13", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}
