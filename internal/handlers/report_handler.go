package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/beabzk/pft-api/internal/errors"
	"github.com/beabzk/pft-api/internal/services"
)

// ReportHandler handles reporting requests
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// MonthlySummary handles the monthly income/expense summary
// @Summary     Monthly summary
// @Description Get total income, total expenses, and net savings for a month. Year and month default to the current date.
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (defaults to current)"
// @Param       month query int false "Month 1-12 (defaults to current)"
// @Success     200 {object} services.MonthlySummary "Summary for the month"
// @Failure     400 {object} ErrorResponse "Invalid year or month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/monthly-summary [get]
func (h *ReportHandler) MonthlySummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Year and month default independently to the current date.
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if raw := c.Query("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "year must be an integer"))
			return
		}
	}

	if raw := c.Query("month"); raw != "" {
		month, err = strconv.Atoi(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be an integer"))
			return
		}
	}

	summary, err := h.reportService.MonthlySummary(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
