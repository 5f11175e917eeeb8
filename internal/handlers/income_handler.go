package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// IncomeHandler handles monthly income requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// IncomeRequest represents the request payload for setting a month's income.
type IncomeRequest struct {
	Value int64 `json:"value" binding:"required,gt=0"`
}

func parseYearMonth(c *gin.Context) (int, int, error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1900 || year > 3000 {
		return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid year")
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid month")
	}
	if month < 1 || month > 12 {
		return 0, 0, apperrors.ErrInvalidMonth
	}
	return year, month, nil
}

// GetIncome handles retrieving the income registered for a month.
// @Summary     Get monthly income
// @Description Get the income registered for a given year and month
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year  path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {object} models.MonthlyIncome "Monthly income"
// @Failure     400 {object} ErrorResponse "Invalid year or month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No income registered for the month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{year}/{month} [get]
func (h *IncomeHandler) GetIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	income, err := h.incomeService.GetMonthlyIncome(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": income})
}

// SetIncome handles registering or replacing the income for a month.
// @Summary     Set monthly income
// @Description Register the income for a given year and month, replacing any previous value
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year    path int           true "Year"
// @Param       month   path int           true "Month (1-12)"
// @Param       request body IncomeRequest true "Income value in cents"
// @Success     200 {object} models.MonthlyIncome "Monthly income"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{year}/{month} [put]
func (h *IncomeHandler) SetIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, err := h.incomeService.SetMonthlyIncome(userID, year, month, req.Value)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": income})
}
