package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// StatsHandler handles expense statistics requests.
type StatsHandler struct {
	statsService services.StatsServicer
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService services.StatsServicer) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetSummary handles the expense summary request.
// @Summary     Get expense summary
// @Description Get aggregate spending figures. Multi-installment purchases count their current installment value, not the full ticket price.
// @Tags        stats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category       query string false "Filter by category"
// @Param       is_fixed       query bool   false "Filter by fixed flag"
// @Param       is_paid        query bool   false "Filter by paid flag"
// @Param       payment_method query string false "Filter by payment method"
// @Param       from           query string false "Start date (RFC 3339)"
// @Param       to             query string false "End date (RFC 3339)"
// @Success     200 {object} services.Summary "Expense summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/summary [get]
func (h *StatsHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.statsService.GetSummary(userID, filter, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
