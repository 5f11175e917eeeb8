package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// RecurringHandler exposes the fixed-expense materializer over HTTP.
type RecurringHandler struct {
	recurringService services.RecurringServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// Run handles a user-scoped materializer run.
// @Summary     Materialize fixed expenses
// @Description Create this month's instance for each of the caller's active fixed expense templates. Safe to call repeatedly.
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.RunReport "Run report"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /recurring/run [post]
func (h *RecurringHandler) Run(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report := h.recurringService.RunForUser(userID, time.Now())
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// RunAll handles a cron-triggered materializer run across all users.
// @Summary     Materialize fixed expenses for all users
// @Description Create this month's instance for every active fixed expense template. Intended for schedulers; requires the cron API key.
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Param       X-API-Key header string true "Cron API key"
// @Success     200 {object} services.RunReport "Run report"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /cron/recurring/run [post]
func (h *RecurringHandler) RunAll(c *gin.Context) {
	report := h.recurringService.Run(time.Now())
	c.JSON(http.StatusOK, gin.H{"report": report})
}
