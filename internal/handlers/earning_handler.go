package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// EarningHandler handles earning-related requests.
type EarningHandler struct {
	earningService services.EarningServicer
	auditService   services.AuditServicer
}

// NewEarningHandler creates a new EarningHandler.
func NewEarningHandler(earningService services.EarningServicer, auditService services.AuditServicer) *EarningHandler {
	return &EarningHandler{earningService: earningService, auditService: auditService}
}

// EarningRequest represents the request payload for creating or updating an earning.
type EarningRequest struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description" binding:"required,min=1,max=255"`
	Category    string    `json:"category" binding:"omitempty,earning_category"`
	Value       int64     `json:"value" binding:"required,gt=0"`
}

func (r *EarningRequest) toInput() services.EarningInput {
	return services.EarningInput{
		Date:        r.Date,
		Description: r.Description,
		Category:    models.EarningCategory(r.Category),
		Value:       r.Value,
	}
}

// CreateEarning handles the creation of a new earning.
// @Summary     Create an earning
// @Description Record a new one-off earning, value in cents
// @Tags        earnings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EarningRequest true "Earning details"
// @Success     201 {object} models.Earning "Earning created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /earnings [post]
func (h *EarningHandler) CreateEarning(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EarningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	earning, err := h.earningService.CreateEarning(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_EARNING", "earning", earning.ID, c.ClientIP(),
		map[string]interface{}{"value": req.Value})

	c.JSON(http.StatusCreated, gin.H{"earning": earning})
}

// GetEarnings handles listing earnings for the authenticated user.
// @Summary     Get earnings
// @Description Get a paginated list of earnings, optionally filtered by category and bounded by date
// @Tags        earnings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category  query string false "Earning category"
// @Param       from      query string false "Start date (RFC 3339)"
// @Param       to        query string false "End date (RFC 3339)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Earning] "Paginated earnings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /earnings [get]
func (h *EarningHandler) GetEarnings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.EarningFilter
	if v := c.Query("category"); v != "" {
		category := models.EarningCategory(v)
		if !category.Valid() {
			respondWithError(c, apperrors.ErrInvalidCategory)
			return
		}
		filter.Category = &category
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from must be an RFC 3339 date"))
			return
		}
		filter.FromDate = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to must be an RFC 3339 date"))
			return
		}
		filter.ToDate = &t
	}

	result, err := h.earningService.GetUserEarnings(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEarning handles retrieving a specific earning.
// @Summary     Get earning by ID
// @Description Get a specific earning by its ID
// @Tags        earnings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Earning ID"
// @Success     200 {object} models.Earning "Earning details"
// @Failure     400 {object} ErrorResponse "Invalid earning ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Earning not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /earnings/{id} [get]
func (h *EarningHandler) GetEarning(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	earningID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	earning, err := h.earningService.GetEarningByID(userID, earningID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"earning": earning})
}

// UpdateEarning handles updating an existing earning.
// @Summary     Update earning
// @Description Update an existing earning
// @Tags        earnings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int            true "Earning ID"
// @Param       request body EarningRequest true "Updated earning details"
// @Success     200 {object} models.Earning "Updated earning"
// @Failure     400 {object} ErrorResponse "Invalid input or earning ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Earning not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /earnings/{id} [put]
func (h *EarningHandler) UpdateEarning(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	earningID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EarningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	earning, err := h.earningService.UpdateEarning(userID, earningID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_EARNING", "earning", earningID, c.ClientIP(),
		map[string]interface{}{"value": req.Value})

	c.JSON(http.StatusOK, gin.H{"earning": earning})
}

// DeleteEarning handles deleting an earning.
// @Summary     Delete earning
// @Description Delete an earning by ID (soft delete)
// @Tags        earnings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Earning ID"
// @Success     200 {object} MessageResponse "Earning deleted"
// @Failure     400 {object} ErrorResponse "Invalid earning ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Earning not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /earnings/{id} [delete]
func (h *EarningHandler) DeleteEarning(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	earningID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.earningService.DeleteEarning(userID, earningID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_EARNING", "earning", earningID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Earning deleted successfully"})
}
