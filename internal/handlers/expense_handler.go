package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/installments"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// ExpenseRequest represents the request payload for creating or updating an expense.
// Monetary values are in cents. total_value may be omitted, in which case it
// is derived from unit_value and quantity.
type ExpenseRequest struct {
	Date          time.Time `json:"date"`
	Category      string    `json:"category" binding:"required,expense_category"`
	Description   string    `json:"description" binding:"required,min=1,max=255"`
	UnitValue     int64     `json:"unit_value" binding:"omitempty,gt=0"`
	Quantity      float64   `json:"quantity" binding:"omitempty,gt=0"`
	TotalValue    int64     `json:"total_value" binding:"omitempty,gt=0"`
	Installments  *int      `json:"installments" binding:"omitempty,min=1,max=120"`
	IsFixed       bool      `json:"is_fixed"`
	PaymentMethod string    `json:"payment_method" binding:"omitempty,payment_method"`
	Account       string    `json:"account" binding:"max=100"`
	Location      string    `json:"location" binding:"max=255"`
	Notes         string    `json:"notes" binding:"max=1000"`
}

// PayExpenseRequest represents the request payload for marking an expense paid.
type PayExpenseRequest struct {
	PaymentDate time.Time `json:"payment_date"`
}

// ExpenseView is an expense row decorated with its installment state at the
// time of the request. The same resolver backs the statistics aggregates, so
// the two can never disagree.
type ExpenseView struct {
	models.Expense
	Installment installments.Installment `json:"installment"`
}

func newExpenseView(e models.Expense, now time.Time) ExpenseView {
	return ExpenseView{
		Expense:     e,
		Installment: installments.Resolve(e.Date, e.InstallmentCount(), e.TotalValue, now),
	}
}

func (r *ExpenseRequest) toInput() services.ExpenseInput {
	return services.ExpenseInput{
		Date:          r.Date,
		Category:      models.ExpenseCategory(r.Category),
		Description:   r.Description,
		UnitValue:     r.UnitValue,
		Quantity:      r.Quantity,
		TotalValue:    r.TotalValue,
		Installments:  r.Installments,
		IsFixed:       r.IsFixed,
		PaymentMethod: models.PaymentMethod(r.PaymentMethod),
		Account:       r.Account,
		Location:      r.Location,
		Notes:         r.Notes,
	}
}

// CreateExpense handles the creation of a new expense.
// @Summary     Create an expense
// @Description Record a new expense, optionally fixed (recurring) or paid in installments
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExpenseRequest true "Expense details"
// @Success     201 {object} ExpenseView "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.CreateExpense(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_EXPENSE", "expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"category": req.Category, "total_value": expense.TotalValue, "is_fixed": req.IsFixed})

	c.JSON(http.StatusCreated, gin.H{"expense": newExpenseView(*expense, time.Now())})
}

// GetExpenses handles listing expenses for the authenticated user.
// @Summary     Get expenses
// @Description Get a paginated, filtered list of expenses with installment state
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category       query string false "Filter by category"
// @Param       is_fixed       query bool   false "Filter by fixed flag"
// @Param       is_paid        query bool   false "Filter by paid flag"
// @Param       payment_method query string false "Filter by payment method"
// @Param       from           query string false "Start date (RFC 3339)"
// @Param       to             query string false "End date (RFC 3339)"
// @Param       page           query int    false "Page number (default 1)"
// @Param       page_size      query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[ExpenseView] "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
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

	filter, err := parseExpenseFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.expenseService.GetUserExpenses(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// One reference time for the whole page.
	now := time.Now()
	views := make([]ExpenseView, 0, len(result.Data))
	for _, e := range result.Data {
		views = append(views, newExpenseView(e, now))
	}

	c.JSON(http.StatusOK, pagination.NewPageResponse(views, result.Page, result.PageSize, result.TotalItems))
}

// parseExpenseFilter extracts optional filter parameters from the query string.
func parseExpenseFilter(c *gin.Context) (services.ExpenseFilter, error) {
	var filter services.ExpenseFilter

	if v := c.Query("category"); v != "" {
		cat := models.ExpenseCategory(v)
		if !cat.Valid() {
			return filter, apperrors.ErrInvalidCategory
		}
		filter.Category = &cat
	}
	var err error
	if filter.IsFixed, err = parseBoolQuery(c, "is_fixed"); err != nil {
		return filter, err
	}
	if filter.IsPaid, err = parseBoolQuery(c, "is_paid"); err != nil {
		return filter, err
	}
	if v := c.Query("payment_method"); v != "" {
		method := models.PaymentMethod(v)
		filter.PaymentMethod = &method
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "from must be an RFC 3339 date")
		}
		filter.FromDate = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "to must be an RFC 3339 date")
		}
		filter.ToDate = &t
	}
	return filter, nil
}

func parseBoolQuery(c *gin.Context, name string) (*bool, error) {
	switch c.Query(name) {
	case "":
		return nil, nil
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, name+" must be 'true' or 'false'")
	}
}

// GetExpense handles retrieving a specific expense.
// @Summary     Get expense by ID
// @Description Get a specific expense with its installment state
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} ExpenseView "Expense details"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": newExpenseView(*expense, time.Now())})
}

// UpdateExpense handles updating an existing expense.
// @Summary     Update expense
// @Description Update an existing expense; the purchase date is immutable
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int            true "Expense ID"
// @Param       request body ExpenseRequest true "Updated expense details"
// @Success     200 {object} ExpenseView "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input or expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.UpdateExpense(userID, expenseID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_EXPENSE", "expense", expenseID, c.ClientIP(),
		map[string]interface{}{"category": req.Category, "total_value": expense.TotalValue})

	c.JSON(http.StatusOK, gin.H{"expense": newExpenseView(*expense, time.Now())})
}

// PayExpense handles marking an expense as paid.
// @Summary     Mark expense paid
// @Description Mark an expense as paid, recording the payment date
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true  "Expense ID"
// @Param       request body PayExpenseRequest false "Payment date (defaults to now)"
// @Success     200 {object} ExpenseView "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     409 {object} ErrorResponse "Expense already paid"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id}/pay [post]
func (h *ExpenseHandler) PayExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PayExpenseRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	expense, err := h.expenseService.MarkPaid(userID, expenseID, req.PaymentDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "PAY_EXPENSE", "expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"expense": newExpenseView(*expense, time.Now())})
}

// DeleteExpense handles deleting an expense.
// @Summary     Delete expense
// @Description Delete an expense by ID (soft delete)
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_EXPENSE", "expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
