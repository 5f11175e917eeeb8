package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// --- mock earning service ---

type mockEarningService struct {
	createEarningFn   func(userID uint, input services.EarningInput) (*models.Earning, error)
	getUserEarningsFn func(userID uint, page pagination.PageRequest, filter services.EarningFilter) (*pagination.PageResponse[models.Earning], error)
	getEarningByIDFn  func(userID, earningID uint) (*models.Earning, error)
	updateEarningFn   func(userID, earningID uint, input services.EarningInput) (*models.Earning, error)
	deleteEarningFn   func(userID, earningID uint) error
}

func (m *mockEarningService) CreateEarning(userID uint, input services.EarningInput) (*models.Earning, error) {
	if m.createEarningFn != nil {
		return m.createEarningFn(userID, input)
	}
	return &models.Earning{}, nil
}

func (m *mockEarningService) GetUserEarnings(userID uint, page pagination.PageRequest, filter services.EarningFilter) (*pagination.PageResponse[models.Earning], error) {
	if m.getUserEarningsFn != nil {
		return m.getUserEarningsFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Earning{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockEarningService) GetEarningByID(userID, earningID uint) (*models.Earning, error) {
	if m.getEarningByIDFn != nil {
		return m.getEarningByIDFn(userID, earningID)
	}
	return &models.Earning{}, nil
}

func (m *mockEarningService) UpdateEarning(userID, earningID uint, input services.EarningInput) (*models.Earning, error) {
	if m.updateEarningFn != nil {
		return m.updateEarningFn(userID, earningID, input)
	}
	return &models.Earning{}, nil
}

func (m *mockEarningService) DeleteEarning(userID, earningID uint) error {
	if m.deleteEarningFn != nil {
		return m.deleteEarningFn(userID, earningID)
	}
	return nil
}

// verify interface compliance
var _ services.EarningServicer = (*mockEarningService)(nil)

func setupEarningRouter(handler *EarningHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/earnings", handler.CreateEarning)
	auth.GET("/earnings", handler.GetEarnings)
	auth.GET("/earnings/:id", handler.GetEarning)
	auth.PUT("/earnings/:id", handler.UpdateEarning)
	auth.DELETE("/earnings/:id", handler.DeleteEarning)
	return r
}

// --- tests ---

func TestEarningHandler_CreateEarning(t *testing.T) {
	t.Run("returns 201 with the category", func(t *testing.T) {
		svc := &mockEarningService{
			createEarningFn: func(userID uint, input services.EarningInput) (*models.Earning, error) {
				return &models.Earning{
					Base:        models.Base{ID: 1},
					UserID:      userID,
					Date:        input.Date,
					Description: input.Description,
					Category:    input.Category,
					Value:       input.Value,
				}, nil
			},
		}
		handler := NewEarningHandler(svc, &mockAuditService{})
		r := setupEarningRouter(handler)

		rec := doRequest(r, "POST", "/earnings",
			`{"date":"2026-03-10T00:00:00Z","description":"Contract work","category":"freelance","value":50000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		earning := result["earning"].(map[string]interface{})
		if earning["category"] != "freelance" {
			t.Errorf("expected category freelance, got %v", earning["category"])
		}
	})

	t.Run("returns 400 on unknown category", func(t *testing.T) {
		handler := NewEarningHandler(&mockEarningService{}, &mockAuditService{})
		r := setupEarningRouter(handler)

		rec := doRequest(r, "POST", "/earnings",
			`{"description":"Loot","category":"plunder","value":100}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on missing value", func(t *testing.T) {
		handler := NewEarningHandler(&mockEarningService{}, &mockAuditService{})
		r := setupEarningRouter(handler)

		rec := doRequest(r, "POST", "/earnings", `{"description":"No value"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestEarningHandler_GetEarnings(t *testing.T) {
	t.Run("passes the filter through", func(t *testing.T) {
		var gotFilter services.EarningFilter
		svc := &mockEarningService{
			getUserEarningsFn: func(_ uint, _ pagination.PageRequest, filter services.EarningFilter) (*pagination.PageResponse[models.Earning], error) {
				gotFilter = filter
				resp := pagination.NewPageResponse([]models.Earning{}, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewEarningHandler(svc, &mockAuditService{})
		r := setupEarningRouter(handler)

		rec := doRequest(r, "GET", "/earnings?category=gift&from=2026-01-01T00:00:00Z", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.Category == nil || *gotFilter.Category != models.EarningCategoryGift {
			t.Errorf("expected category filter gift, got %v", gotFilter.Category)
		}
		want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		if gotFilter.FromDate == nil || !gotFilter.FromDate.Equal(want) {
			t.Errorf("expected from filter %v, got %v", want, gotFilter.FromDate)
		}
	})

	t.Run("returns 400 on unknown category filter", func(t *testing.T) {
		handler := NewEarningHandler(&mockEarningService{}, &mockAuditService{})
		r := setupEarningRouter(handler)

		rec := doRequest(r, "GET", "/earnings?category=plunder", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CATEGORY")
	})
}

func TestEarningHandler_UpdateEarning(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockEarningService{
			updateEarningFn: func(_, _ uint, _ services.EarningInput) (*models.Earning, error) {
				return nil, apperrors.ErrEarningNotFound
			},
		}
		handler := NewEarningHandler(svc, &mockAuditService{})
		r := setupEarningRouter(handler)

		rec := doRequest(r, "PUT", "/earnings/99",
			`{"description":"Ghost","category":"other","value":100}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "EARNING_NOT_FOUND")
	})
}
