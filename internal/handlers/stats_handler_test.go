package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
	"fintrack/internal/services"
)

type mockStatsService struct {
	getSummaryFn func(userID uint, filter services.ExpenseFilter, now time.Time) (*services.Summary, error)
}

func (m *mockStatsService) GetSummary(userID uint, filter services.ExpenseFilter, now time.Time) (*services.Summary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(userID, filter, now)
	}
	return &services.Summary{ByCategory: map[string]int64{}}, nil
}

func setupStatsRouter(handler *StatsHandler) *gin.Engine {
	r := gin.New()
	r.GET("/stats/summary", injectUserID(1), handler.GetSummary)
	return r
}

func TestStatsHandler_GetSummary(t *testing.T) {
	t.Run("returns 200 with summary", func(t *testing.T) {
		statsSvc := &mockStatsService{
			getSummaryFn: func(_ uint, _ services.ExpenseFilter, _ time.Time) (*services.Summary, error) {
				return &services.Summary{
					TotalSpent: 20000,
					MonthSpent: 12000,
					FixedTotal: 8000,
					Count:      3,
					ByCategory: map[string]int64{"food": 12000, "housing": 8000},
				}, nil
			},
		}
		handler := NewStatsHandler(statsSvc)
		r := setupStatsRouter(handler)

		rec := doRequest(r, "GET", "/stats/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		summary := result["summary"].(map[string]interface{})
		if summary["total_spent"] != float64(20000) {
			t.Errorf("expected total_spent 20000, got %v", summary["total_spent"])
		}
		byCat := summary["by_category"].(map[string]interface{})
		if byCat["food"] != float64(12000) {
			t.Errorf("expected food 12000, got %v", byCat["food"])
		}
	})

	t.Run("passes filters to the service", func(t *testing.T) {
		var got services.ExpenseFilter
		statsSvc := &mockStatsService{
			getSummaryFn: func(_ uint, filter services.ExpenseFilter, _ time.Time) (*services.Summary, error) {
				got = filter
				return &services.Summary{ByCategory: map[string]int64{}}, nil
			},
		}
		handler := NewStatsHandler(statsSvc)
		r := setupStatsRouter(handler)

		rec := doRequest(r, "GET", "/stats/summary?category=transport&is_paid=true", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.Category == nil || *got.Category != models.CategoryTransport {
			t.Error("expected category filter transport")
		}
		if got.IsPaid == nil || !*got.IsPaid {
			t.Error("expected is_paid filter true")
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewStatsHandler(&mockStatsService{})
		r := gin.New()
		r.GET("/stats/summary", handler.GetSummary)

		rec := doRequest(r, "GET", "/stats/summary", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
