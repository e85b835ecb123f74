package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func performListServices(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	listServices(c)
	return w
}

func TestListServicesRejectsNonNumericCostFilters(t *testing.T) {
	if w := performListServices(t, "/services?min_cost=cheap"); w.Code != http.StatusBadRequest {
		t.Errorf("min_cost=cheap: status %d, want 400", w.Code)
	}
	if w := performListServices(t, "/services?max_cost=12x"); w.Code != http.StatusBadRequest {
		t.Errorf("max_cost=12x: status %d, want 400", w.Code)
	}
}

func TestListServicesRejectsUnknownCategory(t *testing.T) {
	if w := performListServices(t, "/services?category=garage"); w.Code != http.StatusBadRequest {
		t.Errorf("unknown category: status %d, want 400", w.Code)
	}
}
