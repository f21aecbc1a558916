package maintenance

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(m *Middleware) *gin.Engine {
	router := gin.New()
	router.Use(m.Handler())
	handler := func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
	router.GET("/test", handler)
	router.HEAD("/test", handler)
	router.OPTIONS("/test", handler)
	router.POST("/test", handler)
	router.PUT("/test", handler)
	router.DELETE("/test", handler)
	return router
}

func TestNewMiddleware(t *testing.T) {
	if !NewMiddleware(true).IsEnabled() {
		t.Error("Expected middleware to be enabled")
	}
	if NewMiddleware(false).IsEnabled() {
		t.Error("Expected middleware to be disabled")
	}
}

func TestMiddleware_AllowsSafeMethods(t *testing.T) {
	router := newTestRouter(NewMiddleware(true))

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		req := httptest.NewRequest(method, "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200 for %s, got %d", method, w.Code)
		}
	}
}

func TestMiddleware_BlocksWrites(t *testing.T) {
	router := newTestRouter(NewMiddleware(true))

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503 for %s, got %d", method, w.Code)
		}
		if w.Header().Get("Retry-After") == "" {
			t.Errorf("Expected Retry-After header for %s", method)
		}
	}
}

func TestMiddleware_JSONResponse(t *testing.T) {
	router := newTestRouter(NewMiddleware(true))

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["read_only"] != true {
		t.Error("Expected read_only flag in response")
	}
}

func TestMiddleware_DisabledAllowsAllRequests(t *testing.T) {
	router := newTestRouter(NewMiddleware(false))

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 when disabled, got %d", w.Code)
	}
}

func TestMiddleware_SetsContextFlag(t *testing.T) {
	var flag any
	router := gin.New()
	router.Use(NewMiddleware(true).Handler())
	router.GET("/test", func(c *gin.Context) {
		flag, _ = c.Get(ContextKeyReadOnly)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	if flag != true {
		t.Errorf("Expected read_only=true in context, got %v", flag)
	}
}
