package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func roleRequest(t *testing.T, mw gin.HandlerFunc, role string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	})
	r.Use(mw)
	r.GET("/guarded", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestInstructorMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{name: "instructor allowed", role: "instructor", wantStatus: http.StatusOK},
		{name: "admin allowed", role: "admin", wantStatus: http.StatusOK},
		{name: "student forbidden", role: "student", wantStatus: http.StatusForbidden},
		{name: "missing role forbidden", role: "", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := roleRequest(t, InstructorMiddleware(), tt.role)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{name: "admin allowed", role: "admin", wantStatus: http.StatusOK},
		{name: "instructor forbidden", role: "instructor", wantStatus: http.StatusForbidden},
		{name: "missing role forbidden", role: "", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := roleRequest(t, AdminMiddleware(), tt.role)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
