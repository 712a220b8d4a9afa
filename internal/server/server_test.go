package server

import (
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/arifmahmud/coursebay/internal/coupon"
)

func registeredRoutes(t *testing.T) map[string]bool {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	setupRoutes(r, nil, coupon.NewStore())

	routes := make(map[string]bool)
	for _, route := range r.Routes() {
		routes[route.Method+" "+route.Path] = true
	}
	return routes
}

func TestContentRoutesRegistered(t *testing.T) {
	routes := registeredRoutes(t)

	want := []string{
		"POST /v1/modules",
		"PUT /v1/modules/:id",
		"DELETE /v1/modules/:id",
		"POST /v1/lessons",
		"PUT /v1/lessons/:id",
		"DELETE /v1/lessons/:id",
		"POST /v1/quizzes",
		"PUT /v1/quizzes/:id",
		"POST /v1/quizzes/:id/questions",
		"DELETE /v1/quizzes/:id",
		"POST /v1/courses",
		"PUT /v1/courses/:id",
		"DELETE /v1/courses/:id",
	}
	for _, route := range want {
		if !routes[route] {
			t.Errorf("route %q not registered", route)
		}
	}
}

func TestCheckoutRoutesRegistered(t *testing.T) {
	routes := registeredRoutes(t)

	want := []string{
		"POST /v1/coupons/apply",
		"DELETE /v1/coupons/apply",
		"POST /v1/checkout",
		"GET /v1/purchases",
		"GET /v1/purchases/:id/receipt-qr",
		"PATCH /v1/admin/purchases/:id/status",
	}
	for _, route := range want {
		if !routes[route] {
			t.Errorf("route %q not registered", route)
		}
	}
}
