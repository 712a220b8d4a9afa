package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/arifmahmud/coursebay/internal/coupon"
)

func SessionStoreMiddleware(store *coupon.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("coupon_store", store)
		c.Next()
	}
}

func GetSessionStore(c *gin.Context) *coupon.Store {
	store, exists := c.Get("coupon_store")
	if !exists {
		return nil
	}
	return store.(*coupon.Store)
}
