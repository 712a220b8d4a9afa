package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/arifmahmud/coursebay/internal/coupon"
	"github.com/arifmahmud/coursebay/internal/helpers"
	"github.com/arifmahmud/coursebay/internal/middleware"
	"github.com/arifmahmud/coursebay/internal/models"
	"github.com/arifmahmud/coursebay/internal/pricing"
)

type CouponRequest struct {
	Code          string          `json:"code" binding:"required"`
	DiscountType  string          `json:"discount_type" binding:"required,oneof=percentage fixed_amount"`
	DiscountValue decimal.Decimal `json:"discount_value" binding:"required"`
	ValidFrom     time.Time       `json:"valid_from" binding:"required"`
	ValidUntil    time.Time       `json:"valid_until" binding:"required"`
	UsageLimit    *int            `json:"usage_limit"`
	IsActive      *bool           `json:"is_active"`
}

type ApplyCouponRequest struct {
	Code     string    `json:"code" binding:"required"`
	CourseID uuid.UUID `json:"course_id" binding:"required"`
}

func validateCouponRequest(req *CouponRequest) string {
	if req.DiscountType == models.DiscountPercentage {
		if req.DiscountValue.IsNegative() || req.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			return "Percentage discount must be between 0 and 100."
		}
	}
	if req.ValidUntil.Before(req.ValidFrom) {
		return "valid_until must not be before valid_from."
	}
	if req.UsageLimit != nil && *req.UsageLimit < 1 {
		return "usage_limit must be at least 1."
	}
	return ""
}

func CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if msg := validateCouponRequest(&req); msg != "" {
		helpers.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	newCoupon := models.Coupon{
		ID:            uuid.New(),
		Code:          req.Code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		ValidFrom:     req.ValidFrom,
		ValidUntil:    req.ValidUntil,
		UsageLimit:    req.UsageLimit,
		IsActive:      isActive,
	}

	if err := gormDB.Create(&newCoupon).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create coupon.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Coupon created successfully.",
		"coupon_id": newCoupon.ID,
	})
}

func ListCoupons(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	pageNum, limitNum, err := helpers.ParsePagination(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	query := gormDB.Model(&models.Coupon{})
	var totalCount int64
	query.Count(&totalCount)

	var coupons []models.Coupon
	offset := (pageNum - 1) * limitNum
	err = query.Offset(offset).Limit(limitNum).Order("created_at DESC").Find(&coupons).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving coupons.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coupons":     coupons,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func GetCoupon(c *gin.Context) {
	couponID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var found models.Coupon
	if err := gormDB.Where("id = ?", couponID).First(&found).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Coupon not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving coupon.")
		return
	}

	c.JSON(http.StatusOK, found)
}

func UpdateCoupon(c *gin.Context) {
	couponID := c.Param("id")

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if msg := validateCouponRequest(&req); msg != "" {
		helpers.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var found models.Coupon
	if err := gormDB.Where("id = ?", couponID).First(&found).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Coupon not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding coupon.")
		return
	}

	found.Code = models.NormalizeCouponCode(req.Code)
	found.DiscountType = req.DiscountType
	found.DiscountValue = req.DiscountValue
	found.ValidFrom = req.ValidFrom
	found.ValidUntil = req.ValidUntil
	found.UsageLimit = req.UsageLimit
	if req.IsActive != nil {
		found.IsActive = *req.IsActive
	}

	if err := gormDB.Save(&found).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update coupon.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon updated successfully.",
		"coupon":  found,
	})
}

// DeleteCoupon removes a coupon unconditionally. Historical order items keep
// only the code string, so past receipts are unaffected.
func DeleteCoupon(c *gin.Context) {
	couponID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", couponID).Delete(&models.Coupon{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete coupon.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Coupon not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon deleted successfully.",
	})
}

// ApplyCoupon validates a code against one course, consumes a use, stores
// the applied coupon in the session, and returns the discounted pricing.
func ApplyCoupon(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format.")
		return
	}

	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithFieldError(c, http.StatusBadRequest, "code", "Coupon code and course are required.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var course models.Course
	if err := gormDB.Where("id = ?", req.CourseID).First(&course).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Course not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving course.")
		return
	}

	validator := coupon.NewValidator(coupon.NewGormRepository(gormDB))
	applied, err := validator.Validate(c.Request.Context(), req.Code, &course, userUUID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, coupon.ErrNotFound):
			helpers.RespondWithFieldError(c, http.StatusNotFound, "code", "Coupon not found.")
		case errors.Is(err, coupon.ErrInactive), errors.Is(err, coupon.ErrOutOfWindow):
			helpers.RespondWithFieldError(c, http.StatusBadRequest, "code", "This coupon is invalid or expired.")
		case errors.Is(err, coupon.ErrNotApplicableToCourse):
			helpers.RespondWithFieldError(c, http.StatusBadRequest, "code", "This coupon is not valid for this course.")
		case errors.Is(err, coupon.ErrUsageLimitReached):
			helpers.RespondWithFieldError(c, http.StatusBadRequest, "code", "Coupon usage limit reached.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error applying coupon.")
		}
		return
	}

	store := middleware.GetSessionStore(c)
	if store == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Session store not found.")
		return
	}
	store.Put(userUUID.String(), *applied)

	quote := pricing.ComputeFinalPrice(course.Price, course.ID, applied)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Coupon applied successfully.",
		"applied_coupon":  applied,
		"discount_amount": quote.DiscountAmount,
		"final_price":     quote.FinalPrice,
	})
}

// RemoveCoupon clears the session's applied coupon. The coupon's used_count
// is not decremented.
func RemoveCoupon(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format.")
		return
	}

	store := middleware.GetSessionStore(c)
	if store == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Session store not found.")
		return
	}
	store.Clear(userUUID.String())

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon removed.",
	})
}
