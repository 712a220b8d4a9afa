package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/arifmahmud/coursebay/internal/helpers"
	"github.com/arifmahmud/coursebay/internal/middleware"
	"github.com/arifmahmud/coursebay/internal/models"
	"github.com/arifmahmud/coursebay/internal/pricing"
)

type CourseRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Image       string          `json:"image"`
	Duration    string          `json:"duration"`
	IsPaid      *bool           `json:"is_paid"`
	CouponCode  *string         `json:"coupon_code"`
}

func CreateCourse(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}

	course := models.Course{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Duration:    req.Duration,
		IsPaid:      isPaid,
		CouponCode:  req.CouponCode,
		UserID:      userID.(uuid.UUID),
	}

	if err := gormDB.Create(&course).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create course.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Course created successfully.",
		"course_id": course.ID,
	})
}

func ListCourses(c *gin.Context) {
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

	query := gormDB.Model(&models.Course{})
	var totalCount int64
	query.Count(&totalCount)

	var courses []models.Course
	offset := (pageNum - 1) * limitNum
	err = query.Offset(offset).Limit(limitNum).Order("created_at DESC").Find(&courses).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving courses.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"courses":     courses,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

// GetCourse returns the course detail. When the requester's session carries
// a coupon applied to this course, the response includes the discounted
// pricing so the page can render it on every visit.
func GetCourse(c *gin.Context) {
	courseID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var course models.Course
	if err := gormDB.Preload("Modules.Lessons").Where("id = ?", courseID).First(&course).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Course not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving course.")
		return
	}

	response := gin.H{"course": course}

	store := middleware.GetSessionStore(c)
	if userID, ok := c.Get("user_id"); ok && store != nil {
		if applied, found := store.Get(userID.(uuid.UUID).String()); found {
			quote := pricing.ComputeFinalPrice(course.Price, course.ID, &applied)
			response["applied_coupon"] = applied
			response["discount_amount"] = quote.DiscountAmount
			response["final_price"] = quote.FinalPrice
		}
	}

	c.JSON(http.StatusOK, response)
}

func UpdateCourse(c *gin.Context) {
	courseID := c.Param("id")

	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var course models.Course
	if err := gormDB.Where("id = ? AND user_id = ?", courseID, userID).First(&course).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusForbidden, "Course not found or you don't have permission to modify it.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding course.")
		return
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Price = req.Price
	course.Image = req.Image
	course.Duration = req.Duration
	course.CouponCode = req.CouponCode
	if req.IsPaid != nil {
		course.IsPaid = *req.IsPaid
	}

	if err := gormDB.Save(&course).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update course.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Course updated successfully.",
		"course":  course,
	})
}

func DeleteCourse(c *gin.Context) {
	courseID := c.Param("id")

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ? AND user_id = ?", courseID, userID).Delete(&models.Course{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete course.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusForbidden, "Course not found or you don't have permission to delete.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Course deleted successfully.",
	})
}
