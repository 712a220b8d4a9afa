package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arifmahmud/coursebay/internal/helpers"
	"github.com/arifmahmud/coursebay/internal/models"
)

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateReview lets an enrolled user review a course, one review per
// user/course.
func CreateReview(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}
	userUUID := userID.(uuid.UUID)

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid course ID.")
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Rating must be between 1 and 5.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var enrollment models.Enrollment
	if err := gormDB.Where("user_id = ? AND course_id = ?", userUUID, courseID).First(&enrollment).Error; err != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "You must be enrolled in the course to review it.")
		return
	}

	var existing models.Review
	if err := gormDB.Where("user_id = ? AND course_id = ?", userUUID, courseID).First(&existing).Error; err == nil {
		helpers.RespondWithError(c, http.StatusConflict, "You have already reviewed this course.")
		return
	}

	review := models.Review{
		ID:       uuid.New(),
		Rating:   req.Rating,
		Comment:  req.Comment,
		UserID:   userUUID,
		CourseID: courseID,
	}

	if err := gormDB.Create(&review).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create review.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Review created successfully.",
		"review_id": review.ID,
	})
}

func ListCourseReviews(c *gin.Context) {
	courseID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var reviews []models.Review
	if err := gormDB.Where("course_id = ?", courseID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reviews.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func ListMyEnrollments(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var enrollments []models.Enrollment
	if err := gormDB.Preload("Course").Where("user_id = ?", userID).Order("enrolled_at DESC").Find(&enrollments).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving enrollments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"enrollments": enrollments})
}
