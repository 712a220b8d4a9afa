package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arifmahmud/coursebay/internal/helpers"
	"github.com/arifmahmud/coursebay/internal/models"
)

type ModuleRequest struct {
	Title    string    `json:"title" binding:"required"`
	Position int       `json:"position"`
	CourseID uuid.UUID `json:"course_id" binding:"required"`
}

type LessonRequest struct {
	Title     string    `json:"title" binding:"required"`
	VideoURL  string    `json:"video_url"`
	Duration  string    `json:"duration"`
	Position  int       `json:"position"`
	IsPreview bool      `json:"is_preview"`
	ModuleID  uuid.UUID `json:"module_id" binding:"required"`
}

// ownedCourse loads a course only if the requester is its instructor.
func ownedCourse(c *gin.Context, gormDB *gorm.DB, courseID uuid.UUID) (*models.Course, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return nil, false
	}

	var course models.Course
	if err := gormDB.Where("id = ? AND user_id = ?", courseID, userID).First(&course).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusForbidden, "Course not found or you don't have permission to modify it.")
			return nil, false
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error verifying course ownership.")
		return nil, false
	}
	return &course, true
}

func CreateModule(c *gin.Context) {
	var req ModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	if _, ok := ownedCourse(c, gormDB, req.CourseID); !ok {
		return
	}

	module := models.CourseModule{
		ID:       uuid.New(),
		Title:    req.Title,
		Position: req.Position,
		CourseID: req.CourseID,
	}

	if err := gormDB.Create(&module).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create module.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Module created successfully.",
		"module_id": module.ID,
	})
}

func UpdateModule(c *gin.Context) {
	moduleID := c.Param("id")

	var req ModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var module models.CourseModule
	if err := gormDB.Where("id = ?", moduleID).First(&module).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Module not found.")
		return
	}

	if _, ok := ownedCourse(c, gormDB, module.CourseID); !ok {
		return
	}

	module.Title = req.Title
	module.Position = req.Position

	if err := gormDB.Save(&module).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update module.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Module updated successfully.",
		"module":  module,
	})
}

func DeleteModule(c *gin.Context) {
	moduleID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var module models.CourseModule
	if err := gormDB.Where("id = ?", moduleID).First(&module).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Module not found.")
		return
	}

	if _, ok := ownedCourse(c, gormDB, module.CourseID); !ok {
		return
	}

	if err := gormDB.Delete(&module).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete module.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Module deleted successfully.",
	})
}

func CreateLesson(c *gin.Context) {
	var req LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var module models.CourseModule
	if err := gormDB.Where("id = ?", req.ModuleID).First(&module).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Module not found.")
		return
	}

	if _, ok := ownedCourse(c, gormDB, module.CourseID); !ok {
		return
	}

	lesson := models.Lesson{
		ID:        uuid.New(),
		Title:     req.Title,
		VideoURL:  req.VideoURL,
		Duration:  req.Duration,
		Position:  req.Position,
		IsPreview: req.IsPreview,
		ModuleID:  req.ModuleID,
	}

	if err := gormDB.Create(&lesson).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create lesson.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Lesson created successfully.",
		"lesson_id": lesson.ID,
	})
}

func UpdateLesson(c *gin.Context) {
	lessonID := c.Param("id")

	var req LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var lesson models.Lesson
	if err := gormDB.Preload("Module").Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Lesson not found.")
		return
	}

	if _, ok := ownedCourse(c, gormDB, lesson.Module.CourseID); !ok {
		return
	}

	if req.ModuleID != lesson.ModuleID {
		var target models.CourseModule
		if err := gormDB.Where("id = ?", req.ModuleID).First(&target).Error; err != nil {
			helpers.RespondWithError(c, http.StatusNotFound, "Module not found.")
			return
		}
		if _, ok := ownedCourse(c, gormDB, target.CourseID); !ok {
			return
		}
		lesson.ModuleID = req.ModuleID
	}

	lesson.Title = req.Title
	lesson.VideoURL = req.VideoURL
	lesson.Duration = req.Duration
	lesson.Position = req.Position
	lesson.IsPreview = req.IsPreview

	if err := gormDB.Save(&lesson).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update lesson.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lesson updated successfully.",
		"lesson":  lesson,
	})
}

func DeleteLesson(c *gin.Context) {
	lessonID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var lesson models.Lesson
	if err := gormDB.Preload("Module").Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Lesson not found.")
		return
	}

	if _, ok := ownedCourse(c, gormDB, lesson.Module.CourseID); !ok {
		return
	}

	if err := gormDB.Delete(&lesson).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete lesson.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lesson deleted successfully.",
	})
}
