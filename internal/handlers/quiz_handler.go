package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arifmahmud/coursebay/internal/helpers"
	"github.com/arifmahmud/coursebay/internal/models"
)

type QuizRequest struct {
	Title       string    `json:"title" binding:"required"`
	PassPercent int       `json:"pass_percent" binding:"omitempty,min=0,max=100"`
	CourseID    uuid.UUID `json:"course_id" binding:"required"`
}

type QuizQuestionRequest struct {
	Prompt       string   `json:"prompt" binding:"required"`
	Options      []string `json:"options" binding:"required,min=2"`
	CorrectIndex int      `json:"correct_index" binding:"min=0"`
	Position     int      `json:"position"`
}

func CreateQuiz(c *gin.Context) {
	var req QuizRequest
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

	passPercent := req.PassPercent
	if passPercent == 0 {
		passPercent = 60
	}

	quiz := models.Quiz{
		ID:          uuid.New(),
		Title:       req.Title,
		PassPercent: passPercent,
		CourseID:    req.CourseID,
	}

	if err := gormDB.Create(&quiz).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create quiz.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Quiz created successfully.",
		"quiz_id": quiz.ID,
	})
}

func AddQuizQuestion(c *gin.Context) {
	quizID := c.Param("id")

	var req QuizQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.CorrectIndex >= len(req.Options) {
		helpers.RespondWithError(c, http.StatusBadRequest, "correct_index is out of range.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var quiz models.Quiz
	if err := gormDB.Where("id = ?", quizID).First(&quiz).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Quiz not found.")
		return
	}

	if _, ok := ownedCourse(c, gormDB, quiz.CourseID); !ok {
		return
	}

	question := models.QuizQuestion{
		ID:           uuid.New(),
		Prompt:       req.Prompt,
		Options:      req.Options,
		CorrectIndex: req.CorrectIndex,
		Position:     req.Position,
		QuizID:       quiz.ID,
	}

	if err := gormDB.Create(&question).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to add question.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Question added successfully.",
		"question_id": question.ID,
	})
}

func GetQuiz(c *gin.Context) {
	quizID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var quiz models.Quiz
	if err := gormDB.Preload("Questions").Where("id = ?", quizID).First(&quiz).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Quiz not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving quiz.")
		return
	}

	c.JSON(http.StatusOK, quiz)
}

func UpdateQuiz(c *gin.Context) {
	quizID := c.Param("id")

	var req QuizRequest
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

	var quiz models.Quiz
	if err := gormDB.Where("id = ?", quizID).First(&quiz).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Quiz not found.")
		return
	}

	if _, ok := ownedCourse(c, gormDB, quiz.CourseID); !ok {
		return
	}

	if req.CourseID != quiz.CourseID {
		if _, ok := ownedCourse(c, gormDB, req.CourseID); !ok {
			return
		}
		quiz.CourseID = req.CourseID
	}

	quiz.Title = req.Title
	if req.PassPercent != 0 {
		quiz.PassPercent = req.PassPercent
	}

	if err := gormDB.Save(&quiz).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update quiz.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quiz updated successfully.",
		"quiz":    quiz,
	})
}

func DeleteQuiz(c *gin.Context) {
	quizID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var quiz models.Quiz
	if err := gormDB.Where("id = ?", quizID).First(&quiz).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Quiz not found.")
		return
	}

	if _, ok := ownedCourse(c, gormDB, quiz.CourseID); !ok {
		return
	}

	if err := gormDB.Delete(&quiz).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete quiz.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quiz deleted successfully.",
	})
}
