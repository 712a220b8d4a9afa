package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arifmahmud/coursebay/config"
	"github.com/arifmahmud/coursebay/internal/coupon"
	"github.com/arifmahmud/coursebay/internal/handlers"
	"github.com/arifmahmud/coursebay/internal/helpers"
	"github.com/arifmahmud/coursebay/internal/middleware"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	helpers.RegisterCustomValidators()

	r := gin.Default()

	setupRoutes(r, db, coupon.NewStore())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, store *coupon.Store) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.SessionStoreMiddleware(store))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		coursePublic := public.Group("/courses")
		coursePublic.Use(middleware.OptionalJWTMiddleware())
		{
			coursePublic.GET("", handlers.ListCourses)
			coursePublic.GET("/:id", handlers.GetCourse)
			coursePublic.GET("/:id/reviews", handlers.ListCourseReviews)
		}

		public.GET("/quizzes/:id", handlers.GetQuiz)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.POST("/courses/:id/reviews", handlers.CreateReview)

		instructor := protected.Group("")
		instructor.Use(middleware.InstructorMiddleware())
		{
			instructorCourses := instructor.Group("/courses")
			{
				instructorCourses.POST("", handlers.CreateCourse)
				instructorCourses.PUT("/:id", handlers.UpdateCourse)
				instructorCourses.DELETE("/:id", handlers.DeleteCourse)
			}

			instructorModules := instructor.Group("/modules")
			{
				instructorModules.POST("", handlers.CreateModule)
				instructorModules.PUT("/:id", handlers.UpdateModule)
				instructorModules.DELETE("/:id", handlers.DeleteModule)
			}

			instructorLessons := instructor.Group("/lessons")
			{
				instructorLessons.POST("", handlers.CreateLesson)
				instructorLessons.PUT("/:id", handlers.UpdateLesson)
				instructorLessons.DELETE("/:id", handlers.DeleteLesson)
			}

			instructorQuizzes := instructor.Group("/quizzes")
			{
				instructorQuizzes.POST("", handlers.CreateQuiz)
				instructorQuizzes.PUT("/:id", handlers.UpdateQuiz)
				instructorQuizzes.POST("/:id/questions", handlers.AddQuizQuestion)
				instructorQuizzes.DELETE("/:id", handlers.DeleteQuiz)
			}
		}

		protected.POST("/coupons/apply", handlers.ApplyCoupon)
		protected.DELETE("/coupons/apply", handlers.RemoveCoupon)

		protected.POST("/checkout", handlers.Checkout)
		protected.GET("/purchases", handlers.ListMyPurchases)
		protected.GET("/purchases/:id", handlers.GetPurchase)
		protected.GET("/purchases/:id/receipt-qr", handlers.GenerateReceiptQR)

		protected.GET("/enrollments", handlers.ListMyEnrollments)
	}

	admin := r.Group("/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminMiddleware())
	{
		adminCoupons := admin.Group("/coupons")
		{
			adminCoupons.POST("", handlers.CreateCoupon)
			adminCoupons.GET("", handlers.ListCoupons)
			adminCoupons.GET("/:id", handlers.GetCoupon)
			adminCoupons.PUT("/:id", handlers.UpdateCoupon)
			adminCoupons.DELETE("/:id", handlers.DeleteCoupon)
		}

		adminPurchases := admin.Group("/purchases")
		{
			adminPurchases.GET("", handlers.AdminListPurchases)
			adminPurchases.PATCH("/:id/status", handlers.ChangePurchaseStatus)
			adminPurchases.DELETE("/:id", handlers.DeletePurchase)
		}
	}
}
