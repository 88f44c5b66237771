package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kaan/eduflow/internal/app/controllers"
	"github.com/kaan/eduflow/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	instructorController *controllers.InstructorController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	reviewController *controllers.ReviewController,
	cartController *controllers.CartController,
	notificationController *controllers.NotificationController,
	faqController *controllers.FAQController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		// Logout resolves its own token; it works for either scope
		auth.POST("/logout", authController.Logout)
	}

	instructors := v1.Group("/instructors")
	{
		instructors.GET("", instructorController.ListInstructors)
		instructors.POST("/register", instructorController.Register)
		instructors.POST("/login", instructorController.Login)
	}

	v1.GET("/faqs", faqController.ListFAQs)

	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.GET("/top", courseController.GetTopCourses)
		courses.GET("/:id", courseController.GetCourse)
		courses.GET("/:id/reviews", reviewController.GetCourseReviews)
	}

	// --- Student routes ---
	student := v1.Group("")
	student.Use(authMiddleware.StudentAuth())
	{
		student.GET("/auth/profile", authController.GetProfile)
		student.PUT("/auth/profile", authController.UpdateProfile)

		student.POST("/enrollments", enrollmentController.Enroll)
		student.GET("/enrollments", enrollmentController.ListEnrollments)
		student.GET("/enrollments/courses/:id", enrollmentController.AccessCourse)
		student.POST("/enrollments/courses/:id/lessons", enrollmentController.CompleteLesson)
		student.DELETE("/enrollments/courses/:id/lessons", enrollmentController.UncompleteLesson)
		student.GET("/enrollments/courses/:id/progress", enrollmentController.GetProgress)

		student.GET("/certificates", enrollmentController.GetCertificates)

		student.POST("/courses/:id/reviews", reviewController.CreateReview)

		student.POST("/cart", cartController.AddToCart)
		student.GET("/cart", cartController.GetCart)
		student.DELETE("/cart", cartController.ClearCart)
		student.DELETE("/cart/:courseId", cartController.RemoveFromCart)

		student.GET("/notifications/feed", notificationController.GetStudentFeed)
	}

	// --- Instructor routes ---
	instructor := v1.Group("")
	instructor.Use(authMiddleware.InstructorAuth())
	{
		instructor.GET("/instructors/profile", instructorController.GetProfile)
		instructor.PUT("/instructors/profile", instructorController.UpdateProfile)
		instructor.GET("/instructors/courses", courseController.ListMyCourses)
		instructor.GET("/instructors/enrollments", enrollmentController.ListCourseEnrollments)
		instructor.POST("/instructors/enrollments", enrollmentController.EnrollStudent)
		instructor.GET("/instructors/students", enrollmentController.ListStudents)

		instructor.POST("/courses", courseController.CreateCourse)
		instructor.PUT("/courses/:id", courseController.UpdateCourse)
		instructor.PATCH("/courses/:id/visibility", courseController.ToggleVisibility)
		instructor.DELETE("/courses/:id", courseController.DeleteCourse)

		instructor.POST("/notifications", notificationController.CreateNotification)
		instructor.GET("/notifications", notificationController.GetMyNotifications)
		instructor.GET("/notifications/:id", notificationController.GetNotification)
		instructor.DELETE("/notifications/:id", notificationController.DeleteNotification)

		instructor.POST("/faqs", faqController.CreateFAQ)
		instructor.DELETE("/faqs/:id", faqController.DeleteFAQ)
	}
}
