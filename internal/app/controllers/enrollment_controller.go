package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/app/models/dto"
	"github.com/kaan/eduflow/internal/app/services"
	"github.com/kaan/eduflow/internal/middleware"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
)

// EnrollmentController handles enrollment and progress operations
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
	courseService     services.CourseService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService, courseService services.CourseService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		courseService:     courseService,
	}
}

// Enroll purchases a course for the authenticated student
// @Summary Enroll in a course
// @Description Purchases a course. The access expiry is fixed from the course's validity policy at purchase time.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollRequest true "Course to enroll in"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrolled successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Already enrolled; the existing enrollment is returned"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	userID, _ := middleware.SubjectID(ctx, middleware.ContextUserID)

	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx, userID, req.CourseID)
	if errors.Is(err, apperrors.ErrAlreadyEnrolled) && enrollment != nil {
		// Repeat purchase answers with the enrollment that already exists
		ctx.JSON(http.StatusConflict, dto.APIResponse{
			Data:      enrollmentResponse(enrollment),
			Timestamp: time.Now(),
		})
		return
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      enrollmentResponse(enrollment),
		Timestamp: time.Now(),
	})
}

// ListEnrollments lists the authenticated student's enrollments
// @Summary List own enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse} "Enrollments retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [get]
func (c *EnrollmentController) ListEnrollments(ctx *gin.Context) {
	userID, _ := middleware.SubjectID(ctx, middleware.ContextUserID)

	enrollments, err := c.enrollmentService.ListEnrollments(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		out = append(out, enrollmentResponse(e))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      out,
		Timestamp: time.Now(),
	})
}

// AccessCourse opens an enrolled course for learning
// @Summary Access an enrolled course
// @Description Checks validity, records the access and returns the full course content.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course content retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Enrollment expired"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/courses/{id} [get]
func (c *EnrollmentController) AccessCourse(ctx *gin.Context) {
	userID, _ := middleware.SubjectID(ctx, middleware.ContextUserID)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.enrollmentService.AccessCourse(ctx, userID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, avg, count, err := c.courseService.GetCourse(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courseResponse(course, avg, count),
		Timestamp: time.Now(),
	})
}

// CompleteLesson marks a lesson as completed
// @Summary Complete a lesson
// @Description Records lesson completion. Completing every lesson finishes the course and issues a certificate.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Param request body dto.CompleteLessonRequest true "Lesson to complete"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Lesson completed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Enrollment expired"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/courses/{id}/lessons [post]
func (c *EnrollmentController) CompleteLesson(ctx *gin.Context) {
	userID, _ := middleware.SubjectID(ctx, middleware.ContextUserID)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CompleteLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid lesson data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.CompleteLesson(ctx, userID, courseID, req.LessonID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      enrollmentResponse(enrollment),
		Timestamp: time.Now(),
	})
}

// UncompleteLesson unmarks a completed lesson
// @Summary Unmark a completed lesson
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Param request body dto.CompleteLessonRequest true "Lesson to unmark"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Lesson unmarked"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Enrollment expired"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/courses/{id}/lessons [delete]
func (c *EnrollmentController) UncompleteLesson(ctx *gin.Context) {
	userID, _ := middleware.SubjectID(ctx, middleware.ContextUserID)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CompleteLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid lesson data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.UncompleteLesson(ctx, userID, courseID, req.LessonID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      enrollmentResponse(enrollment),
		Timestamp: time.Now(),
	})
}

// GetCertificates lists the student's completed-course certificates
// @Summary List own certificates
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.CertificateRecord} "Certificates retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /certificates [get]
func (c *EnrollmentController) GetCertificates(ctx *gin.Context) {
	userID, _ := middleware.SubjectID(ctx, middleware.ContextUserID)

	records, err := c.enrollmentService.ListCertificates(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if records == nil {
		records = []models.CertificateRecord{}
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      records,
		Timestamp: time.Now(),
	})
}

// GetProgress returns the student's progress in a course
// @Summary Get course progress
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.ProgressResponse} "Progress retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/courses/{id}/progress [get]
func (c *EnrollmentController) GetProgress(ctx *gin.Context) {
	userID, _ := middleware.SubjectID(ctx, middleware.ContextUserID)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	enrollment, total, err := c.enrollmentService.GetProgress(ctx, userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	completedIDs := make([]int64, 0, len(enrollment.CompletedLessons))
	for _, cl := range enrollment.CompletedLessons {
		completedIDs = append(completedIDs, cl.LessonID)
	}

	var percentage float64
	if total > 0 {
		percentage = float64(len(completedIDs)) / float64(total) * 100
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.ProgressResponse{
			EnrollmentID:     enrollment.ID,
			CourseID:         enrollment.CourseID,
			TotalLessons:     total,
			CompletedLessons: completedIDs,
			Percentage:       percentage,
			CompletedAt:      enrollment.CompletedAt,
			Certificate:      enrollment.Certificate,
		},
		Timestamp: time.Now(),
	})
}

// ListCourseEnrollments lists enrollments across the instructor's courses
// @Summary List enrollments in own courses
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse} "Enrollments retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/enrollments [get]
func (c *EnrollmentController) ListCourseEnrollments(ctx *gin.Context) {
	instructorID, _ := middleware.SubjectID(ctx, middleware.ContextInstructorID)

	enrollments, err := c.enrollmentService.ListCourseEnrollments(ctx, instructorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		responses = append(responses, enrollmentResponse(e))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// EnrollStudent enrolls a student into one of the instructor's courses
// @Summary Enroll a student manually
// @Description Enrolls the named student into one of the caller's own courses. The expiry follows the course's validity policy, as with a purchase.
// @Tags instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollStudentRequest true "Student and course"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Student enrolled successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the course owner"
// @Failure 404 {object} dto.ErrorResponse "Course or student not found"
// @Failure 409 {object} dto.ErrorResponse "Student already enrolled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/enrollments [post]
func (c *EnrollmentController) EnrollStudent(ctx *gin.Context) {
	instructorID, _ := middleware.SubjectID(ctx, middleware.ContextInstructorID)

	var req dto.EnrollStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.EnrollStudent(ctx, instructorID, req.StudentID, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      enrollmentResponse(enrollment),
		Timestamp: time.Now(),
	})
}

// ListStudents lists every student account for the enrollment picker
// @Summary List students
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse} "Students retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/students [get]
func (c *EnrollmentController) ListStudents(ctx *gin.Context) {
	students, err := c.enrollmentService.ListStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(students))
	for _, s := range students {
		responses = append(responses, dto.UserResponse{ID: s.ID, Name: s.Name, Email: s.Email})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

func enrollmentResponse(e *models.Enrollment) dto.EnrollmentResponse {
	resp := dto.EnrollmentResponse{
		ID:           e.ID,
		CourseID:     e.CourseID,
		PurchasedAt:  e.PurchasedAt,
		ExpiresAt:    e.ExpiresAt,
		CompletedAt:  e.CompletedAt,
		RecentAccess: e.RecentAccess,
		Certificate:  e.Certificate,
		IsExpired:    e.IsExpired,
	}
	if e.Course != nil {
		summary := courseSummary(e.Course)
		resp.Course = &summary
	}
	if e.Student != nil {
		resp.StudentID = e.Student.ID
		resp.StudentName = e.Student.Name
	}
	return resp
}
