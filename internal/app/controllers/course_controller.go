package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/app/models/dto"
	"github.com/kaan/eduflow/internal/app/repositories"
	"github.com/kaan/eduflow/internal/app/services"
	"github.com/kaan/eduflow/internal/middleware"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
)

const defaultTopCoursesLimit = 10

// CourseController handles course management operations
type CourseController struct {
	courseService  services.CourseService
	maxUploadBytes int64
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, maxUploadBytes int64) *CourseController {
	return &CourseController{
		courseService:  courseService,
		maxUploadBytes: maxUploadBytes,
	}
}

// CreateCourse handles course creation from a multipart submission
// @Summary Create a course
// @Description Creates a course with its chapter tree. Chapter structure arrives as JSON in the chaptersData field; media files arrive under positional field names.
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Course title"
// @Param description formData string true "Course description"
// @Param price formData string true "Price"
// @Param category formData string true "Category"
// @Param level formData string true "Difficulty level" Enums(beginner,intermediate,advanced)
// @Param chaptersData formData string true "Chapter tree as JSON"
// @Param documentsData formData string false "Per-lesson document metadata as JSON"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid or malformed request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Failure 413 {object} dto.ErrorResponse "Request body exceeds the upload ceiling"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	instructorID, _ := middleware.SubjectID(ctx, middleware.ContextInstructorID)

	form, files, ok := c.bindCourseForm(ctx)
	if !ok {
		return
	}

	course, err := c.courseService.CreateCourse(ctx, instructorID, form, files)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      courseResponse(course, 0, 0),
		Timestamp: time.Now(),
	})
}

// UpdateCourse handles course updates including tree reconciliation
// @Summary Update a course
// @Description Updates course fields and reconciles the chapter tree against the submitted description. Omitted chapters and lessons are deleted.
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Param title formData string true "Course title"
// @Param chaptersData formData string true "Chapter tree as JSON"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid or malformed request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the course owner"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 413 {object} dto.ErrorResponse "Request body exceeds the upload ceiling"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	instructorID, _ := middleware.SubjectID(ctx, middleware.ContextInstructorID)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	form, files, ok := c.bindCourseForm(ctx)
	if !ok {
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, instructorID, courseID, form, files)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courseResponse(course, 0, 0),
		Timestamp: time.Now(),
	})
}

// GetCourse retrieves one course with its chapter tree
// @Summary Get course details
// @Tags courses
// @Produce json
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
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

// ListCourses lists public courses
// @Summary List courses
// @Tags courses
// @Produce json
// @Param category query string false "Filter by category"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseSummaryResponse} "Courses retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx, ctx.Query("category"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courseSummaries(courses),
		Timestamp: time.Now(),
	})
}

// GetTopCourses lists the highest rated courses
// @Summary List top rated courses
// @Tags courses
// @Produce json
// @Param limit query int false "Maximum results" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.TopCourseResponse} "Top courses retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/top [get]
func (c *CourseController) GetTopCourses(ctx *gin.Context) {
	limit := defaultTopCoursesLimit
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	courses, ratings, err := c.courseService.GetTopCourses(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      topCourseResponses(courses, ratings),
		Timestamp: time.Now(),
	})
}

// ListMyCourses lists the authenticated instructor's courses
// @Summary List own courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseSummaryResponse} "Courses retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/courses [get]
func (c *CourseController) ListMyCourses(ctx *gin.Context) {
	instructorID, _ := middleware.SubjectID(ctx, middleware.ContextInstructorID)

	courses, err := c.courseService.ListInstructorCourses(ctx, instructorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courseSummaries(courses),
		Timestamp: time.Now(),
	})
}

// DeleteCourse removes a course owned by the instructor
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	instructorID, _ := middleware.SubjectID(ctx, middleware.ContextInstructorID)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx, instructorID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Course deleted"},
		Timestamp: time.Now(),
	})
}

// ToggleVisibility flips a course between public and private listing
// @Summary Toggle course visibility
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.VisibilityResponse} "Updated visibility"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the course owner"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/visibility [patch]
func (c *CourseController) ToggleVisibility(ctx *gin.Context) {
	instructorID, _ := middleware.SubjectID(ctx, middleware.ContextInstructorID)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	visibility, err := c.courseService.ToggleVisibility(ctx, instructorID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.VisibilityResponse{Visibility: visibility},
		Timestamp: time.Now(),
	})
}

// bindCourseForm parses a course multipart submission. The whole request
// body is capped at maxUploadBytes before parsing, so the ceiling covers
// every file in the submission together rather than each file alone.
func (c *CourseController) bindCourseForm(ctx *gin.Context) (*dto.CourseForm, *multipart.Form, bool) {
	if c.maxUploadBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadBytes)
	}

	var form dto.CourseForm
	if err := ctx.ShouldBind(&form); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			middleware.HandleAPIError(ctx, apperrors.ErrUploadTooLarge)
			return nil, nil, false
		}
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, nil, false
	}

	files, err := ctx.MultipartForm()
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeMalformedInput, "Invalid multipart form")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, nil, false
	}

	return &form, files, true
}

func courseResponse(course *models.Course, avg float64, count int) dto.CourseResponse {
	resp := dto.CourseResponse{
		ID:               course.ID,
		Title:            course.Title,
		Description:      course.Description,
		Price:            course.Price,
		Category:         course.Category,
		Requirements:     course.Requirements,
		LearningOutcomes: course.LearningOutcomes,
		Thumbnail:        course.Thumbnail,
		VideoPreview:     course.VideoPreview,
		InstructorID:     course.InstructorID,
		InstructorName:   course.InstructorName,
		Level:            course.Level,
		Validity:         dto.ValidityResponse{Type: course.ValidityPeriod.Kind, Duration: course.ValidityPeriod.Duration},
		Visibility:       course.Visibility,
		AvgStars:         avg,
		ReviewCount:      count,
		CreatedAt:        course.CreatedAt,
	}

	for _, ch := range course.Chapters {
		chResp := dto.ChapterResponse{ID: ch.ID, Title: ch.Title}
		for _, l := range ch.Lessons {
			lResp := dto.LessonResponse{ID: l.ID, Title: l.Title, Content: l.Content}
			for _, v := range l.Videos {
				lResp.Videos = append(lResp.Videos, dto.VideoResponse{Title: v.Title, URL: v.URL, Duration: v.Duration, Size: v.Size})
			}
			for _, d := range l.Documents {
				lResp.Documents = append(lResp.Documents, dto.DocumentResponse{Title: d.Title, URL: d.URL, FileType: d.FileType, Size: d.Size})
			}
			chResp.Lessons = append(chResp.Lessons, lResp)
		}
		resp.Chapters = append(resp.Chapters, chResp)
	}

	return resp
}

func courseSummary(course *models.Course) dto.CourseSummaryResponse {
	return dto.CourseSummaryResponse{
		ID:             course.ID,
		Title:          course.Title,
		Description:    course.Description,
		Price:          course.Price,
		Category:       course.Category,
		Thumbnail:      course.Thumbnail,
		InstructorID:   course.InstructorID,
		InstructorName: course.InstructorName,
		Level:          course.Level,
		Validity:       dto.ValidityResponse{Type: course.ValidityPeriod.Kind, Duration: course.ValidityPeriod.Duration},
		CreatedAt:      course.CreatedAt,
	}
}

func courseSummaries(courses []*models.Course) []dto.CourseSummaryResponse {
	out := make([]dto.CourseSummaryResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, courseSummary(c))
	}
	return out
}

func topCourseResponses(courses []*models.Course, ratings []repositories.TopCourse) []dto.TopCourseResponse {
	out := make([]dto.TopCourseResponse, 0, len(courses))
	for i, c := range courses {
		out = append(out, dto.TopCourseResponse{
			Course:      courseSummary(c),
			AvgStars:    ratings[i].AvgStars,
			ReviewCount: ratings[i].ReviewCount,
		})
	}
	return out
}

func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails("ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
