package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/app/models/dto"
	"github.com/kaan/eduflow/internal/app/services"
	"github.com/kaan/eduflow/internal/middleware"
)

// ReviewController handles course review operations
type ReviewController struct {
	reviewService services.ReviewService
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService services.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

// CreateReview submits a review for a course
// @Summary Review a course
// @Description Submits a star rating with an optional comment. One review per student per course.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Param request body dto.CreateReviewRequest true "Review content"
// @Success 201 {object} dto.APIResponse{data=dto.ReviewResponse} "Review created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Course already reviewed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/reviews [post]
func (c *ReviewController) CreateReview(ctx *gin.Context) {
	userID, _ := middleware.SubjectID(ctx, middleware.ContextUserID)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid review data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	review, err := c.reviewService.CreateReview(ctx, userID, courseID, req.Stars, req.Comment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      reviewResponse(review),
		Timestamp: time.Now(),
	})
}

// GetCourseReviews lists a course's reviews
// @Summary List course reviews
// @Tags reviews
// @Produce json
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.CourseReviewsResponse} "Reviews retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/reviews [get]
func (c *ReviewController) GetCourseReviews(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	reviews, avg, count, err := c.reviewService.GetCourseReviews(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := dto.CourseReviewsResponse{
		AvgStars:    avg,
		ReviewCount: count,
		Reviews:     make([]dto.ReviewResponse, 0, len(reviews)),
	}
	for _, r := range reviews {
		out.Reviews = append(out.Reviews, reviewResponse(r))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      out,
		Timestamp: time.Now(),
	})
}

func reviewResponse(r *models.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        r.ID,
		CourseID:  r.CourseID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Stars:     r.Stars,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
