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

// NotificationController handles instructor announcements
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

// CreateNotification publishes an announcement
// @Summary Create a notification
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateNotificationRequest true "Announcement content"
// @Success 201 {object} dto.APIResponse{data=dto.NotificationResponse} "Notification created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications [post]
func (c *NotificationController) CreateNotification(ctx *gin.Context) {
	instructorID, _ := middleware.SubjectID(ctx, middleware.ContextInstructorID)

	var req dto.CreateNotificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid notification data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	n, err := c.notificationService.CreateNotification(ctx, instructorID, req.Title, req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      notificationResponse(n),
		Timestamp: time.Now(),
	})
}

// GetStudentFeed lists recent announcements for the student
// @Summary Get notification feed
// @Description Lists announcements from the last two days published by instructors of enrolled courses.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.NotificationResponse} "Notifications retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications/feed [get]
func (c *NotificationController) GetStudentFeed(ctx *gin.Context) {
	userID, _ := middleware.SubjectID(ctx, middleware.ContextUserID)

	notifications, err := c.notificationService.GetStudentFeed(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      notificationResponses(notifications),
		Timestamp: time.Now(),
	})
}

// GetMyNotifications lists the instructor's own announcements
// @Summary List own notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.NotificationResponse} "Notifications retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications [get]
func (c *NotificationController) GetMyNotifications(ctx *gin.Context) {
	instructorID, _ := middleware.SubjectID(ctx, middleware.ContextInstructorID)

	notifications, err := c.notificationService.GetInstructorNotifications(ctx, instructorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      notificationResponses(notifications),
		Timestamp: time.Now(),
	})
}

// GetNotification returns one of the instructor's announcements
// @Summary Get a notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.NotificationResponse} "Notification retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid notification ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications/{id} [get]
func (c *NotificationController) GetNotification(ctx *gin.Context) {
	instructorID, _ := middleware.SubjectID(ctx, middleware.ContextInstructorID)

	notificationID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	notification, err := c.notificationService.GetNotification(ctx, instructorID, notificationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      notificationResponse(notification),
		Timestamp: time.Now(),
	})
}

// DeleteNotification removes an announcement
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Notification deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid notification ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications/{id} [delete]
func (c *NotificationController) DeleteNotification(ctx *gin.Context) {
	instructorID, _ := middleware.SubjectID(ctx, middleware.ContextInstructorID)

	notificationID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.DeleteNotification(ctx, instructorID, notificationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Notification deleted"},
		Timestamp: time.Now(),
	})
}

func notificationResponse(n *models.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:           n.ID,
		InstructorID: n.InstructorID,
		Title:        n.Title,
		Message:      n.Message,
		CreatedAt:    n.CreatedAt,
	}
}

func notificationResponses(notifications []*models.Notification) []dto.NotificationResponse {
	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, notificationResponse(n))
	}
	return out
}
