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

// InstructorController handles instructor account operations
type InstructorController struct {
	instructorService services.InstructorService
}

// NewInstructorController creates a new InstructorController
func NewInstructorController(instructorService services.InstructorService) *InstructorController {
	return &InstructorController{
		instructorService: instructorService,
	}
}

// Register handles instructor registration
// @Summary Register an instructor account
// @Tags instructors
// @Accept json
// @Produce json
// @Param request body dto.InstructorRegisterRequest true "Registration information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "Account created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/register [post]
func (c *InstructorController) Register(ctx *gin.Context) {
	var req dto.InstructorRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	instructor, session, err := c.instructorService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      instructorAuthResponse(instructor, session),
		Timestamp: time.Now(),
	})
}

// Login handles instructor login
// @Summary Log in as an instructor
// @Tags instructors
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Logged in successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/login [post]
func (c *InstructorController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	instructor, session, err := c.instructorService.Login(ctx, req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      instructorAuthResponse(instructor, session),
		Timestamp: time.Now(),
	})
}

// GetProfile returns the authenticated instructor's profile
// @Summary Get own instructor profile
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.InstructorResponse} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/profile [get]
func (c *InstructorController) GetProfile(ctx *gin.Context) {
	instructorID, _ := middleware.SubjectID(ctx, middleware.ContextInstructorID)

	instructor, err := c.instructorService.GetProfile(ctx, instructorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      instructorResponse(instructor),
		Timestamp: time.Now(),
	})
}

// UpdateProfile updates the instructor's name, bio and profile picture
// @Summary Update own instructor profile
// @Tags instructors
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Display name"
// @Param bio formData string false "Biography"
// @Param profilePicture formData file false "Profile picture"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/profile [put]
func (c *InstructorController) UpdateProfile(ctx *gin.Context) {
	instructorID, _ := middleware.SubjectID(ctx, middleware.ContextInstructorID)

	var req dto.UpdateInstructorProfileRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profile data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	picture, err := ctx.FormFile("profilePicture")
	if err != nil {
		picture = nil
	}

	if err := c.instructorService.UpdateProfile(ctx, instructorID, req.Name, req.Bio, picture); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Profile updated"},
		Timestamp: time.Now(),
	})
}

// ListInstructors returns every instructor's public profile
// @Summary List instructors
// @Tags instructors
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.InstructorResponse} "Instructors retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors [get]
func (c *InstructorController) ListInstructors(ctx *gin.Context) {
	instructors, err := c.instructorService.ListInstructors(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.InstructorResponse, 0, len(instructors))
	for _, instructor := range instructors {
		responses = append(responses, instructorResponse(instructor))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

func instructorResponse(instructor *models.Instructor) dto.InstructorResponse {
	return dto.InstructorResponse{
		ID:             instructor.ID,
		Name:           instructor.Name,
		Email:          instructor.Email,
		ProfilePicture: instructor.ProfilePicture,
		Bio:            instructor.Bio,
		CourseIDs:      instructor.CourseIDs,
	}
}

func instructorAuthResponse(instructor *models.Instructor, session *models.Session) dto.AuthResponse {
	return dto.AuthResponse{
		Session: dto.SessionResponse{
			Token:     session.Token,
			TokenType: "Bearer",
			ExpiresAt: session.ExpiresAt,
		},
		User: instructorResponse(instructor),
	}
}
