package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/app/models/dto"
	"github.com/kaan/eduflow/internal/app/services"
	"github.com/kaan/eduflow/internal/middleware"
	"github.com/kaan/eduflow/internal/pkg/auth"
	"github.com/kaan/eduflow/internal/pkg/logger"
)

// AuthController handles student authentication operations
type AuthController struct {
	authService       services.AuthService
	enrollmentService services.EnrollmentService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, enrollmentService services.EnrollmentService) *AuthController {
	return &AuthController{
		authService:       authService,
		enrollmentService: enrollmentService,
	}
}

// Register handles student registration
// @Summary Register a student account
// @Description Creates a student account and issues a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "Account created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, session, err := c.authService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Registration coming from a course page enrolls the new account right away.
	// The account itself is kept even when that enrollment fails.
	if req.CourseID != nil {
		if _, err := c.enrollmentService.Enroll(ctx, user.ID, *req.CourseID); err != nil {
			logger.Warn().Err(err).Int64("courseId", *req.CourseID).Msg("Enrollment during registration failed")
		}
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      authResponse(user, session),
		Timestamp: time.Now(),
	})
}

// Login handles student login
// @Summary Log in as a student
// @Description Verifies credentials and issues a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Logged in successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, session, err := c.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      authResponse(user, session),
		Timestamp: time.Now(),
	})
}

// Logout revokes the current session
// @Summary Log out
// @Description Revokes the presented session token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Logged out"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	token, err := auth.ExtractBearerToken(ctx.GetHeader("Authorization"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid authorization header")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.Logout(ctx, token); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Logged out"},
		Timestamp: time.Now(),
	})
}

// GetProfile returns the authenticated student's profile
// @Summary Get own profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	userID, _ := middleware.SubjectID(ctx, middleware.ContextUserID)

	user, err := c.authService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email},
		Timestamp: time.Now(),
	})
}

// UpdateProfile updates the authenticated student's profile
// @Summary Update own profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile data"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/profile [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	userID, _ := middleware.SubjectID(ctx, middleware.ContextUserID)

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profile data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.UpdateProfile(ctx, userID, req.Name, req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Profile updated"},
		Timestamp: time.Now(),
	})
}

func authResponse(user *models.User, session *models.Session) dto.AuthResponse {
	return dto.AuthResponse{
		Session: dto.SessionResponse{
			Token:     session.Token,
			TokenType: "Bearer",
			ExpiresAt: session.ExpiresAt,
		},
		User: dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email},
	}
}
