package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/app/models/dto"
	"github.com/kaan/eduflow/internal/app/services"
	"github.com/kaan/eduflow/internal/pkg/auth"
)

// Context keys set by the auth middleware.
const (
	ContextUserID       = "userID"
	ContextInstructorID = "instructorID"
)

// AuthMiddleware resolves opaque bearer tokens into authenticated subjects
type AuthMiddleware struct {
	authService services.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// StudentAuth requires a valid student session
func (m *AuthMiddleware) StudentAuth() gin.HandlerFunc {
	return m.requireScope(models.ScopeStudent, ContextUserID)
}

// InstructorAuth requires a valid instructor session
func (m *AuthMiddleware) InstructorAuth() gin.HandlerFunc {
	return m.requireScope(models.ScopeInstructor, ContextInstructorID)
}

func (m *AuthMiddleware) requireScope(scope models.SessionScope, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		token, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		session, err := m.authService.ResolveSession(c.Request.Context(), token, scope)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(contextKey, session.SubjectID)
		c.Next()
	}
}

// SubjectID reads the authenticated subject set by the middleware
func SubjectID(c *gin.Context, contextKey string) (int64, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
