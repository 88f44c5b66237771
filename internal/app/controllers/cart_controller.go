package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaan/eduflow/internal/app/models/dto"
	"github.com/kaan/eduflow/internal/app/services"
	"github.com/kaan/eduflow/internal/middleware"
)

// CartController handles shopping cart operations
type CartController struct {
	cartService services.CartService
}

// NewCartController creates a new CartController
func NewCartController(cartService services.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

// AddToCart places a course in the student's cart
// @Summary Add a course to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddToCartRequest true "Course to add"
// @Success 201 {object} dto.APIResponse{data=dto.SuccessResponse} "Course added to cart"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Already in cart or already enrolled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cart [post]
func (c *CartController) AddToCart(ctx *gin.Context) {
	userID, _ := middleware.SubjectID(ctx, middleware.ContextUserID)

	var req dto.AddToCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid cart data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.cartService.AddToCart(ctx, userID, req.CourseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Course added to cart"},
		Timestamp: time.Now(),
	})
}

// GetCart lists the student's cart
// @Summary Get own cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CartResponse} "Cart retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cart [get]
func (c *CartController) GetCart(ctx *gin.Context) {
	userID, _ := middleware.SubjectID(ctx, middleware.ContextUserID)

	items, total, err := c.cartService.GetCart(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := dto.CartResponse{
		Items: make([]dto.CartItemResponse, 0, len(items)),
		Total: total,
	}
	for _, item := range items {
		itemResp := dto.CartItemResponse{ID: item.ID, AddedAt: item.AddedAt}
		if item.Course != nil {
			summary := courseSummary(item.Course)
			itemResp.Course = &summary
		}
		out.Items = append(out.Items, itemResp)
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      out,
		Timestamp: time.Now(),
	})
}

// RemoveFromCart takes a course out of the cart
// @Summary Remove a course from the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course removed from cart"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course not in cart"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cart/{courseId} [delete]
func (c *CartController) RemoveFromCart(ctx *gin.Context) {
	userID, _ := middleware.SubjectID(ctx, middleware.ContextUserID)

	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		return
	}

	if err := c.cartService.RemoveFromCart(ctx, userID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Course removed from cart"},
		Timestamp: time.Now(),
	})
}

// ClearCart empties the cart
// @Summary Clear the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Cart cleared"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cart [delete]
func (c *CartController) ClearCart(ctx *gin.Context) {
	userID, _ := middleware.SubjectID(ctx, middleware.ContextUserID)

	if err := c.cartService.ClearCart(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Cart cleared"},
		Timestamp: time.Now(),
	})
}
