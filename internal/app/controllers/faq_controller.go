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

// FAQController handles help page entries
type FAQController struct {
	faqService services.FAQService
}

// NewFAQController creates a new FAQController
func NewFAQController(faqService services.FAQService) *FAQController {
	return &FAQController{
		faqService: faqService,
	}
}

// ListFAQs lists the active help page entries
// @Summary List FAQs
// @Tags faqs
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.FAQResponse} "FAQs retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faqs [get]
func (c *FAQController) ListFAQs(ctx *gin.Context) {
	faqs, err := c.faqService.ListFAQs(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.FAQResponse, 0, len(faqs))
	for _, f := range faqs {
		responses = append(responses, faqResponse(f))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// CreateFAQ adds a help page entry
// @Summary Create a FAQ
// @Tags faqs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFAQRequest true "Question and answer"
// @Success 201 {object} dto.APIResponse{data=dto.FAQResponse} "FAQ created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Question already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faqs [post]
func (c *FAQController) CreateFAQ(ctx *gin.Context) {
	var req dto.CreateFAQRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Question and answer are required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	faq, err := c.faqService.CreateFAQ(ctx, req.Question, req.Answer, req.IsActive, req.Order)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      faqResponse(faq),
		Timestamp: time.Now(),
	})
}

// DeleteFAQ removes a help page entry
// @Summary Delete a FAQ
// @Tags faqs
// @Produce json
// @Security BearerAuth
// @Param id path int true "FAQ ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "FAQ deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "FAQ not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faqs/{id} [delete]
func (c *FAQController) DeleteFAQ(ctx *gin.Context) {
	faqID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.faqService.DeleteFAQ(ctx, faqID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "FAQ deleted successfully"},
		Timestamp: time.Now(),
	})
}

func faqResponse(f *models.FAQ) dto.FAQResponse {
	return dto.FAQResponse{
		ID:        f.ID,
		Question:  f.Question,
		Answer:    f.Answer,
		IsActive:  f.IsActive,
		Order:     f.Order,
		CreatedAt: f.CreatedAt,
	}
}
