package services

import (
	"context"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/app/repositories"
	"github.com/kaan/eduflow/internal/pkg/logger"
)

// FAQService defines the interface for help page entry operations
type FAQService interface {
	ListFAQs(ctx context.Context) ([]*models.FAQ, error)
	CreateFAQ(ctx context.Context, question, answer string, isActive *bool, order int) (*models.FAQ, error)
	DeleteFAQ(ctx context.Context, id int64) error
}

type faqStore interface {
	GetActive(ctx context.Context) ([]*models.FAQ, error)
	Create(ctx context.Context, f *models.FAQ) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// faqServiceImpl implements the FAQService interface
type faqServiceImpl struct {
	faqRepo faqStore
}

// NewFAQService creates a new FAQ service instance
func NewFAQService(faqRepo *repositories.FAQRepository) FAQService {
	return &faqServiceImpl{faqRepo: faqRepo}
}

// ListFAQs lists the active entries in display order.
func (s *faqServiceImpl) ListFAQs(ctx context.Context) ([]*models.FAQ, error) {
	return s.faqRepo.GetActive(ctx)
}

// CreateFAQ stores a new entry. An entry is active unless the submission
// says otherwise; a repeated question is rejected.
func (s *faqServiceImpl) CreateFAQ(ctx context.Context, question, answer string, isActive *bool, order int) (*models.FAQ, error) {
	faq := &models.FAQ{
		Question: question,
		Answer:   answer,
		IsActive: isActive == nil || *isActive,
		Order:    order,
	}

	id, err := s.faqRepo.Create(ctx, faq)
	if err != nil {
		return nil, err
	}
	faq.ID = id

	logger.Info().Int64("faqID", id).Msg("FAQ created")
	return faq, nil
}

// DeleteFAQ removes an entry.
func (s *faqServiceImpl) DeleteFAQ(ctx context.Context, id int64) error {
	return s.faqRepo.Delete(ctx, id)
}
