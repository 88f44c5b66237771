package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
)

type faqStoreFake struct {
	nextID int64
	faqs   []*models.FAQ
}

func (f *faqStoreFake) GetActive(_ context.Context) ([]*models.FAQ, error) {
	var out []*models.FAQ
	for _, faq := range f.faqs {
		if faq.IsActive {
			out = append(out, faq)
		}
	}
	return out, nil
}

func (f *faqStoreFake) Create(_ context.Context, faq *models.FAQ) (int64, error) {
	for _, existing := range f.faqs {
		if existing.Question == faq.Question {
			return 0, apperrors.ErrFAQAlreadyExists
		}
	}
	f.nextID++
	stored := *faq
	stored.ID = f.nextID
	f.faqs = append(f.faqs, &stored)
	return stored.ID, nil
}

func (f *faqStoreFake) Delete(_ context.Context, id int64) error {
	for i, faq := range f.faqs {
		if faq.ID == id {
			f.faqs = append(f.faqs[:i], f.faqs[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrFAQNotFound
}

func TestCreateFAQDefaultsToActive(t *testing.T) {
	svc := &faqServiceImpl{faqRepo: &faqStoreFake{}}

	faq, err := svc.CreateFAQ(context.Background(), "How do refunds work?", "They don't.", nil, 0)
	if err != nil {
		t.Fatalf("CreateFAQ: %v", err)
	}
	if !faq.IsActive {
		t.Error("entry not active by default")
	}

	inactive := false
	faq, err = svc.CreateFAQ(context.Background(), "Hidden question", "Hidden answer", &inactive, 3)
	if err != nil {
		t.Fatalf("CreateFAQ: %v", err)
	}
	if faq.IsActive {
		t.Error("explicitly inactive entry stored as active")
	}
	if faq.Order != 3 {
		t.Errorf("order = %d, want 3", faq.Order)
	}
}

func TestCreateFAQRejectsDuplicateQuestion(t *testing.T) {
	svc := &faqServiceImpl{faqRepo: &faqStoreFake{}}

	if _, err := svc.CreateFAQ(context.Background(), "Is there a certificate?", "Yes.", nil, 0); err != nil {
		t.Fatalf("CreateFAQ: %v", err)
	}
	if _, err := svc.CreateFAQ(context.Background(), "Is there a certificate?", "Still yes.", nil, 1); !errors.Is(err, apperrors.ErrFAQAlreadyExists) {
		t.Fatalf("error = %v, want ErrFAQAlreadyExists", err)
	}
}

func TestListFAQsSkipsInactive(t *testing.T) {
	store := &faqStoreFake{}
	svc := &faqServiceImpl{faqRepo: store}

	inactive := false
	if _, err := svc.CreateFAQ(context.Background(), "Visible", "Yes", nil, 0); err != nil {
		t.Fatalf("CreateFAQ: %v", err)
	}
	if _, err := svc.CreateFAQ(context.Background(), "Hidden", "No", &inactive, 1); err != nil {
		t.Fatalf("CreateFAQ: %v", err)
	}

	faqs, err := svc.ListFAQs(context.Background())
	if err != nil {
		t.Fatalf("ListFAQs: %v", err)
	}
	if len(faqs) != 1 || faqs[0].Question != "Visible" {
		t.Errorf("active entries = %+v, want only the visible one", faqs)
	}
}
