package controllers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/app/models/dto"
	"github.com/kaan/eduflow/internal/app/repositories"
	"github.com/kaan/eduflow/internal/middleware"
)

type courseServiceStub struct {
	createCalls int
}

func (s *courseServiceStub) CreateCourse(_ context.Context, _ int64, _ *dto.CourseForm, _ *multipart.Form) (*models.Course, error) {
	s.createCalls++
	return &models.Course{ID: 1, Title: "Stub"}, nil
}

func (s *courseServiceStub) UpdateCourse(_ context.Context, _, _ int64, _ *dto.CourseForm, _ *multipart.Form) (*models.Course, error) {
	return nil, nil
}

func (s *courseServiceStub) GetCourse(_ context.Context, _ int64) (*models.Course, float64, int, error) {
	return nil, 0, 0, nil
}

func (s *courseServiceStub) ListCourses(_ context.Context, _ string) ([]*models.Course, error) {
	return nil, nil
}

func (s *courseServiceStub) ListInstructorCourses(_ context.Context, _ int64) ([]*models.Course, error) {
	return nil, nil
}

func (s *courseServiceStub) DeleteCourse(_ context.Context, _, _ int64) error {
	return nil
}

func (s *courseServiceStub) ToggleVisibility(_ context.Context, _, _ int64) (models.Visibility, error) {
	return models.VisibilityPublic, nil
}

func (s *courseServiceStub) GetTopCourses(_ context.Context, _ int) ([]*models.Course, []repositories.TopCourse, error) {
	return nil, nil, nil
}

func courseFormBody(t *testing.T, filler string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fields := map[string]string{
		"title":        "Go from scratch",
		"description":  "Basics",
		"price":        "10",
		"category":     "programming",
		"level":        "beginner",
		"chaptersData": `[{"title":"Intro","lessons":[]}]`,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	if filler != "" {
		part, err := writer.CreateFormFile("video_0_0_0", "big.mp4")
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write([]byte(filler)); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func newCourseRouter(controller *CourseController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/courses", func(ctx *gin.Context) {
		ctx.Set(middleware.ContextInstructorID, int64(1))
		controller.CreateCourse(ctx)
	})
	return router
}

func TestCreateCourseRequestCeiling(t *testing.T) {
	service := &courseServiceStub{}
	controller := NewCourseController(service, 1024)
	router := newCourseRouter(controller)

	// The ceiling covers the whole request body, so many small parts
	// together trip it just like one large file would.
	body, contentType := courseFormBody(t, strings.Repeat("x", 4096))

	req := httptest.NewRequest(http.MethodPost, "/courses", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
	if service.createCalls != 0 {
		t.Errorf("service called %d times for an oversized request", service.createCalls)
	}
}

func TestCreateCourseUnderCeiling(t *testing.T) {
	service := &courseServiceStub{}
	controller := NewCourseController(service, 1<<20)
	router := newCourseRouter(controller)

	body, contentType := courseFormBody(t, "tiny")

	req := httptest.NewRequest(http.MethodPost, "/courses", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if service.createCalls != 1 {
		t.Errorf("service called %d times, want 1", service.createCalls)
	}
}
