package services

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/kaan/eduflow/internal/app/coursetree"
	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/app/models/dto"
	"github.com/kaan/eduflow/internal/app/repositories"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
	"github.com/kaan/eduflow/internal/pkg/cache"
	"github.com/kaan/eduflow/internal/pkg/filestorage"
	"github.com/kaan/eduflow/internal/pkg/logger"
)

const (
	topCoursesCacheKey = "courses:top"
	topCoursesCacheTTL = 10 * time.Minute
)

// CourseService defines the interface for course management operations
type CourseService interface {
	CreateCourse(ctx context.Context, instructorID int64, form *dto.CourseForm, files *multipart.Form) (*models.Course, error)
	UpdateCourse(ctx context.Context, instructorID, courseID int64, form *dto.CourseForm, files *multipart.Form) (*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, float64, int, error)
	ListCourses(ctx context.Context, category string) ([]*models.Course, error)
	ListInstructorCourses(ctx context.Context, instructorID int64) ([]*models.Course, error)
	DeleteCourse(ctx context.Context, instructorID, courseID int64) error
	ToggleVisibility(ctx context.Context, instructorID, courseID int64) (models.Visibility, error)
	GetTopCourses(ctx context.Context, limit int) ([]*models.Course, []repositories.TopCourse, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo     *repositories.CourseRepository
	treeRepo       *repositories.CourseTreeRepository
	instructorRepo *repositories.InstructorRepository
	reviewRepo     *repositories.ReviewRepository
	storage        filestorage.FileStorage
	cache          *cache.Cache
	bounds         coursetree.Bounds
	maxUploadBytes int64
}

// NewCourseService creates a new course service instance
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	treeRepo *repositories.CourseTreeRepository,
	instructorRepo *repositories.InstructorRepository,
	reviewRepo *repositories.ReviewRepository,
	storage filestorage.FileStorage,
	cacheClient *cache.Cache,
	bounds coursetree.Bounds,
	maxUploadBytes int64,
) CourseService {
	return &courseServiceImpl{
		courseRepo:     courseRepo,
		treeRepo:       treeRepo,
		instructorRepo: instructorRepo,
		reviewRepo:     reviewRepo,
		storage:        storage,
		cache:          cacheClient,
		bounds:         bounds,
		maxUploadBytes: maxUploadBytes,
	}
}

// CreateCourse creates a course with its full chapter tree from a multipart
// submission. Media files are matched to tree positions through their field
// names.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, instructorID int64, form *dto.CourseForm, files *multipart.Form) (*models.Course, error) {
	exists, err := s.instructorRepo.Exists(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrInstructorNotFound
	}

	course, err := s.courseFromForm(form)
	if err != nil {
		return nil, err
	}
	course.InstructorID = instructorID

	chapters, err := coursetree.ParseChaptersData(form.ChaptersData)
	if err != nil {
		return nil, err
	}
	documents, err := coursetree.ParseDocumentsData(form.DocumentsData)
	if err != nil {
		return nil, err
	}

	uploads, err := s.storeUploads(files)
	if err != nil {
		return nil, err
	}

	if cover := uploads.Field(coursetree.FieldThumbnail); cover != nil {
		course.Thumbnail = &cover.Path
	}
	if preview := uploads.Field(coursetree.FieldVideoPreview); preview != nil {
		course.VideoPreview = &preview.Path
		course.PreviewVideoSize = &preview.Size
	}

	id, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, err
	}
	course.ID = id

	builder := coursetree.NewBuilder(s.treeRepo, s.bounds)
	if err := builder.Build(ctx, id, chapters, documents, uploads); err != nil {
		return nil, fmt.Errorf("error building course tree: %w", err)
	}

	logger.Info().Int64("courseID", id).Int64("instructorID", instructorID).Msg("Course created")
	return s.loadCourse(ctx, id)
}

// UpdateCourse updates a course's scalar fields and reconciles its chapter
// tree against the submitted description.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, instructorID, courseID int64, form *dto.CourseForm, files *multipart.Form) (*models.Course, error) {
	existing, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if existing.InstructorID != instructorID {
		return nil, apperrors.ErrPermissionDenied
	}

	course, err := s.courseFromForm(form)
	if err != nil {
		return nil, err
	}
	course.ID = courseID
	course.InstructorID = instructorID

	chapters, err := coursetree.ParseChaptersData(form.ChaptersData)
	if err != nil {
		return nil, err
	}

	uploads, err := s.storeUploads(files)
	if err != nil {
		return nil, err
	}

	if cover := uploads.Field(coursetree.FieldThumbnail); cover != nil {
		course.Thumbnail = &cover.Path
	}
	if preview := uploads.Field(coursetree.FieldVideoPreview); preview != nil {
		course.VideoPreview = &preview.Path
		course.PreviewVideoSize = &preview.Size
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	current, err := s.treeRepo.GetChaptersByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	plan := coursetree.PlanReconcile(current, chapters, uploads.LessonVideos)
	reconciler := coursetree.NewReconciler(s.treeRepo)
	if err := reconciler.Apply(ctx, courseID, plan); err != nil {
		return nil, fmt.Errorf("error reconciling course tree: %w", err)
	}

	logger.Info().Int64("courseID", courseID).Msg("Course updated")
	return s.loadCourse(ctx, courseID)
}

// GetCourse retrieves a course with its chapter tree and review aggregate
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, float64, int, error) {
	course, err := s.loadCourse(ctx, id)
	if err != nil {
		return nil, 0, 0, err
	}

	avg, count, err := s.reviewRepo.GetCourseRating(ctx, id)
	if err != nil {
		return nil, 0, 0, err
	}

	return course, avg, count, nil
}

// ListCourses lists public courses, optionally filtered by category
func (s *courseServiceImpl) ListCourses(ctx context.Context, category string) ([]*models.Course, error) {
	return s.courseRepo.GetAllVisible(ctx, category)
}

// ListInstructorCourses lists all courses owned by an instructor
func (s *courseServiceImpl) ListInstructorCourses(ctx context.Context, instructorID int64) ([]*models.Course, error) {
	return s.courseRepo.GetByInstructor(ctx, instructorID)
}

// DeleteCourse removes a course owned by the instructor
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, instructorID, courseID int64) error {
	if err := s.courseRepo.Delete(ctx, courseID, instructorID); err != nil {
		return err
	}

	if err := s.cache.Delete(topCoursesCacheKey); err != nil {
		logger.Warn().Err(err).Msg("Top courses cache invalidation failed")
	}
	logger.Info().Int64("courseID", courseID).Msg("Course deleted")
	return nil
}

// ToggleVisibility flips a course between public and private listing.
func (s *courseServiceImpl) ToggleVisibility(ctx context.Context, instructorID, courseID int64) (models.Visibility, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return "", err
	}
	if course.InstructorID != instructorID {
		return "", apperrors.ErrPermissionDenied
	}

	next := models.VisibilityPublic
	if course.Visibility == models.VisibilityPublic {
		next = models.VisibilityPrivate
	}
	if err := s.courseRepo.SetVisibility(ctx, courseID, next); err != nil {
		return "", err
	}
	return next, nil
}

// GetTopCourses returns the highest rated public courses. The aggregate is
// cached; review writes invalidate it. When nothing is reviewed yet the
// newest public courses stand in, unrated and uncached.
func (s *courseServiceImpl) GetTopCourses(ctx context.Context, limit int) ([]*models.Course, []repositories.TopCourse, error) {
	var top []repositories.TopCourse
	if err := s.cache.Get(topCoursesCacheKey, &top); err != nil {
		top, err = s.reviewRepo.GetTopCourses(ctx, limit)
		if err != nil {
			return nil, nil, err
		}
		if len(top) == 0 {
			return s.newestPublicCourses(ctx, limit)
		}
		if err := s.cache.Set(topCoursesCacheKey, top, topCoursesCacheTTL); err != nil {
			logger.Warn().Err(err).Msg("Top courses cache write failed")
		}
	}

	ids := make([]int64, 0, len(top))
	for _, tc := range top {
		ids = append(ids, tc.CourseID)
	}

	courses, err := s.courseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	// Preserve rating order
	byID := make(map[int64]*models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	ordered := make([]*models.Course, 0, len(top))
	kept := make([]repositories.TopCourse, 0, len(top))
	for _, tc := range top {
		if c, ok := byID[tc.CourseID]; ok {
			ordered = append(ordered, c)
			kept = append(kept, tc)
		}
	}

	return ordered, kept, nil
}

// newestPublicCourses is the unrated fallback for an empty review table.
func (s *courseServiceImpl) newestPublicCourses(ctx context.Context, limit int) ([]*models.Course, []repositories.TopCourse, error) {
	courses, err := s.courseRepo.GetAllVisible(ctx, "")
	if err != nil {
		return nil, nil, err
	}
	if len(courses) > limit {
		courses = courses[:limit]
	}
	ratings := make([]repositories.TopCourse, len(courses))
	for i, c := range courses {
		ratings[i] = repositories.TopCourse{CourseID: c.ID}
	}
	return courses, ratings, nil
}

func (s *courseServiceImpl) loadCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	chapters, err := s.treeRepo.GetChaptersByCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Chapters = chapters

	return course, nil
}

// courseFromForm validates the scalar multipart fields and maps them onto a
// course model
func (s *courseServiceImpl) courseFromForm(form *dto.CourseForm) (*models.Course, error) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}

	price, err := strconv.ParseFloat(form.Price, 64)
	if err != nil || price < 0 {
		return nil, fmt.Errorf("%w: invalid price", apperrors.ErrValidationFailed)
	}

	level := models.Level(form.Level)
	switch level {
	case models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced:
	default:
		return nil, fmt.Errorf("%w: invalid level", apperrors.ErrValidationFailed)
	}

	visibility := models.Visibility(form.Visibility)
	if form.Visibility == "" {
		visibility = models.VisibilityPublic
	} else if visibility != models.VisibilityPublic && visibility != models.VisibilityPrivate {
		return nil, fmt.Errorf("%w: invalid visibility", apperrors.ErrValidationFailed)
	}

	validity := models.ValidityPeriod{Kind: models.ValidityNone}
	if form.Validity != "" {
		if err := json.Unmarshal([]byte(form.Validity), &validity); err != nil {
			return nil, fmt.Errorf("%w: validity: %v", apperrors.ErrMalformedInput, err)
		}
		if !validity.Kind.IsValid() {
			return nil, fmt.Errorf("%w: invalid validity type", apperrors.ErrValidationFailed)
		}
	}

	requirements, err := parseStringList(form.Requirements)
	if err != nil {
		return nil, fmt.Errorf("%w: requirements: %v", apperrors.ErrMalformedInput, err)
	}
	outcomes, err := parseStringList(form.LearningOutcomes)
	if err != nil {
		return nil, fmt.Errorf("%w: learningOutcomes: %v", apperrors.ErrMalformedInput, err)
	}

	return &models.Course{
		Title:            title,
		Description:      form.Description,
		Price:            price,
		Category:         strings.TrimSpace(form.Category),
		Requirements:     requirements,
		LearningOutcomes: outcomes,
		Level:            level,
		ValidityPeriod:   validity,
		Visibility:       visibility,
	}, nil
}

// storeUploads writes every recognized multipart file part to storage and
// indexes it for tree construction. Unknown field names are ignored.
func (s *courseServiceImpl) storeUploads(files *multipart.Form) (*coursetree.Uploads, error) {
	uploads := &coursetree.Uploads{Fields: make(map[string]*filestorage.StoredFile)}
	if files == nil {
		return uploads, nil
	}

	for field, headers := range files.File {
		if len(headers) == 0 {
			continue
		}

		if field == coursetree.FieldLessonVideos {
			for _, header := range headers {
				stored, err := s.storeOne(header, "videos")
				if err != nil {
					return nil, err
				}
				uploads.LessonVideos = append(uploads.LessonVideos, stored)
			}
			continue
		}

		subdir, ok := uploadSubdir(field)
		if !ok {
			continue
		}

		stored, err := s.storeOne(headers[0], subdir)
		if err != nil {
			return nil, err
		}
		uploads.Fields[field] = stored
	}

	return uploads, nil
}

func (s *courseServiceImpl) storeOne(header *multipart.FileHeader, subdir string) (*filestorage.StoredFile, error) {
	if s.maxUploadBytes > 0 && header.Size > s.maxUploadBytes {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUploadTooLarge, header.Filename)
	}

	stored, err := s.storage.SaveFileWithPath(header, subdir)
	if err != nil {
		return nil, fmt.Errorf("error saving upload %s: %w", header.Filename, err)
	}
	return stored, nil
}

func uploadSubdir(field string) (string, bool) {
	switch field {
	case coursetree.FieldThumbnail:
		return "thumbnails", true
	case coursetree.FieldVideoPreview:
		return "previews", true
	}

	kind, _, _, _, ok := coursetree.ParseMediaField(field)
	if !ok {
		return "", false
	}
	if kind == coursetree.MediaVideo {
		return "videos", true
	}
	return "documents", true
}

func parseStringList(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	return list, nil
}
