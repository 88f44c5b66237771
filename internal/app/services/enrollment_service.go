package services

import (
	"context"
	"errors"
	"time"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/app/repositories"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
	"github.com/kaan/eduflow/internal/pkg/certificates"
	"github.com/kaan/eduflow/internal/pkg/logger"
	"github.com/kaan/eduflow/internal/pkg/validity"
)

// EnrollmentService defines the interface for enrollment and progress operations
type EnrollmentService interface {
	Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	ListEnrollments(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	AccessCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	CompleteLesson(ctx context.Context, studentID, courseID, lessonID int64) (*models.Enrollment, error)
	UncompleteLesson(ctx context.Context, studentID, courseID, lessonID int64) (*models.Enrollment, error)
	GetProgress(ctx context.Context, studentID, courseID int64) (*models.Enrollment, int, error)
	ListCertificates(ctx context.Context, studentID int64) ([]models.CertificateRecord, error)
	ListCourseEnrollments(ctx context.Context, instructorID int64) ([]*models.Enrollment, error)
	EnrollStudent(ctx context.Context, instructorID, studentID, courseID int64) (*models.Enrollment, error)
	ListStudents(ctx context.Context) ([]*models.User, error)
}

// Narrow persistence surfaces of the enrollment service. The repository
// structs satisfy them; tests substitute in-memory fakes.
type enrollmentStore interface {
	Create(ctx context.Context, enrollment *models.Enrollment) (int64, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	GetByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	GetByCourses(ctx context.Context, courseIDs []int64) ([]*models.Enrollment, error)
	MarkExpired(ctx context.Context, ids []int64) error
	TouchRecentAccess(ctx context.Context, id int64, at time.Time) error
	SetCompleted(ctx context.Context, id int64, at time.Time, certificate string) error
	AddCompletedLesson(ctx context.Context, enrollmentID, lessonID int64, at time.Time) error
	RemoveCompletedLesson(ctx context.Context, enrollmentID, lessonID int64) error
	GetCompletedLessons(ctx context.Context, enrollmentID int64) ([]models.CompletedLesson, error)
	CountLessons(ctx context.Context, courseID int64) (int, error)
}

type enrollmentCourseReader interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Course, error)
	GetByInstructor(ctx context.Context, instructorID int64) ([]*models.Course, error)
}

type enrollmentUserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAllBasic(ctx context.Context) ([]*models.User, error)
}

type enrollmentCartStore interface {
	Remove(ctx context.Context, userID, courseID int64) error
}

// enrollmentServiceImpl implements the EnrollmentService interface
type enrollmentServiceImpl struct {
	enrollmentRepo enrollmentStore
	courseRepo     enrollmentCourseReader
	userRepo       enrollmentUserReader
	cartRepo       enrollmentCartStore
	certGen        *certificates.Generator
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(
	enrollmentRepo *repositories.EnrollmentRepository,
	courseRepo *repositories.CourseRepository,
	userRepo *repositories.UserRepository,
	cartRepo *repositories.CartRepository,
	certGen *certificates.Generator,
) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		userRepo:       userRepo,
		cartRepo:       cartRepo,
		certGen:        certGen,
	}
}

// Enroll purchases a course for a student. The expiry is fixed from the
// course's validity policy at purchase time; later policy changes do not
// affect existing enrollments.
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	enrollment := &models.Enrollment{
		StudentID:   studentID,
		CourseID:    courseID,
		PurchasedAt: now,
		ExpiresAt:   validity.ComputeExpiry(course.ValidityPeriod, now),
	}

	id, err := s.enrollmentRepo.Create(ctx, enrollment)
	if errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		// Echo the existing enrollment so the caller can show it
		existing, getErr := s.enrollmentRepo.GetByStudentAndCourse(ctx, studentID, courseID)
		if getErr == nil {
			existing.Course = course
			return existing, apperrors.ErrAlreadyEnrolled
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	enrollment.ID = id
	enrollment.Course = course

	// A purchased course leaves the cart
	if err := s.cartRepo.Remove(ctx, studentID, courseID); err != nil && !errors.Is(err, apperrors.ErrCartNotFound) {
		logger.Warn().Err(err).Int64("courseID", courseID).Msg("Failed to remove purchased course from cart")
	}

	logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student enrolled")
	return enrollment, nil
}

// ListEnrollments lists a student's enrollments with course summaries,
// refreshing stale expiry flags along the way.
func (s *enrollmentServiceImpl) ListEnrollments(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	enrollments, err := s.enrollmentRepo.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var newlyExpired []int64
	for _, e := range enrollments {
		if !e.IsExpired && validity.IsExpired(e.ExpiresAt, now) {
			e.IsExpired = true
			newlyExpired = append(newlyExpired, e.ID)
		}
	}
	if err := s.enrollmentRepo.MarkExpired(ctx, newlyExpired); err != nil {
		logger.Warn().Err(err).Msg("Failed to persist expiry flags")
	}

	// Expired enrollments drop out of the listing
	active := enrollments[:0]
	for _, e := range enrollments {
		if !e.IsExpired {
			active = append(active, e)
		}
	}
	enrollments = active

	if len(enrollments) > 0 {
		ids := make([]int64, 0, len(enrollments))
		for _, e := range enrollments {
			ids = append(ids, e.CourseID)
		}
		courses, err := s.courseRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[int64]*models.Course, len(courses))
		for _, c := range courses {
			byID[c.ID] = c
		}
		for _, e := range enrollments {
			e.Course = byID[e.CourseID]
		}
	}

	return enrollments, nil
}

// AccessCourse checks that a student's enrollment is still valid and records
// the access time
func (s *enrollmentServiceImpl) AccessCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	enrollment, err := s.activeEnrollment(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.TouchRecentAccess(ctx, enrollment.ID, time.Now()); err != nil {
		logger.Warn().Err(err).Int64("enrollmentID", enrollment.ID).Msg("Failed to record course access")
	}

	return enrollment, nil
}

// CompleteLesson records a completed lesson. When every lesson of the course
// is completed the enrollment is marked complete and a certificate issued.
func (s *enrollmentServiceImpl) CompleteLesson(ctx context.Context, studentID, courseID, lessonID int64) (*models.Enrollment, error) {
	enrollment, err := s.activeEnrollment(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.AddCompletedLesson(ctx, enrollment.ID, lessonID, time.Now()); err != nil {
		return nil, err
	}

	completed, err := s.enrollmentRepo.GetCompletedLessons(ctx, enrollment.ID)
	if err != nil {
		return nil, err
	}
	enrollment.CompletedLessons = completed

	total, err := s.enrollmentRepo.CountLessons(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if enrollment.CompletedAt == nil && total > 0 && len(completed) >= total {
		if err := s.issueCertificate(ctx, enrollment, studentID, courseID); err != nil {
			return nil, err
		}
	}

	return enrollment, nil
}

// UncompleteLesson removes a lesson from the completed set. Removing a
// lesson that was never completed is a no-op.
func (s *enrollmentServiceImpl) UncompleteLesson(ctx context.Context, studentID, courseID, lessonID int64) (*models.Enrollment, error) {
	enrollment, err := s.activeEnrollment(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.RemoveCompletedLesson(ctx, enrollment.ID, lessonID); err != nil {
		return nil, err
	}

	completed, err := s.enrollmentRepo.GetCompletedLessons(ctx, enrollment.ID)
	if err != nil {
		return nil, err
	}
	enrollment.CompletedLessons = completed

	return enrollment, nil
}

// ListCertificates returns certificate records for the student's completed
// courses.
func (s *enrollmentServiceImpl) ListCertificates(ctx context.Context, studentID int64) ([]models.CertificateRecord, error) {
	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var completed []*models.Enrollment
	ids := make([]int64, 0, len(enrollments))
	for _, e := range enrollments {
		if e.CompletedAt != nil {
			completed = append(completed, e)
			ids = append(ids, e.CourseID)
		}
	}
	if len(completed) == 0 {
		return nil, nil
	}

	courses, err := s.courseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	records := make([]models.CertificateRecord, 0, len(completed))
	for _, e := range completed {
		record := models.CertificateRecord{
			CourseID:    e.CourseID,
			StudentName: student.Name,
			CompletedAt: *e.CompletedAt,
		}
		if e.Certificate != nil {
			record.Certificate = *e.Certificate
		}
		if course, ok := byID[e.CourseID]; ok {
			record.CourseTitle = course.Title
			record.Thumbnail = course.Thumbnail
		}
		records = append(records, record)
	}

	return records, nil
}

// GetProgress returns a student's enrollment with completed lessons and the
// course's current lesson count
func (s *enrollmentServiceImpl) GetProgress(ctx context.Context, studentID, courseID int64) (*models.Enrollment, int, error) {
	enrollment, err := s.enrollmentRepo.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, 0, err
	}

	completed, err := s.enrollmentRepo.GetCompletedLessons(ctx, enrollment.ID)
	if err != nil {
		return nil, 0, err
	}
	enrollment.CompletedLessons = completed

	total, err := s.enrollmentRepo.CountLessons(ctx, courseID)
	if err != nil {
		return nil, 0, err
	}

	return enrollment, total, nil
}

func (s *enrollmentServiceImpl) activeEnrollment(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	if enrollment.IsExpired {
		return nil, apperrors.ErrEnrollmentExpired
	}
	if validity.IsExpired(enrollment.ExpiresAt, time.Now()) {
		if err := s.enrollmentRepo.MarkExpired(ctx, []int64{enrollment.ID}); err != nil {
			logger.Warn().Err(err).Int64("enrollmentID", enrollment.ID).Msg("Failed to persist expiry flag")
		}
		return nil, apperrors.ErrEnrollmentExpired
	}

	return enrollment, nil
}

func (s *enrollmentServiceImpl) issueCertificate(ctx context.Context, enrollment *models.Enrollment, studentID, courseID int64) error {
	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}

	now := time.Now()
	certPath, err := s.certGen.Issue(certificates.Certificate{
		StudentName:    student.Name,
		CourseTitle:    course.Title,
		InstructorName: course.InstructorName,
		IssuedAt:       now,
	})
	if err != nil {
		return err
	}

	if err := s.enrollmentRepo.SetCompleted(ctx, enrollment.ID, now, certPath); err != nil {
		return err
	}

	enrollment.CompletedAt = &now
	enrollment.Certificate = &certPath
	logger.Info().Int64("enrollmentID", enrollment.ID).Msg("Course completed, certificate issued")
	return nil
}

// ListCourseEnrollments lists every enrollment across the instructor's
// courses, with student and course summaries attached.
func (s *enrollmentServiceImpl) ListCourseEnrollments(ctx context.Context, instructorID int64) ([]*models.Enrollment, error) {
	courses, err := s.courseRepo.GetByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, nil
	}

	courseIDs := make([]int64, 0, len(courses))
	byID := make(map[int64]*models.Course, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
		byID[course.ID] = course
	}

	enrollments, err := s.enrollmentRepo.GetByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	for _, e := range enrollments {
		e.Course = byID[e.CourseID]
	}
	return enrollments, nil
}

// EnrollStudent enrolls a named student into one of the instructor's own
// courses, with the same expiry policy as a purchase. Courses owned by
// someone else are off limits.
func (s *enrollmentServiceImpl) EnrollStudent(ctx context.Context, instructorID, studentID, courseID int64) (*models.Enrollment, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, apperrors.ErrPermissionDenied
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	enrollment := &models.Enrollment{
		StudentID:   studentID,
		CourseID:    courseID,
		PurchasedAt: now,
		ExpiresAt:   validity.ComputeExpiry(course.ValidityPeriod, now),
	}

	id, err := s.enrollmentRepo.Create(ctx, enrollment)
	if err != nil {
		return nil, err
	}
	enrollment.ID = id
	enrollment.Course = course
	enrollment.Student = student

	logger.Info().Int64("instructorID", instructorID).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student enrolled by instructor")
	return enrollment, nil
}

// ListStudents returns every student account, name and email only.
func (s *enrollmentServiceImpl) ListStudents(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetAllBasic(ctx)
}
