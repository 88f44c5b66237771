package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
)

type enrollmentRepoFake struct {
	nextID      int64
	enrollments map[int64]*models.Enrollment
	lessonCount int
}

func newEnrollmentRepoFake() *enrollmentRepoFake {
	return &enrollmentRepoFake{nextID: 1, enrollments: make(map[int64]*models.Enrollment)}
}

func (f *enrollmentRepoFake) Create(_ context.Context, enrollment *models.Enrollment) (int64, error) {
	for _, e := range f.enrollments {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID {
			return 0, apperrors.ErrAlreadyEnrolled
		}
	}
	id := f.nextID
	f.nextID++
	stored := *enrollment
	stored.ID = id
	f.enrollments[id] = &stored
	return id, nil
}

func (f *enrollmentRepoFake) GetByStudentAndCourse(_ context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	for _, e := range f.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			copied := *e
			return &copied, nil
		}
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (f *enrollmentRepoFake) GetByStudent(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		if e.StudentID == studentID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *enrollmentRepoFake) GetByCourses(_ context.Context, courseIDs []int64) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		for _, id := range courseIDs {
			if e.CourseID == id {
				copied := *e
				out = append(out, &copied)
			}
		}
	}
	return out, nil
}

func (f *enrollmentRepoFake) MarkExpired(_ context.Context, ids []int64) error {
	for _, id := range ids {
		if e, ok := f.enrollments[id]; ok {
			e.IsExpired = true
		}
	}
	return nil
}

func (f *enrollmentRepoFake) TouchRecentAccess(_ context.Context, id int64, at time.Time) error {
	if e, ok := f.enrollments[id]; ok {
		e.RecentAccess = &at
	}
	return nil
}

func (f *enrollmentRepoFake) SetCompleted(_ context.Context, id int64, at time.Time, certificate string) error {
	if e, ok := f.enrollments[id]; ok {
		e.CompletedAt = &at
		e.Certificate = &certificate
	}
	return nil
}

func (f *enrollmentRepoFake) AddCompletedLesson(_ context.Context, _, _ int64, _ time.Time) error {
	return nil
}

func (f *enrollmentRepoFake) RemoveCompletedLesson(_ context.Context, _, _ int64) error {
	return nil
}

func (f *enrollmentRepoFake) GetCompletedLessons(_ context.Context, _ int64) ([]models.CompletedLesson, error) {
	return nil, nil
}

func (f *enrollmentRepoFake) CountLessons(_ context.Context, _ int64) (int, error) {
	return f.lessonCount, nil
}

type courseReaderFake struct {
	courses map[int64]*models.Course
}

func (f *courseReaderFake) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (f *courseReaderFake) GetByIDs(_ context.Context, ids []int64) ([]*models.Course, error) {
	var out []*models.Course
	for _, id := range ids {
		if course, ok := f.courses[id]; ok {
			out = append(out, course)
		}
	}
	return out, nil
}

func (f *courseReaderFake) GetByInstructor(_ context.Context, instructorID int64) ([]*models.Course, error) {
	var out []*models.Course
	for _, course := range f.courses {
		if course.InstructorID == instructorID {
			out = append(out, course)
		}
	}
	return out, nil
}

type userReaderFake struct {
	users map[int64]*models.User
}

func (f *userReaderFake) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *userReaderFake) GetAllBasic(_ context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

type cartStoreFake struct {
	removed int
}

func (f *cartStoreFake) Remove(_ context.Context, _, _ int64) error {
	f.removed++
	return apperrors.ErrCartNotFound
}

func newEnrollmentFixture() (*enrollmentServiceImpl, *enrollmentRepoFake) {
	repo := newEnrollmentRepoFake()
	svc := &enrollmentServiceImpl{
		enrollmentRepo: repo,
		courseRepo: &courseReaderFake{courses: map[int64]*models.Course{
			1: {ID: 1, Title: "Go Basics", InstructorID: 7, ValidityPeriod: models.ValidityPeriod{Kind: models.ValidityMonths, Duration: 6}},
			2: {ID: 2, Title: "Advanced Go", InstructorID: 8},
		}},
		userRepo: &userReaderFake{users: map[int64]*models.User{
			10: {ID: 10, Name: "Ada", Email: "ada@example.com"},
		}},
		cartRepo: &cartStoreFake{},
	}
	return svc, repo
}

func TestEnrollSetsExpiryFromValidityPolicy(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	enrollment, err := svc.Enroll(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if enrollment.ExpiresAt == nil {
		t.Fatal("expiry not set for a 6-month validity course")
	}
	if enrollment.Course == nil || enrollment.Course.ID != 1 {
		t.Errorf("course not attached: %+v", enrollment.Course)
	}
}

func TestEnrollDuplicateEchoesExistingEnrollment(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	first, err := svc.Enroll(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("first Enroll: %v", err)
	}

	second, err := svc.Enroll(context.Background(), 10, 1)
	if !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Fatalf("second Enroll error = %v, want ErrAlreadyEnrolled", err)
	}
	if second == nil {
		t.Fatal("second Enroll returned no enrollment to echo")
	}
	if second.ID != first.ID {
		t.Errorf("echoed enrollment ID = %d, want %d", second.ID, first.ID)
	}
	if second.Course == nil || second.Course.ID != 1 {
		t.Errorf("echoed enrollment course = %+v", second.Course)
	}
}

func TestEnrollStudentRequiresOwnership(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	// Course 2 belongs to instructor 8.
	if _, err := svc.EnrollStudent(context.Background(), 7, 10, 2); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("error = %v, want ErrPermissionDenied", err)
	}

	enrollment, err := svc.EnrollStudent(context.Background(), 7, 10, 1)
	if err != nil {
		t.Fatalf("EnrollStudent: %v", err)
	}
	if enrollment.Student == nil || enrollment.Student.Name != "Ada" {
		t.Errorf("student not attached: %+v", enrollment.Student)
	}
	if enrollment.ExpiresAt == nil {
		t.Error("expiry not set from the course validity policy")
	}
}

func TestEnrollStudentUnknownStudent(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	if _, err := svc.EnrollStudent(context.Background(), 7, 99, 1); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("error = %v, want ErrUserNotFound", err)
	}
}

func TestListCourseEnrollmentsScopedToInstructor(t *testing.T) {
	svc, repo := newEnrollmentFixture()

	if _, err := repo.Create(context.Background(), &models.Enrollment{StudentID: 10, CourseID: 1, PurchasedAt: time.Now()}); err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	if _, err := repo.Create(context.Background(), &models.Enrollment{StudentID: 10, CourseID: 2, PurchasedAt: time.Now()}); err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}

	enrollments, err := svc.ListCourseEnrollments(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListCourseEnrollments: %v", err)
	}
	if len(enrollments) != 1 {
		t.Fatalf("got %d enrollments, want 1 (only instructor 7's course)", len(enrollments))
	}
	if enrollments[0].Course == nil || enrollments[0].Course.ID != 1 {
		t.Errorf("course not attached: %+v", enrollments[0].Course)
	}
}
