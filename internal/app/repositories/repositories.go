package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	User         *UserRepository
	Instructor   *InstructorRepository
	Session      *SessionRepository
	Course       *CourseRepository
	CourseTree   *CourseTreeRepository
	Enrollment   *EnrollmentRepository
	Review       *ReviewRepository
	Cart         *CartRepository
	Notification *NotificationRepository
	FAQ          *FAQRepository
}

// NewRepositories creates a container with all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Instructor:   NewInstructorRepository(db),
		Session:      NewSessionRepository(db),
		Course:       NewCourseRepository(db),
		CourseTree:   NewCourseTreeRepository(db),
		Enrollment:   NewEnrollmentRepository(db),
		Review:       NewReviewRepository(db),
		Cart:         NewCartRepository(db),
		Notification: NewNotificationRepository(db),
		FAQ:          NewFAQRepository(db),
	}
}
