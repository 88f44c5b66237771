package coursetree

import (
	"context"

	"github.com/kaan/eduflow/internal/app/models"
)

// Store is the persistence surface the builder and reconciler write through.
// Every call is an independent document-store operation: there is no
// transaction across calls, and a failure partway leaves earlier writes in
// place.
type Store interface {
	// CreateChapter persists a new chapter and returns its identifier.
	CreateChapter(ctx context.Context, chapter *models.Chapter) (int64, error)

	// UpdateChapterTitle updates a persisted chapter's title in place.
	UpdateChapterTitle(ctx context.Context, id int64, title string) error

	// SetChapterLessons persists lessonIDs as the chapter's canonical
	// lesson order.
	SetChapterLessons(ctx context.Context, chapterID int64, lessonIDs []int64) error

	// DeleteChapter removes a chapter. Deleting an already-removed chapter
	// is not an error.
	DeleteChapter(ctx context.Context, id int64) error

	// CreateLesson persists a new lesson together with any media already
	// attached to it, and returns its identifier.
	CreateLesson(ctx context.Context, lesson *models.Lesson) (int64, error)

	// UpdateLesson updates a persisted lesson's title and content in place.
	UpdateLesson(ctx context.Context, id int64, title, content string) error

	// ReplaceLessonVideos replaces the lesson's video list wholesale.
	// Documents are only written at lesson creation; the update path never
	// replaces them.
	ReplaceLessonVideos(ctx context.Context, lessonID int64, videos []models.Video) error

	// DeleteLesson removes a lesson. Deleting an already-removed lesson is
	// not an error.
	DeleteLesson(ctx context.Context, id int64) error

	// SetCourseChapters persists chapterIDs as the course's canonical
	// chapter order.
	SetCourseChapters(ctx context.Context, courseID int64, chapterIDs []int64) error
}
