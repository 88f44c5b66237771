package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
)

// CourseTreeRepository persists the chapter/lesson/media hierarchy of a
// course. It implements coursetree.Store.
type CourseTreeRepository struct {
	db *pgxpool.Pool
}

// NewCourseTreeRepository creates a new CourseTreeRepository
func NewCourseTreeRepository(db *pgxpool.Pool) *CourseTreeRepository {
	return &CourseTreeRepository{db: db}
}

// CreateChapter inserts a new chapter and returns its ID
func (r *CourseTreeRepository) CreateChapter(ctx context.Context, chapter *models.Chapter) (int64, error) {
	query := `
		INSERT INTO chapters (course_id, title, position)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, chapter.CourseID, chapter.Title, chapter.Position).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating chapter: %w", err)
	}

	return id, nil
}

// UpdateChapterTitle updates a chapter's title
func (r *CourseTreeRepository) UpdateChapterTitle(ctx context.Context, id int64, title string) error {
	query := `UPDATE chapters SET title = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.Exec(ctx, query, title, id)
	if err != nil {
		return fmt.Errorf("error updating chapter title: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrChapterNotFound
	}

	return nil
}

// SetChapterLessons rewrites the positions of a chapter's lessons to match
// the given order
func (r *CourseTreeRepository) SetChapterLessons(ctx context.Context, chapterID int64, lessonIDs []int64) error {
	for pos, lessonID := range lessonIDs {
		query := `UPDATE lessons SET position = $1, updated_at = NOW() WHERE id = $2 AND chapter_id = $3`
		if _, err := r.db.Exec(ctx, query, pos, lessonID, chapterID); err != nil {
			return fmt.Errorf("error ordering lessons: %w", err)
		}
	}
	return nil
}

// DeleteChapter removes a chapter and, via cascade, its lessons and media.
// Deleting a missing chapter is not an error.
func (r *CourseTreeRepository) DeleteChapter(ctx context.Context, id int64) error {
	query := `DELETE FROM chapters WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("error deleting chapter: %w", err)
	}
	return nil
}

// CreateLesson inserts a lesson together with any media already attached to it
func (r *CourseTreeRepository) CreateLesson(ctx context.Context, lesson *models.Lesson) (int64, error) {
	query := `
		INSERT INTO lessons (chapter_id, title, content, position)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, lesson.ChapterID, lesson.Title, lesson.Content, lesson.Position).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating lesson: %w", err)
	}

	if len(lesson.Videos) > 0 {
		if err := r.ReplaceLessonVideos(ctx, id, lesson.Videos); err != nil {
			return 0, err
		}
	}
	if len(lesson.Documents) > 0 {
		if err := r.ReplaceLessonDocuments(ctx, id, lesson.Documents); err != nil {
			return 0, err
		}
	}

	return id, nil
}

// UpdateLesson updates a lesson's title and content
func (r *CourseTreeRepository) UpdateLesson(ctx context.Context, id int64, title, content string) error {
	query := `UPDATE lessons SET title = $1, content = $2, updated_at = NOW() WHERE id = $3`

	result, err := r.db.Exec(ctx, query, title, content, id)
	if err != nil {
		return fmt.Errorf("error updating lesson: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}

	return nil
}

// ReplaceLessonVideos replaces a lesson's videos wholesale
func (r *CourseTreeRepository) ReplaceLessonVideos(ctx context.Context, lessonID int64, videos []models.Video) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM lesson_videos WHERE lesson_id = $1`, lessonID); err != nil {
		return fmt.Errorf("error clearing lesson videos: %w", err)
	}

	query := `
		INSERT INTO lesson_videos (lesson_id, title, url, duration, size, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for pos, video := range videos {
		if _, err := r.db.Exec(ctx, query, lessonID, video.Title, video.URL, video.Duration, video.Size, pos); err != nil {
			return fmt.Errorf("error inserting lesson video: %w", err)
		}
	}

	return nil
}

// ReplaceLessonDocuments replaces a lesson's documents wholesale
func (r *CourseTreeRepository) ReplaceLessonDocuments(ctx context.Context, lessonID int64, documents []models.Document) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM lesson_documents WHERE lesson_id = $1`, lessonID); err != nil {
		return fmt.Errorf("error clearing lesson documents: %w", err)
	}

	query := `
		INSERT INTO lesson_documents (lesson_id, title, url, file_type, size, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for pos, doc := range documents {
		if _, err := r.db.Exec(ctx, query, lessonID, doc.Title, doc.URL, doc.FileType, doc.Size, pos); err != nil {
			return fmt.Errorf("error inserting lesson document: %w", err)
		}
	}

	return nil
}

// DeleteLesson removes a lesson and its media. Deleting a missing lesson is
// not an error.
func (r *CourseTreeRepository) DeleteLesson(ctx context.Context, id int64) error {
	query := `DELETE FROM lessons WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("error deleting lesson: %w", err)
	}
	return nil
}

// SetCourseChapters rewrites the positions of a course's chapters to match
// the given order
func (r *CourseTreeRepository) SetCourseChapters(ctx context.Context, courseID int64, chapterIDs []int64) error {
	for pos, chapterID := range chapterIDs {
		query := `UPDATE chapters SET position = $1, updated_at = NOW() WHERE id = $2 AND course_id = $3`
		if _, err := r.db.Exec(ctx, query, pos, chapterID, courseID); err != nil {
			return fmt.Errorf("error ordering chapters: %w", err)
		}
	}
	return nil
}

// GetChaptersByCourse loads the full chapter tree of a course, lessons and
// media included, in position order.
func (r *CourseTreeRepository) GetChaptersByCourse(ctx context.Context, courseID int64) ([]*models.Chapter, error) {
	query := `
		SELECT id, course_id, title, position, created_at, updated_at
		FROM chapters
		WHERE course_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*models.Chapter
	for rows.Next() {
		var ch models.Chapter
		if err := rows.Scan(&ch.ID, &ch.CourseID, &ch.Title, &ch.Position, &ch.CreatedAt, &ch.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning chapter row: %w", err)
		}
		chapters = append(chapters, &ch)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, ch := range chapters {
		lessons, err := r.getLessonsByChapter(ctx, ch.ID)
		if err != nil {
			return nil, err
		}
		ch.Lessons = lessons
	}

	return chapters, nil
}

func (r *CourseTreeRepository) getLessonsByChapter(ctx context.Context, chapterID int64) ([]*models.Lesson, error) {
	query := `
		SELECT id, chapter_id, title, content, position, created_at, updated_at
		FROM lessons
		WHERE chapter_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.Query(ctx, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("error listing lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.ChapterID, &l.Title, &l.Content, &l.Position, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning lesson row: %w", err)
		}
		lessons = append(lessons, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, l := range lessons {
		if err := r.loadLessonMedia(ctx, l); err != nil {
			return nil, err
		}
	}

	return lessons, nil
}

func (r *CourseTreeRepository) loadLessonMedia(ctx context.Context, lesson *models.Lesson) error {
	videoRows, err := r.db.Query(ctx,
		`SELECT title, url, duration, size FROM lesson_videos WHERE lesson_id = $1 ORDER BY position ASC`,
		lesson.ID)
	if err != nil {
		return fmt.Errorf("error listing lesson videos: %w", err)
	}
	lesson.Videos, err = scanVideos(videoRows)
	if err != nil {
		return err
	}

	docRows, err := r.db.Query(ctx,
		`SELECT title, url, file_type, size FROM lesson_documents WHERE lesson_id = $1 ORDER BY position ASC`,
		lesson.ID)
	if err != nil {
		return fmt.Errorf("error listing lesson documents: %w", err)
	}
	lesson.Documents, err = scanDocuments(docRows)
	return err
}

func scanVideos(rows pgx.Rows) ([]models.Video, error) {
	defer rows.Close()
	var videos []models.Video
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(&v.Title, &v.URL, &v.Duration, &v.Size); err != nil {
			return nil, fmt.Errorf("error scanning video row: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func scanDocuments(rows pgx.Rows) ([]models.Document, error) {
	defer rows.Close()
	var docs []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.Title, &d.URL, &d.FileType, &d.Size); err != nil {
			return nil, fmt.Errorf("error scanning document row: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
