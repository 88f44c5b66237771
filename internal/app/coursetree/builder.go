package coursetree

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/pkg/logger"
)

// Builder persists a freshly authored course tree. The course row itself
// must already exist; Build attaches chapters, lessons and media under it.
type Builder struct {
	store  Store
	bounds Bounds
}

// NewBuilder creates a Builder writing through store with the given grid
// bounds.
func NewBuilder(store Store, bounds Bounds) *Builder {
	return &Builder{store: store, bounds: bounds}
}

// Build persists the described tree under courseID, in submitted order.
// Chapters are written strictly one after another; the lessons of a chapter
// are created concurrently and awaited as a batch before the chapter's
// lesson order is persisted. Media whose upload is missing is skipped
// without error. There is no transaction: a failure aborts the remaining
// steps and leaves already-written rows in place.
func (b *Builder) Build(ctx context.Context, courseID int64, chapters []ChapterDescription, documents DocumentsData, uploads *Uploads) error {
	chapterIDs := make([]int64, 0, len(chapters))

	for ci, chapterDesc := range chapters {
		chapter := &models.Chapter{
			CourseID: courseID,
			Title:    chapterDesc.Title,
			Position: ci,
		}
		chapterID, err := b.store.CreateChapter(ctx, chapter)
		if err != nil {
			return err
		}

		lessonIDs := make([]int64, len(chapterDesc.Lessons))
		g, gctx := errgroup.WithContext(ctx)
		for li, lessonDesc := range chapterDesc.Lessons {
			li, lessonDesc := li, lessonDesc
			g.Go(func() error {
				lesson := &models.Lesson{
					ChapterID: chapterID,
					Title:     lessonDesc.Title,
					Content:   lessonDesc.Content,
					Position:  li,
					Videos:    b.collectVideos(ci, li, lessonDesc.Videos, uploads),
					Documents: b.collectDocuments(ci, li, documents.At(ci, li), uploads),
				}
				lessonID, err := b.store.CreateLesson(gctx, lesson)
				if err != nil {
					return err
				}
				lessonIDs[li] = lessonID
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if err := b.store.SetChapterLessons(ctx, chapterID, lessonIDs); err != nil {
			return err
		}
		chapterIDs = append(chapterIDs, chapterID)
	}

	if err := b.store.SetCourseChapters(ctx, courseID, chapterIDs); err != nil {
		return err
	}

	logger.Info().Int64("courseID", courseID).Int("chapters", len(chapterIDs)).Msg("Course tree built")
	return nil
}

// collectVideos resolves the described video slots of lesson (ci, li)
// against the uploaded files. Slots without an upload are dropped; slots
// beyond the grid bounds can never have an upload and are dropped too.
// Duration is not extracted from the binary and stays 0.
func (b *Builder) collectVideos(ci, li int, descs []VideoDescription, uploads *Uploads) []models.Video {
	var videos []models.Video
	for vi, desc := range descs {
		file := uploads.Field(VideoField(ci, li, vi))
		if file == nil {
			continue
		}
		videos = append(videos, models.Video{
			Title:    desc.Title,
			URL:      file.Path,
			Duration: 0,
			Size:     file.Size,
		})
	}
	return videos
}

// collectDocuments resolves the described document slots of lesson (ci, li).
// A document description without a title falls back to the uploaded file's
// original name.
func (b *Builder) collectDocuments(ci, li int, descs []DocumentDescription, uploads *Uploads) []models.Document {
	var documents []models.Document
	for di, desc := range descs {
		file := uploads.Field(DocumentField(ci, li, di))
		if file == nil {
			continue
		}
		title := desc.Title
		if title == "" {
			title = file.OriginalName
		}
		documents = append(documents, models.Document{
			Title:    title,
			URL:      file.Path,
			FileType: file.MimeType,
			Size:     file.Size,
		})
	}
	return documents
}
