package coursetree

import (
	"fmt"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/pkg/filestorage"
)

// Plan is the computed edit turning a persisted course tree into a submitted
// description: updates for entities carrying an identifier, creates for
// those without one, deletes for persisted entities absent from the
// submission. Computing the plan touches no storage; applying it does.
type Plan struct {
	// Chapters holds the kept chapters in submitted order.
	Chapters []ChapterOp

	// DeletedChapters are persisted chapters absent from the submission,
	// each with the lessons that must go with it.
	DeletedChapters []ChapterDeletion
}

// ChapterOp is the planned edit for one kept chapter. A zero ID means
// create.
type ChapterOp struct {
	ID    int64
	Title string

	// Lessons holds the kept lessons in submitted order.
	Lessons []LessonOp

	// DeletedLessonIDs are this chapter's persisted lessons absent from
	// the submission.
	DeletedLessonIDs []int64
}

// LessonOp is the planned edit for one kept lesson. A zero ID means create.
type LessonOp struct {
	ID      int64
	Title   string
	Content string

	// ClearVideos empties the persisted video list before any replacement.
	ClearVideos bool

	// NewVideo, when set, replaces the lesson's video list with this
	// single entry.
	NewVideo *models.Video
}

// ChapterDeletion names one chapter to remove and the lessons under it.
type ChapterDeletion struct {
	ID        int64
	LessonIDs []int64
}

// PlanReconcile diffs the persisted chapters of a course against a submitted
// description and returns the edit plan. It is a pure function of its
// inputs.
//
// Replacement lesson videos are not index-mapped: lessonVideos is consumed
// in the order lessons with HasNewVideo are visited across the whole
// submission, matching the upload convention of the update request. A lesson
// whose flag is set after the uploads run out keeps its current videos.
func PlanReconcile(current []*models.Chapter, submitted []ChapterDescription, lessonVideos []*filestorage.StoredFile) Plan {
	currentByID := make(map[int64]*models.Chapter, len(current))
	for _, ch := range current {
		currentByID[ch.ID] = ch
	}

	var plan Plan
	videoCursor := 0
	keptChapters := make(map[int64]bool, len(submitted))

	for _, chapterDesc := range submitted {
		op := ChapterOp{
			ID:    chapterDesc.ID,
			Title: chapterDesc.Title,
		}
		if chapterDesc.ID != 0 {
			keptChapters[chapterDesc.ID] = true
		}

		keptLessons := make(map[int64]bool, len(chapterDesc.Lessons))
		for _, lessonDesc := range chapterDesc.Lessons {
			lessonOp := LessonOp{
				ID:          lessonDesc.ID,
				Title:       lessonDesc.Title,
				Content:     lessonDesc.Content,
				ClearVideos: lessonDesc.ID != 0 && lessonDesc.DeleteExistingVideo,
			}
			if lessonDesc.ID != 0 {
				keptLessons[lessonDesc.ID] = true
			}

			if lessonDesc.HasNewVideo && videoCursor < len(lessonVideos) {
				file := lessonVideos[videoCursor]
				videoCursor++

				title := lessonDesc.VideoTitle
				if title == "" {
					title = fmt.Sprintf("Video for %s", lessonDesc.Title)
				}
				lessonOp.NewVideo = &models.Video{
					Title:    title,
					URL:      file.Path,
					Duration: 0,
					Size:     file.Size,
				}
			}

			op.Lessons = append(op.Lessons, lessonOp)
		}

		// Persisted lessons of a kept chapter that the submission no
		// longer mentions are deleted.
		if existing, ok := currentByID[chapterDesc.ID]; ok {
			for _, lesson := range existing.Lessons {
				if !keptLessons[lesson.ID] {
					op.DeletedLessonIDs = append(op.DeletedLessonIDs, lesson.ID)
				}
			}
		}

		plan.Chapters = append(plan.Chapters, op)
	}

	// Chapters omitted from the submission are removed along with all of
	// their lessons.
	for _, ch := range current {
		if keptChapters[ch.ID] {
			continue
		}
		deletion := ChapterDeletion{ID: ch.ID}
		for _, lesson := range ch.Lessons {
			deletion.LessonIDs = append(deletion.LessonIDs, lesson.ID)
		}
		plan.DeletedChapters = append(plan.DeletedChapters, deletion)
	}

	return plan
}
