package coursetree

import (
	"context"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/pkg/logger"
)

// Reconciler applies a reconciliation plan to the persistence layer.
type Reconciler struct {
	store Store
}

// NewReconciler creates a Reconciler writing through store.
func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// Apply executes the plan against courseID's tree, in plan order: kept
// chapters first (each with its lesson edits, lesson-order write, and lesson
// deletions), then the course's chapter order, then removed chapters with
// their lessons. Deletes tolerate already-removed rows. There is no
// transaction: a failure partway leaves the tree partially reconciled.
func (r *Reconciler) Apply(ctx context.Context, courseID int64, plan Plan) error {
	keptChapterIDs := make([]int64, 0, len(plan.Chapters))

	for ci, chapterOp := range plan.Chapters {
		chapterID := chapterOp.ID
		if chapterID == 0 {
			id, err := r.store.CreateChapter(ctx, &models.Chapter{
				CourseID: courseID,
				Title:    chapterOp.Title,
				Position: ci,
			})
			if err != nil {
				return err
			}
			chapterID = id
		} else {
			if err := r.store.UpdateChapterTitle(ctx, chapterID, chapterOp.Title); err != nil {
				return err
			}
		}
		keptChapterIDs = append(keptChapterIDs, chapterID)

		keptLessonIDs := make([]int64, 0, len(chapterOp.Lessons))
		for li, lessonOp := range chapterOp.Lessons {
			lessonID := lessonOp.ID
			if lessonID == 0 {
				id, err := r.store.CreateLesson(ctx, &models.Lesson{
					ChapterID: chapterID,
					Title:     lessonOp.Title,
					Content:   lessonOp.Content,
					Position:  li,
				})
				if err != nil {
					return err
				}
				lessonID = id
			} else {
				if err := r.store.UpdateLesson(ctx, lessonID, lessonOp.Title, lessonOp.Content); err != nil {
					return err
				}
				if lessonOp.ClearVideos {
					if err := r.store.ReplaceLessonVideos(ctx, lessonID, nil); err != nil {
						return err
					}
				}
			}

			if lessonOp.NewVideo != nil {
				if err := r.store.ReplaceLessonVideos(ctx, lessonID, []models.Video{*lessonOp.NewVideo}); err != nil {
					return err
				}
			}

			keptLessonIDs = append(keptLessonIDs, lessonID)
		}

		if err := r.store.SetChapterLessons(ctx, chapterID, keptLessonIDs); err != nil {
			return err
		}

		for _, lessonID := range chapterOp.DeletedLessonIDs {
			if err := r.store.DeleteLesson(ctx, lessonID); err != nil {
				return err
			}
		}
	}

	if err := r.store.SetCourseChapters(ctx, courseID, keptChapterIDs); err != nil {
		return err
	}

	for _, deletion := range plan.DeletedChapters {
		// Lessons go first; both deletes tolerate rows already removed
		// earlier in the pass.
		for _, lessonID := range deletion.LessonIDs {
			if err := r.store.DeleteLesson(ctx, lessonID); err != nil {
				return err
			}
		}
		if err := r.store.DeleteChapter(ctx, deletion.ID); err != nil {
			return err
		}
	}

	logger.Info().
		Int64("courseID", courseID).
		Int("chapters", len(keptChapterIDs)).
		Int("deletedChapters", len(plan.DeletedChapters)).
		Msg("Course tree reconciled")
	return nil
}
