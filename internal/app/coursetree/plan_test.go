package coursetree

import (
	"testing"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/pkg/filestorage"
)

func persistedTree() []*models.Chapter {
	return []*models.Chapter{
		{
			ID: 1, CourseID: 7, Title: "Basics", Position: 0,
			Lessons: []*models.Lesson{
				{ID: 10, ChapterID: 1, Title: "Intro", Content: "welcome", Position: 0},
				{ID: 11, ChapterID: 1, Title: "Setup", Content: "install", Position: 1},
			},
		},
		{
			ID: 2, CourseID: 7, Title: "Advanced", Position: 1,
			Lessons: []*models.Lesson{
				{ID: 20, ChapterID: 2, Title: "Patterns", Content: "", Position: 0},
			},
		},
	}
}

// Resubmitting the persisted tree unchanged must plan no creates and no
// deletes.
func TestPlanReconcileIdempotent(t *testing.T) {
	current := persistedTree()
	submitted := []ChapterDescription{
		{ID: 1, Title: "Basics", Lessons: []LessonDescription{
			{ID: 10, Title: "Intro", Content: "welcome"},
			{ID: 11, Title: "Setup", Content: "install"},
		}},
		{ID: 2, Title: "Advanced", Lessons: []LessonDescription{
			{ID: 20, Title: "Patterns", Content: ""},
		}},
	}

	plan := PlanReconcile(current, submitted, nil)

	if len(plan.DeletedChapters) != 0 {
		t.Fatalf("got %d deleted chapters, want 0", len(plan.DeletedChapters))
	}
	if len(plan.Chapters) != 2 {
		t.Fatalf("got %d chapter ops, want 2", len(plan.Chapters))
	}
	for _, ch := range plan.Chapters {
		if ch.ID == 0 {
			t.Errorf("chapter %q planned as create, want update", ch.Title)
		}
		if len(ch.DeletedLessonIDs) != 0 {
			t.Errorf("chapter %d plans lesson deletions %v, want none", ch.ID, ch.DeletedLessonIDs)
		}
		for _, l := range ch.Lessons {
			if l.ID == 0 {
				t.Errorf("lesson %q planned as create, want update", l.Title)
			}
			if l.NewVideo != nil || l.ClearVideos {
				t.Errorf("lesson %d plans video changes, want none", l.ID)
			}
		}
	}
}

func TestPlanReconcileOmittedChapterDeleted(t *testing.T) {
	current := persistedTree()
	submitted := []ChapterDescription{
		{ID: 1, Title: "Basics", Lessons: []LessonDescription{
			{ID: 10, Title: "Intro", Content: "welcome"},
			{ID: 11, Title: "Setup", Content: "install"},
		}},
	}

	plan := PlanReconcile(current, submitted, nil)

	if len(plan.DeletedChapters) != 1 {
		t.Fatalf("got %d deleted chapters, want 1", len(plan.DeletedChapters))
	}
	del := plan.DeletedChapters[0]
	if del.ID != 2 {
		t.Errorf("deleted chapter ID = %d, want 2", del.ID)
	}
	if len(del.LessonIDs) != 1 || del.LessonIDs[0] != 20 {
		t.Errorf("deleted lesson IDs = %v, want [20]", del.LessonIDs)
	}
}

func TestPlanReconcileOmittedLessonDeleted(t *testing.T) {
	current := persistedTree()
	submitted := []ChapterDescription{
		{ID: 1, Title: "Basics", Lessons: []LessonDescription{
			{ID: 11, Title: "Setup", Content: "install"},
		}},
		{ID: 2, Title: "Advanced", Lessons: []LessonDescription{
			{ID: 20, Title: "Patterns", Content: ""},
		}},
	}

	plan := PlanReconcile(current, submitted, nil)

	if len(plan.Chapters[0].DeletedLessonIDs) != 1 || plan.Chapters[0].DeletedLessonIDs[0] != 10 {
		t.Errorf("deleted lesson IDs = %v, want [10]", plan.Chapters[0].DeletedLessonIDs)
	}
}

// Reordering chapters keeps both and changes only the submitted order.
func TestPlanReconcileReorder(t *testing.T) {
	current := persistedTree()
	submitted := []ChapterDescription{
		{ID: 2, Title: "Advanced", Lessons: []LessonDescription{
			{ID: 20, Title: "Patterns", Content: ""},
		}},
		{ID: 1, Title: "Basics", Lessons: []LessonDescription{
			{ID: 10, Title: "Intro", Content: "welcome"},
			{ID: 11, Title: "Setup", Content: "install"},
		}},
	}

	plan := PlanReconcile(current, submitted, nil)

	if len(plan.DeletedChapters) != 0 {
		t.Fatalf("reorder must not delete chapters, got %v", plan.DeletedChapters)
	}
	if plan.Chapters[0].ID != 2 || plan.Chapters[1].ID != 1 {
		t.Errorf("planned order = [%d %d], want [2 1]", plan.Chapters[0].ID, plan.Chapters[1].ID)
	}
}

func TestPlanReconcileNewEntities(t *testing.T) {
	current := persistedTree()
	submitted := []ChapterDescription{
		{ID: 1, Title: "Basics renamed", Lessons: []LessonDescription{
			{ID: 10, Title: "Intro", Content: "welcome"},
			{ID: 11, Title: "Setup", Content: "install"},
			{Title: "New lesson", Content: "fresh"},
		}},
		{ID: 2, Title: "Advanced", Lessons: []LessonDescription{
			{ID: 20, Title: "Patterns", Content: ""},
		}},
		{Title: "Brand new chapter", Lessons: []LessonDescription{
			{Title: "First", Content: ""},
		}},
	}

	plan := PlanReconcile(current, submitted, nil)

	if len(plan.DeletedChapters) != 0 {
		t.Fatalf("unexpected chapter deletions %v", plan.DeletedChapters)
	}
	if plan.Chapters[0].Title != "Basics renamed" {
		t.Errorf("renamed chapter title = %q", plan.Chapters[0].Title)
	}
	if got := plan.Chapters[0].Lessons[2]; got.ID != 0 || got.Title != "New lesson" {
		t.Errorf("new lesson op = %+v, want create", got)
	}
	if got := plan.Chapters[2]; got.ID != 0 || got.Title != "Brand new chapter" {
		t.Errorf("new chapter op = %+v, want create", got)
	}
}

// Replacement uploads are consumed in lesson visit order across the whole
// submission, not matched by index.
func TestPlanReconcileVideoCursor(t *testing.T) {
	current := persistedTree()
	uploads := []*filestorage.StoredFile{
		{Path: "videos/a.mp4", Size: 100},
		{Path: "videos/b.mp4", Size: 200},
	}
	submitted := []ChapterDescription{
		{ID: 1, Title: "Basics", Lessons: []LessonDescription{
			{ID: 10, Title: "Intro", Content: "welcome", HasNewVideo: true, VideoTitle: "Intro video"},
			{ID: 11, Title: "Setup", Content: "install"},
		}},
		{ID: 2, Title: "Advanced", Lessons: []LessonDescription{
			{ID: 20, Title: "Patterns", Content: "", HasNewVideo: true},
		}},
	}

	plan := PlanReconcile(current, submitted, uploads)

	first := plan.Chapters[0].Lessons[0].NewVideo
	if first == nil || first.URL != "videos/a.mp4" || first.Title != "Intro video" {
		t.Fatalf("first replacement = %+v, want a.mp4 titled 'Intro video'", first)
	}
	if plan.Chapters[0].Lessons[1].NewVideo != nil {
		t.Error("lesson without flag must not consume an upload")
	}
	second := plan.Chapters[1].Lessons[0].NewVideo
	if second == nil || second.URL != "videos/b.mp4" {
		t.Fatalf("second replacement = %+v, want b.mp4", second)
	}
	// Untitled replacement falls back to a derived title
	if second.Title == "" {
		t.Error("replacement without videoTitle must get a fallback title")
	}
}

// A flagged lesson past the end of the upload list keeps its videos.
func TestPlanReconcileVideoCursorExhausted(t *testing.T) {
	current := persistedTree()
	uploads := []*filestorage.StoredFile{{Path: "videos/only.mp4", Size: 1}}
	submitted := []ChapterDescription{
		{ID: 1, Title: "Basics", Lessons: []LessonDescription{
			{ID: 10, Title: "Intro", Content: "welcome", HasNewVideo: true},
			{ID: 11, Title: "Setup", Content: "install", HasNewVideo: true},
		}},
	}

	plan := PlanReconcile(current, submitted, uploads)

	if plan.Chapters[0].Lessons[0].NewVideo == nil {
		t.Fatal("first flagged lesson must consume the upload")
	}
	if plan.Chapters[0].Lessons[1].NewVideo != nil {
		t.Error("flagged lesson after uploads ran out must not plan a replacement")
	}
}

func TestPlanReconcileDeleteExistingVideo(t *testing.T) {
	current := persistedTree()
	submitted := []ChapterDescription{
		{ID: 1, Title: "Basics", Lessons: []LessonDescription{
			{ID: 10, Title: "Intro", Content: "welcome", DeleteExistingVideo: true},
			{ID: 11, Title: "Setup", Content: "install"},
		}},
	}

	plan := PlanReconcile(current, submitted, nil)

	if !plan.Chapters[0].Lessons[0].ClearVideos {
		t.Error("deleteExistingVideo must plan a video clear")
	}
	if plan.Chapters[0].Lessons[1].ClearVideos {
		t.Error("unflagged lesson must not clear videos")
	}

	// The flag is meaningless for a lesson that does not exist yet
	submitted[0].Lessons = append(submitted[0].Lessons, LessonDescription{Title: "New", DeleteExistingVideo: true})
	plan = PlanReconcile(current, submitted, nil)
	if plan.Chapters[0].Lessons[2].ClearVideos {
		t.Error("new lesson must not plan a video clear")
	}
}
