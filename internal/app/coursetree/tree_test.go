package coursetree

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/pkg/filestorage"
)

// memStore is an in-memory Store for exercising the builder and reconciler.
type memStore struct {
	mu sync.Mutex

	nextID   int64
	chapters map[int64]*models.Chapter
	lessons  map[int64]*models.Lesson

	chapterOrder map[int64][]int64 // courseID -> chapter IDs
	lessonOrder  map[int64][]int64 // chapterID -> lesson IDs

	failCreateLesson bool
}

func newMemStore() *memStore {
	return &memStore{
		nextID:       100,
		chapters:     make(map[int64]*models.Chapter),
		lessons:      make(map[int64]*models.Lesson),
		chapterOrder: make(map[int64][]int64),
		lessonOrder:  make(map[int64][]int64),
	}
}

func (s *memStore) nextIDLocked() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) CreateChapter(_ context.Context, chapter *models.Chapter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *chapter
	cp.ID = s.nextIDLocked()
	s.chapters[cp.ID] = &cp
	return cp.ID, nil
}

func (s *memStore) UpdateChapterTitle(_ context.Context, id int64, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.chapters[id]
	if !ok {
		return fmt.Errorf("chapter %d not found", id)
	}
	ch.Title = title
	return nil
}

func (s *memStore) SetChapterLessons(_ context.Context, chapterID int64, lessonIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lessonOrder[chapterID] = append([]int64(nil), lessonIDs...)
	return nil
}

func (s *memStore) DeleteChapter(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chapters, id)
	delete(s.lessonOrder, id)
	return nil
}

func (s *memStore) CreateLesson(_ context.Context, lesson *models.Lesson) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreateLesson {
		return 0, fmt.Errorf("lesson insert failed")
	}
	cp := *lesson
	cp.ID = s.nextIDLocked()
	s.lessons[cp.ID] = &cp
	return cp.ID, nil
}

func (s *memStore) UpdateLesson(_ context.Context, id int64, title, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lessons[id]
	if !ok {
		return fmt.Errorf("lesson %d not found", id)
	}
	l.Title = title
	l.Content = content
	return nil
}

func (s *memStore) ReplaceLessonVideos(_ context.Context, lessonID int64, videos []models.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lessons[lessonID]
	if !ok {
		return fmt.Errorf("lesson %d not found", lessonID)
	}
	l.Videos = append([]models.Video(nil), videos...)
	return nil
}

func (s *memStore) DeleteLesson(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lessons, id)
	return nil
}

func (s *memStore) SetCourseChapters(_ context.Context, courseID int64, chapterIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chapterOrder[courseID] = append([]int64(nil), chapterIDs...)
	return nil
}

// seed inserts a persisted chapter with lessons and returns both.
func (s *memStore) seed(courseID int64, title string, lessonTitles ...string) *models.Chapter {
	ch := &models.Chapter{CourseID: courseID, Title: title}
	id, _ := s.CreateChapter(context.Background(), ch)
	ch.ID = id
	for _, lt := range lessonTitles {
		l := &models.Lesson{ChapterID: id, Title: lt}
		lid, _ := s.CreateLesson(context.Background(), l)
		l.ID = lid
		ch.Lessons = append(ch.Lessons, l)
		s.lessonOrder[id] = append(s.lessonOrder[id], lid)
	}
	s.chapterOrder[courseID] = append(s.chapterOrder[courseID], id)
	return ch
}

func TestBuilderBuild(t *testing.T) {
	store := newMemStore()
	builder := NewBuilder(store, Bounds{Chapters: 5, Lessons: 5, Videos: 2, Documents: 2})

	chapters := []ChapterDescription{
		{Title: "Basics", Lessons: []LessonDescription{
			{Title: "Intro", Content: "hello", Videos: []VideoDescription{{Title: "Welcome"}}},
			{Title: "Setup", Content: ""},
		}},
		{Title: "Advanced", Lessons: []LessonDescription{
			{Title: "Patterns", Content: "deep dive"},
		}},
	}
	documents := DocumentsData{
		{{{Title: "Syllabus"}}, nil},
	}
	uploads := &Uploads{Fields: map[string]*filestorage.StoredFile{
		VideoField(0, 0, 0):    {Path: "videos/welcome.mp4", Size: 42, MimeType: "video/mp4"},
		DocumentField(0, 0, 0): {Path: "docs/syllabus.pdf", Size: 7, MimeType: "application/pdf", OriginalName: "syllabus.pdf"},
	}}

	if err := builder.Build(context.Background(), 7, chapters, documents, uploads); err != nil {
		t.Fatalf("Build: %v", err)
	}

	order := store.chapterOrder[7]
	if len(order) != 2 {
		t.Fatalf("course has %d chapters, want 2", len(order))
	}
	if store.chapters[order[0]].Title != "Basics" || store.chapters[order[1]].Title != "Advanced" {
		t.Errorf("chapter order = [%q %q]", store.chapters[order[0]].Title, store.chapters[order[1]].Title)
	}

	firstLessons := store.lessonOrder[order[0]]
	if len(firstLessons) != 2 {
		t.Fatalf("first chapter has %d lessons, want 2", len(firstLessons))
	}
	intro := store.lessons[firstLessons[0]]
	if intro.Title != "Intro" {
		t.Errorf("first lesson = %q, want Intro", intro.Title)
	}
	if len(intro.Videos) != 1 || intro.Videos[0].URL != "videos/welcome.mp4" {
		t.Errorf("intro videos = %+v", intro.Videos)
	}
	if len(intro.Documents) != 1 || intro.Documents[0].Title != "Syllabus" {
		t.Errorf("intro documents = %+v", intro.Documents)
	}

	// Described slots without a matching upload are dropped silently
	setup := store.lessons[firstLessons[1]]
	if len(setup.Videos) != 0 || len(setup.Documents) != 0 {
		t.Errorf("setup media = %+v %+v, want none", setup.Videos, setup.Documents)
	}
}

func TestBuilderLessonFailureAborts(t *testing.T) {
	store := newMemStore()
	store.failCreateLesson = true
	builder := NewBuilder(store, DefaultBounds)

	chapters := []ChapterDescription{
		{Title: "Basics", Lessons: []LessonDescription{{Title: "Intro"}}},
	}
	if err := builder.Build(context.Background(), 7, chapters, nil, &Uploads{}); err == nil {
		t.Fatal("Build must surface the lesson insert failure")
	}
	if len(store.chapterOrder[7]) != 0 {
		t.Error("chapter order must not be persisted after a failed batch")
	}
}

func TestReconcilerApply(t *testing.T) {
	store := newMemStore()
	kept := store.seed(7, "Basics", "Intro", "Setup")
	dropped := store.seed(7, "Old chapter", "Stale lesson")

	current := []*models.Chapter{kept, dropped}
	submitted := []ChapterDescription{
		{ID: kept.ID, Title: "Basics renamed", Lessons: []LessonDescription{
			{ID: kept.Lessons[1].ID, Title: "Setup", Content: "updated"},
			{ID: kept.Lessons[0].ID, Title: "Intro", Content: ""},
			{Title: "Brand new", Content: "fresh"},
		}},
	}

	plan := PlanReconcile(current, submitted, nil)
	if err := NewReconciler(store).Apply(context.Background(), 7, plan); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if _, ok := store.chapters[dropped.ID]; ok {
		t.Error("omitted chapter must be deleted")
	}
	if _, ok := store.lessons[dropped.Lessons[0].ID]; ok {
		t.Error("lessons of an omitted chapter must be deleted")
	}

	if got := store.chapters[kept.ID].Title; got != "Basics renamed" {
		t.Errorf("kept chapter title = %q", got)
	}
	if got := store.chapterOrder[7]; len(got) != 1 || got[0] != kept.ID {
		t.Errorf("course chapter order = %v, want [%d]", got, kept.ID)
	}

	lessonIDs := store.lessonOrder[kept.ID]
	if len(lessonIDs) != 3 {
		t.Fatalf("kept chapter has %d lessons, want 3", len(lessonIDs))
	}
	// Submitted order: Setup first, then Intro, then the new lesson
	if lessonIDs[0] != kept.Lessons[1].ID || lessonIDs[1] != kept.Lessons[0].ID {
		t.Errorf("lesson order = %v", lessonIDs)
	}
	if store.lessons[lessonIDs[1]].Title != "Intro" {
		t.Errorf("second lesson = %q, want Intro", store.lessons[lessonIDs[1]].Title)
	}
	if store.lessons[lessonIDs[2]].Title != "Brand new" {
		t.Errorf("created lesson = %q", store.lessons[lessonIDs[2]].Title)
	}
}

// Applying the same unchanged submission twice leaves the tree identical.
func TestReconcilerApplyIdempotent(t *testing.T) {
	store := newMemStore()
	ch := store.seed(7, "Basics", "Intro", "Setup")

	submitted := []ChapterDescription{
		{ID: ch.ID, Title: "Basics", Lessons: []LessonDescription{
			{ID: ch.Lessons[0].ID, Title: "Intro", Content: ""},
			{ID: ch.Lessons[1].ID, Title: "Setup", Content: ""},
		}},
	}

	for i := 0; i < 2; i++ {
		current := []*models.Chapter{snapshotChapter(store, ch.ID)}
		plan := PlanReconcile(current, submitted, nil)
		if err := NewReconciler(store).Apply(context.Background(), 7, plan); err != nil {
			t.Fatalf("Apply pass %d: %v", i+1, err)
		}
	}

	if len(store.chapters) != 1 || len(store.lessons) != 2 {
		t.Errorf("tree grew: %d chapters, %d lessons", len(store.chapters), len(store.lessons))
	}
	want := []int64{ch.Lessons[0].ID, ch.Lessons[1].ID}
	got := store.lessonOrder[ch.ID]
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("lesson order = %v, want %v", got, want)
	}
}

func TestReconcilerReplacesVideos(t *testing.T) {
	store := newMemStore()
	ch := store.seed(7, "Basics", "Intro")
	lessonID := ch.Lessons[0].ID
	store.lessons[lessonID].Videos = []models.Video{{Title: "old", URL: "videos/old.mp4"}}

	uploads := []*filestorage.StoredFile{{Path: "videos/new.mp4", Size: 9}}
	submitted := []ChapterDescription{
		{ID: ch.ID, Title: "Basics", Lessons: []LessonDescription{
			{ID: lessonID, Title: "Intro", HasNewVideo: true, DeleteExistingVideo: true, VideoTitle: "New take"},
		}},
	}

	plan := PlanReconcile([]*models.Chapter{snapshotChapter(store, ch.ID)}, submitted, uploads)
	if err := NewReconciler(store).Apply(context.Background(), 7, plan); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	videos := store.lessons[lessonID].Videos
	if len(videos) != 1 || videos[0].URL != "videos/new.mp4" || videos[0].Title != "New take" {
		t.Errorf("videos after replace = %+v", videos)
	}
}

// snapshotChapter reads a chapter with its lessons back out of the store in
// persisted order.
func snapshotChapter(s *memStore, id int64) *models.Chapter {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := *s.chapters[id]
	ids := s.lessonOrder[id]
	if len(ids) == 0 {
		for lid, l := range s.lessons {
			if l.ChapterID == id {
				ids = append(ids, lid)
			}
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	ch.Lessons = nil
	for _, lid := range ids {
		if l, ok := s.lessons[lid]; ok {
			cp := *l
			ch.Lessons = append(ch.Lessons, &cp)
		}
	}
	return &ch
}
