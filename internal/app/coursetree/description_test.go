package coursetree

import (
	"errors"
	"testing"

	"github.com/kaan/eduflow/internal/pkg/apperrors"
	"github.com/kaan/eduflow/internal/pkg/filestorage"
)

func TestParseChaptersData(t *testing.T) {
	raw := `[{"title":"Basics","lessons":[{"title":"Intro","content":"hi","videos":[{"title":"Welcome"}]}]}]`
	chapters, err := ParseChaptersData(raw)
	if err != nil {
		t.Fatalf("ParseChaptersData: %v", err)
	}
	if len(chapters) != 1 || chapters[0].Title != "Basics" {
		t.Fatalf("chapters = %+v", chapters)
	}
	lesson := chapters[0].Lessons[0]
	if lesson.Title != "Intro" || len(lesson.Videos) != 1 || lesson.Videos[0].Title != "Welcome" {
		t.Errorf("lesson = %+v", lesson)
	}
}

func TestParseChaptersDataEmpty(t *testing.T) {
	chapters, err := ParseChaptersData("")
	if err != nil || chapters != nil {
		t.Errorf("empty input: got %v, %v; want nil, nil", chapters, err)
	}
}

func TestParseChaptersDataMalformed(t *testing.T) {
	_, err := ParseChaptersData(`{"not":"an array"`)
	if !errors.Is(err, apperrors.ErrMalformedInput) {
		t.Errorf("got %v, want ErrMalformedInput", err)
	}
}

func TestParseDocumentsData(t *testing.T) {
	raw := `[[[{"title":"Syllabus"}],[]],[[{"title":"Slides"},{"title":"Notes"}]]]`
	docs, err := ParseDocumentsData(raw)
	if err != nil {
		t.Fatalf("ParseDocumentsData: %v", err)
	}

	if got := docs.At(0, 0); len(got) != 1 || got[0].Title != "Syllabus" {
		t.Errorf("At(0,0) = %+v", got)
	}
	if got := docs.At(0, 1); len(got) != 0 {
		t.Errorf("At(0,1) = %+v, want empty", got)
	}
	if got := docs.At(1, 0); len(got) != 2 {
		t.Errorf("At(1,0) = %+v, want 2 documents", got)
	}
	// Positions outside the grid are nil rather than a panic
	if docs.At(5, 0) != nil || docs.At(0, 9) != nil {
		t.Error("out-of-grid positions must be nil")
	}

	if _, err := ParseDocumentsData(`[[["broken"`); !errors.Is(err, apperrors.ErrMalformedInput) {
		t.Errorf("malformed input: got %v, want ErrMalformedInput", err)
	}
}

func TestUploadsField(t *testing.T) {
	var nilUploads *Uploads
	if nilUploads.Field(FieldThumbnail) != nil {
		t.Error("nil uploads must resolve to nil")
	}

	uploads := &Uploads{Fields: map[string]*filestorage.StoredFile{
		FieldThumbnail: {Path: "thumbnails/a.png"},
	}}
	if got := uploads.Field(FieldThumbnail); got == nil || got.Path != "thumbnails/a.png" {
		t.Errorf("Field(thumbnail) = %+v", got)
	}
	if uploads.Field(VideoField(0, 0, 0)) != nil {
		t.Error("unknown field must resolve to nil")
	}
}
