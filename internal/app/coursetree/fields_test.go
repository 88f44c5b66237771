package coursetree

import (
	"fmt"
	"testing"
)

func TestUploadFieldsCardinality(t *testing.T) {
	tests := []struct {
		name   string
		bounds Bounds
	}{
		{"defaults", DefaultBounds},
		{"small", Bounds{Chapters: 2, Lessons: 3, Videos: 1, Documents: 2}},
		{"single slot", Bounds{Chapters: 1, Lessons: 1, Videos: 1, Documents: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fields := UploadFields(tc.bounds)

			want := tc.bounds.Chapters*tc.bounds.Lessons*(tc.bounds.Videos+tc.bounds.Documents) + 2
			if len(fields) != want {
				t.Fatalf("len(UploadFields) = %d, want %d", len(fields), want)
			}

			seen := make(map[string]bool, len(fields))
			for _, f := range fields {
				if seen[f] {
					t.Errorf("duplicate field %q", f)
				}
				seen[f] = true
			}
			if !seen[FieldThumbnail] || !seen[FieldVideoPreview] {
				t.Error("singleton fields missing from enumeration")
			}
		})
	}
}

func TestUploadFieldsDeterministic(t *testing.T) {
	a := UploadFields(DefaultBounds)
	b := UploadFields(DefaultBounds)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("field %d differs: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestParseMediaFieldRoundTrip(t *testing.T) {
	b := Bounds{Chapters: 3, Lessons: 3, Videos: 2, Documents: 2}
	for c := 0; c < b.Chapters; c++ {
		for l := 0; l < b.Lessons; l++ {
			for v := 0; v < b.Videos; v++ {
				kind, gc, gl, gi, ok := ParseMediaField(VideoField(c, l, v))
				if !ok || kind != MediaVideo || gc != c || gl != l || gi != v {
					t.Fatalf("ParseMediaField(VideoField(%d,%d,%d)) = %v %d %d %d %v", c, l, v, kind, gc, gl, gi, ok)
				}
			}
			for d := 0; d < b.Documents; d++ {
				kind, gc, gl, gi, ok := ParseMediaField(DocumentField(c, l, d))
				if !ok || kind != MediaDocument || gc != c || gl != l || gi != d {
					t.Fatalf("ParseMediaField(DocumentField(%d,%d,%d)) = %v %d %d %d %v", c, l, d, kind, gc, gl, gi, ok)
				}
			}
		}
	}
}

func TestParseMediaFieldRejects(t *testing.T) {
	rejected := []string{
		"",
		FieldThumbnail,
		FieldVideoPreview,
		FieldLessonVideos,
		"video_0_0",
		"video_0_0_0_0",
		"video_a_0_0",
		"video_0_-1_0",
		"audio_0_0_0",
		"chaptersData",
	}
	for _, field := range rejected {
		if _, _, _, _, ok := ParseMediaField(field); ok {
			t.Errorf("ParseMediaField(%q) accepted, want rejected", field)
		}
	}
}

func TestVideoAndDocumentFieldsDisjoint(t *testing.T) {
	if VideoField(1, 2, 3) == DocumentField(1, 2, 3) {
		t.Fatal("video and document fields must not collide")
	}
	if got := VideoField(1, 2, 3); got != fmt.Sprintf("video_%d_%d_%d", 1, 2, 3) {
		t.Fatalf("VideoField(1,2,3) = %q", got)
	}
}
