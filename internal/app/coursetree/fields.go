// Package coursetree builds and reconciles the course → chapter → lesson →
// media hierarchy against the persistence layer, and maps uploaded multipart
// field names onto positions in that hierarchy.
package coursetree

import (
	"fmt"
	"strconv"
	"strings"
)

// Fixed singleton upload fields on every course request.
const (
	FieldThumbnail    = "thumbnail"
	FieldVideoPreview = "videoPreview"
	// FieldLessonVideos carries replacement lesson videos on the update
	// path as an ordered list rather than index-mapped fields.
	FieldLessonVideos = "lessonVideos"
)

// MediaKind distinguishes the two per-lesson media grids.
type MediaKind string

const (
	MediaVideo    MediaKind = "video"
	MediaDocument MediaKind = "document"
)

// Bounds caps the upload grid: field names must be declared before the
// request body is parsed, so the set cannot depend on the submitted tree
// shape. A course exceeding these bounds silently drops the extra media.
type Bounds struct {
	Chapters  int // Max chapters per course
	Lessons   int // Max lessons per chapter
	Videos    int // Max videos per lesson
	Documents int // Max documents per lesson
}

// DefaultBounds are the production limits.
var DefaultBounds = Bounds{Chapters: 10, Lessons: 10, Videos: 5, Documents: 5}

// VideoField returns the upload field name for the video at position
// (chapter, lesson, video).
func VideoField(chapter, lesson, video int) string {
	return fmt.Sprintf("video_%d_%d_%d", chapter, lesson, video)
}

// DocumentField returns the upload field name for the document at position
// (chapter, lesson, document).
func DocumentField(chapter, lesson, document int) string {
	return fmt.Sprintf("document_%d_%d_%d", chapter, lesson, document)
}

// ParseMediaField inverts VideoField/DocumentField. It returns the media
// kind and grid position encoded in a field name, or ok=false for any other
// field (including the singletons).
func ParseMediaField(field string) (kind MediaKind, chapter, lesson, index int, ok bool) {
	parts := strings.Split(field, "_")
	if len(parts) != 4 {
		return "", 0, 0, 0, false
	}

	switch parts[0] {
	case string(MediaVideo):
		kind = MediaVideo
	case string(MediaDocument):
		kind = MediaDocument
	default:
		return "", 0, 0, 0, false
	}

	nums := [3]int{}
	for i, p := range parts[1:] {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return "", 0, 0, 0, false
		}
		nums[i] = n
	}

	return kind, nums[0], nums[1], nums[2], true
}

// UploadFields enumerates every field name an upload handler must accept for
// a course create request: the full media grid for the given bounds plus the
// thumbnail and video-preview singletons. The result is deterministic and
// contains C·L·V + C·L·D + 2 unique names.
func UploadFields(b Bounds) []string {
	fields := make([]string, 0, b.Chapters*b.Lessons*(b.Videos+b.Documents)+2)
	fields = append(fields, FieldThumbnail, FieldVideoPreview)

	for c := 0; c < b.Chapters; c++ {
		for l := 0; l < b.Lessons; l++ {
			for v := 0; v < b.Videos; v++ {
				fields = append(fields, VideoField(c, l, v))
			}
			for d := 0; d < b.Documents; d++ {
				fields = append(fields, DocumentField(c, l, d))
			}
		}
	}

	return fields
}
