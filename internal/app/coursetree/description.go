package coursetree

import (
	"encoding/json"

	"github.com/kaan/eduflow/internal/pkg/apperrors"
	"github.com/kaan/eduflow/internal/pkg/filestorage"
)

// ChapterDescription is one chapter of a submitted course tree. A zero ID
// means the chapter does not exist yet; a non-zero ID refers to a persisted
// chapter to update in place. Array position is the canonical display order.
type ChapterDescription struct {
	ID      int64               `json:"id,omitempty"`
	Title   string              `json:"title"`
	Lessons []LessonDescription `json:"lessons"`
}

// LessonDescription is one lesson of a submitted course tree.
type LessonDescription struct {
	ID      int64              `json:"id,omitempty"`
	Title   string             `json:"title"`
	Content string             `json:"content"`
	Videos  []VideoDescription `json:"videos"`

	// Update-path flags. DeleteExistingVideo clears the persisted video
	// list; HasNewVideo replaces it with the next unconsumed upload.
	VideoTitle          string `json:"videoTitle,omitempty"`
	HasNewVideo         bool   `json:"hasNewVideo,omitempty"`
	DeleteExistingVideo bool   `json:"deleteExistingVideo,omitempty"`
}

// VideoDescription names one video slot on the create path; the binary
// arrives separately under the mapped upload field for this position.
type VideoDescription struct {
	Title string `json:"title"`
}

// DocumentDescription names one document slot on the create path.
type DocumentDescription struct {
	Title string `json:"title"`
}

// DocumentsData is the create path's document grid, indexed
// [chapter][lesson][document] in parallel with the chapter descriptions.
type DocumentsData [][][]DocumentDescription

// At returns the document descriptions for (chapter, lesson), or nil when
// the grid has no entry there.
func (d DocumentsData) At(chapter, lesson int) []DocumentDescription {
	if chapter >= len(d) {
		return nil
	}
	if lesson >= len(d[chapter]) {
		return nil
	}
	return d[chapter][lesson]
}

// ParseChaptersData decodes the chaptersData form field. A decode failure is
// a malformed-input error; persistence must not have started yet.
func ParseChaptersData(raw string) ([]ChapterDescription, error) {
	if raw == "" {
		return nil, nil
	}
	var chapters []ChapterDescription
	if err := json.Unmarshal([]byte(raw), &chapters); err != nil {
		return nil, apperrors.NewMalformedInputError("invalid chaptersData JSON")
	}
	return chapters, nil
}

// ParseDocumentsData decodes the documentsData form field.
func ParseDocumentsData(raw string) (DocumentsData, error) {
	if raw == "" {
		return nil, nil
	}
	var docs DocumentsData
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		return nil, apperrors.NewMalformedInputError("invalid documentsData JSON")
	}
	return docs, nil
}

// Uploads holds the stored files of one course request, keyed the two ways
// the tree operations consume them. Files are already on disk; nothing here
// touches raw streams.
type Uploads struct {
	// Fields maps mapped field identifiers (video_{c}_{l}_{v},
	// document_{c}_{l}_{d}, thumbnail, videoPreview) to stored files.
	Fields map[string]*filestorage.StoredFile

	// LessonVideos is the ordered update-path upload list, consumed in the
	// order lessons are visited across the whole request.
	LessonVideos []*filestorage.StoredFile
}

// Field returns the stored file for a mapped field identifier, or nil.
func (u *Uploads) Field(name string) *filestorage.StoredFile {
	if u == nil || u.Fields == nil {
		return nil
	}
	return u.Fields[name]
}
