package filestorage

import (
	"mime/multipart"
)

// StoredFile describes an uploaded file after it has been written to storage.
// Course media handling only ever sees stored files, never raw streams.
type StoredFile struct {
	Path         string // Accessible path/URL of the stored file
	OriginalName string // Filename as submitted by the client
	Size         int64  // Size in bytes
	MimeType     string // MIME type reported by the client
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves a file and returns information about where it was stored
	SaveFile(fileHeader *multipart.FileHeader) (*StoredFile, error)

	// SaveFileWithPath lets you specify a subdirectory for storing the file
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (*StoredFile, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error

	// GetFullPath returns the full filesystem path for a given file URL
	GetFullPath(fileURL string) string
}
