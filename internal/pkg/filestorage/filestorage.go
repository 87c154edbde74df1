package filestorage

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// MaxFileSize is the upper bound for a single uploaded document.
const MaxFileSize = 5 << 20 // 5 MB

// allowedExtensions are the document types accepted for applications.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves a file and returns the accessible path where it was stored
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath lets you specify a subdirectory for storing the file
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error

	// GetFullPath returns the full filesystem path for a given file URL
	GetFullPath(fileURL string) string
}

// ValidateDocument rejects uploads over the size limit or with a disallowed
// extension.
func ValidateDocument(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return nil
	}
	if fileHeader.Size > MaxFileSize {
		return fmt.Errorf("file %s exceeds the %d MB size limit", fileHeader.Filename, MaxFileSize>>20)
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("file type %s is not allowed, use pdf, jpg, jpeg or png", ext)
	}
	return nil
}
