package validation

import (
	"fmt"
	"strings"
)

// ValidateUpload validates an incoming file upload before any backend
// call is made. Classification by extension happens later; here we only
// reject uploads that could never be stored.
func ValidateUpload(fileName string, size, maxSize int64) error {
	err := ValidateFileName(fileName)
	if err != nil {
		return err
	}

	if size <= 0 {
		return fmt.Errorf("file is empty")
	}
	if size > maxSize {
		return fmt.Errorf("file too large: maximum size is %d MB", maxSize/(1<<20))
	}

	return nil
}

// ValidateFileName rejects empty names, path traversal, and names that
// would not survive a round trip through object-storage keys.
func ValidateFileName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return fmt.Errorf("file name is required")
	}
	if len(trimmed) > 255 {
		return fmt.Errorf("file name is too long (max 255 characters)")
	}
	if strings.ContainsAny(trimmed, "/\\") || trimmed == "." || trimmed == ".." {
		return fmt.Errorf("file name must not contain path separators")
	}

	return nil
}
