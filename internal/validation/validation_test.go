package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain name", "report.pdf", false},
		{"no extension", "README", false},
		{"unicode", "résumé.pdf", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"forward slash", "../etc/passwd", true},
		{"backslash", "docs\\report.pdf", true},
		{"dot", ".", true},
		{"dot dot", "..", true},
		{"too long", strings.Repeat("a", 256), true},
		{"max length", strings.Repeat("a", 255), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUpload(t *testing.T) {
	const maxSize = 50 << 20

	assert.NoError(t, ValidateUpload("report.pdf", 1024, maxSize))
	assert.Error(t, ValidateUpload("report.pdf", 0, maxSize), "empty file")
	assert.Error(t, ValidateUpload("report.pdf", -1, maxSize))
	assert.Error(t, ValidateUpload("report.pdf", maxSize+1, maxSize), "over the limit")
	assert.NoError(t, ValidateUpload("report.pdf", maxSize, maxSize), "exactly at the limit")
	assert.Error(t, ValidateUpload("", 1024, maxSize), "name validated first")
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@example.com"))
	assert.NoError(t, ValidateEmail("alice+files@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("@example.com"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("correct horse battery"))
	assert.Error(t, ValidatePassword("short"), "below minimum length")
	assert.Error(t, ValidatePassword(strings.Repeat("a", 73)), "bcrypt truncation limit")
	assert.Error(t, ValidatePassword("my Password 12345"), "common pattern")
}
