package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileSharedEmailTemplate(t *testing.T) {
	subject, body := fileSharedEmailTemplate("report.pdf", "Drivespace", "http://app.test")

	assert.Equal(t, "A file was shared with you on Drivespace", subject)
	assert.Contains(t, body, `"report.pdf" was shared with you on Drivespace.`)
	assert.Contains(t, body, "http://app.test")
	assert.Contains(t, body, "The Drivespace team")
}
