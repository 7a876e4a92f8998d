package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeFromName(t *testing.T) {
	tests := []struct {
		name     string
		wantType FileType
		wantExt  string
	}{
		{name: "report.pdf", wantType: FileTypeDocument, wantExt: "pdf"},
		{name: "Notes.TXT", wantType: FileTypeDocument, wantExt: "txt"},
		{name: "photo.jpeg", wantType: FileTypeImage, wantExt: "jpeg"},
		{name: "clip.mp4", wantType: FileTypeVideo, wantExt: "mp4"},
		{name: "song.mp3", wantType: FileTypeAudio, wantExt: "mp3"},
		{name: "backup.tar.gz", wantType: FileTypeOther, wantExt: "gz"},
		{name: "archive.zip", wantType: FileTypeOther, wantExt: "zip"},
		{name: "README", wantType: FileTypeOther, wantExt: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotExt := TypeFromName(tt.name)
			assert.Equal(t, tt.wantType, gotType)
			assert.Equal(t, tt.wantExt, gotExt)
		})
	}
}

func TestEmailListScanValue(t *testing.T) {
	list := EmailList{"a@example.com", "b@example.com"}

	v, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a@example.com","b@example.com"]`, v)

	var scanned EmailList
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, list, scanned)

	var fromNil EmailList
	require.NoError(t, fromNil.Scan(nil))
	assert.Empty(t, fromNil)

	v, err = EmailList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)
}

func TestFileVisibleTo(t *testing.T) {
	file := &File{
		OwnerID: "owner-1",
		Users:   EmailList{"friend@example.com"},
	}

	assert.True(t, file.VisibleTo(&User{ID: "owner-1", Email: "me@example.com"}))
	assert.True(t, file.VisibleTo(&User{ID: "other", Email: "friend@example.com"}))
	assert.False(t, file.VisibleTo(&User{ID: "other", Email: "stranger@example.com"}))
	assert.False(t, file.VisibleTo(nil))
}
