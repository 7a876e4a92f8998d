package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// FileType is the storage category a file is grouped under.
type FileType string

const (
	FileTypeDocument FileType = "document"
	FileTypeImage    FileType = "image"
	FileTypeVideo    FileType = "video"
	FileTypeAudio    FileType = "audio"
	FileTypeOther    FileType = "other"
)

// FileTypes lists every category in display order.
var FileTypes = []FileType{
	FileTypeDocument,
	FileTypeImage,
	FileTypeVideo,
	FileTypeAudio,
	FileTypeOther,
}

var extensionTypes = map[string]FileType{
	// documents
	"pdf": FileTypeDocument, "doc": FileTypeDocument, "docx": FileTypeDocument,
	"txt": FileTypeDocument, "rtf": FileTypeDocument, "md": FileTypeDocument,
	"xls": FileTypeDocument, "xlsx": FileTypeDocument, "csv": FileTypeDocument,
	"ppt": FileTypeDocument, "pptx": FileTypeDocument, "odt": FileTypeDocument,
	// images
	"jpg": FileTypeImage, "jpeg": FileTypeImage, "png": FileTypeImage,
	"gif": FileTypeImage, "webp": FileTypeImage, "svg": FileTypeImage,
	"bmp": FileTypeImage, "heic": FileTypeImage,
	// video
	"mp4": FileTypeVideo, "mov": FileTypeVideo, "avi": FileTypeVideo,
	"mkv": FileTypeVideo, "webm": FileTypeVideo, "wmv": FileTypeVideo,
	// audio
	"mp3": FileTypeAudio, "wav": FileTypeAudio, "ogg": FileTypeAudio,
	"flac": FileTypeAudio, "aac": FileTypeAudio, "m4a": FileTypeAudio,
}

// TypeFromName classifies a file by its extension. Unrecognized
// extensions (and files without one) classify as FileTypeOther.
func TypeFromName(name string) (FileType, string) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return FileTypeOther, ""
	}
	t, ok := extensionTypes[ext]
	if !ok {
		return FileTypeOther, ext
	}
	return t, ext
}

// EmailList is the set of emails a file is shared with, stored as a
// JSON array column so it can be replaced in a single update.
type EmailList []string

func (e EmailList) Value() (driver.Value, error) {
	if e == nil {
		e = EmailList{}
	}
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (e *EmailList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*e = EmailList{}
		return nil
	case string:
		return json.Unmarshal([]byte(v), e)
	case []byte:
		return json.Unmarshal(v, e)
	default:
		return fmt.Errorf("cannot scan %T into EmailList", src)
	}
}

// Contains reports whether email is in the list.
func (e EmailList) Contains(email string) bool {
	for _, v := range e {
		if v == email {
			return true
		}
	}
	return false
}

type File struct {
	ID           string    `db:"id" json:"id"`
	OwnerID      string    `db:"owner_id" json:"ownerId"` // set once at creation, never changed
	AccountID    string    `db:"account_id" json:"accountId"`
	Name         string    `db:"name" json:"name"`
	Extension    string    `db:"extension" json:"extension"`
	Type         FileType  `db:"type" json:"type"`
	URL          string    `db:"url" json:"url"`
	Size         int64     `db:"size" json:"size"`
	BucketFileID string    `db:"bucket_file_id" json:"bucketFileId"`
	Users        EmailList `db:"users" json:"users"` // emails granted read access
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// VisibleTo reports whether user may see this file: the owner, or
// anyone whose email appears in Users.
func (f *File) VisibleTo(user *User) bool {
	if user == nil {
		return false
	}
	return f.OwnerID == user.ID || f.Users.Contains(user.Email)
}
