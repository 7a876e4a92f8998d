package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivespace/drivespace/internal/cache"
	"github.com/drivespace/drivespace/internal/ctxkeys"
	"github.com/drivespace/drivespace/internal/model"
	"github.com/drivespace/drivespace/internal/repository"
	"github.com/drivespace/drivespace/internal/service"
)

type stubFileRepo struct {
	files   map[string]*model.File
	deleted []string
}

func (r *stubFileRepo) Create(file *model.File) error { return nil }

func (r *stubFileRepo) ByID(id string) (*model.File, error) {
	file, ok := r.files[id]
	if !ok {
		return nil, repository.ErrFileNotFound
	}
	copied := *file
	return &copied, nil
}

func (r *stubFileRepo) Rename(id, name string) error { return nil }

func (r *stubFileRepo) UpdateSharedWith(id string, emails model.EmailList) error { return nil }

func (r *stubFileRepo) Delete(id string) error {
	if _, ok := r.files[id]; !ok {
		return repository.ErrFileNotFound
	}
	r.deleted = append(r.deleted, id)
	delete(r.files, id)
	return nil
}

func (r *stubFileRepo) Search(user *model.User, filter repository.FileFilter) ([]*model.File, error) {
	return nil, nil
}

func (r *stubFileRepo) AllOwnedBy(ownerID string) ([]*model.File, error) { return nil, nil }

type stubBlobStore struct {
	deleted []string
}

func (b *stubBlobStore) Save(ctx context.Context, key string, body io.Reader) error { return nil }

func (b *stubBlobStore) Delete(ctx context.Context, key string) error {
	b.deleted = append(b.deleted, key)
	return nil
}

func (b *stubBlobStore) URL(key string) string { return "https://blobs.test/" + key }

func (b *stubBlobStore) DownloadURL(ctx context.Context, key string) (string, error) {
	return "https://blobs.test/signed/" + key, nil
}

func newTestFileHandler(files ...*model.File) (*FileHandler, *stubFileRepo, *stubBlobStore) {
	repo := &stubFileRepo{files: map[string]*model.File{}}
	for _, f := range files {
		repo.files[f.ID] = f
	}
	blobs := &stubBlobStore{}
	noCache := cache.New("", "", 0)
	email := service.NewEmailService("", "noreply@test", "http://app.test", "Drivespace", true)
	fileService := service.NewFileService(repo, blobs, noCache, email)
	return NewFileHandler(fileService, noCache, 50<<20), repo, blobs
}

func deleteRequest(user *model.User, fileID, rawQuery string, h *FileHandler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/files/"+fileID+"?"+rawQuery, nil)
	req.SetPathValue("id", fileID)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), user))
	rec := httptest.NewRecorder()
	h.Delete(rec, req)
	return rec
}

func TestDeleteUsesStoredBlobKey(t *testing.T) {
	owner := &model.User{ID: "owner-1", Email: "owner@example.com"}
	h, repo, blobs := newTestFileHandler(&model.File{
		ID: "f1", OwnerID: "owner-1", BucketFileID: "files/abc.pdf",
	})

	rec := deleteRequest(owner, "f1", "", h)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"f1"}, repo.deleted)
	assert.Equal(t, []string{"files/abc.pdf"}, blobs.deleted)
}

func TestDeleteRejectsForeignBlobKey(t *testing.T) {
	// A shared user sees bucketFileId in list responses, so a
	// client-supplied key naming another file's blob must never reach
	// the blob store.
	owner := &model.User{ID: "owner-1", Email: "owner@example.com"}
	h, repo, blobs := newTestFileHandler(
		&model.File{ID: "f1", OwnerID: "owner-1", BucketFileID: "files/abc.pdf"},
		&model.File{ID: "f2", OwnerID: "victim-1", BucketFileID: "files/victim.pdf"},
	)

	rec := deleteRequest(owner, "f1", "bucketFileId=files/victim.pdf", h)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, repo.deleted, "record must survive a mismatching blob key")
	assert.Empty(t, blobs.deleted, "no blob may be touched")

	_, err := repo.ByID("f1")
	require.NoError(t, err)
}

func TestDeleteAcceptsMatchingBlobKey(t *testing.T) {
	owner := &model.User{ID: "owner-1", Email: "owner@example.com"}
	h, _, blobs := newTestFileHandler(&model.File{
		ID: "f1", OwnerID: "owner-1", BucketFileID: "files/abc.pdf",
	})

	rec := deleteRequest(owner, "f1", "bucketFileId=files%2Fabc.pdf", h)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"files/abc.pdf"}, blobs.deleted)
}

func TestParseFileFilter(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want repository.FileFilter
	}{
		{
			name: "empty query",
			url:  "/files",
			want: repository.FileFilter{},
		},
		{
			name: "single type",
			url:  "/files?types=document",
			want: repository.FileFilter{Types: []model.FileType{model.FileTypeDocument}},
		},
		{
			name: "multiple types with spaces",
			url:  "/files?types=image,%20video",
			want: repository.FileFilter{Types: []model.FileType{model.FileTypeImage, model.FileTypeVideo}},
		},
		{
			name: "empty type segments dropped",
			url:  "/files?types=audio,,",
			want: repository.FileFilter{Types: []model.FileType{model.FileTypeAudio}},
		},
		{
			name: "search sort and limit",
			url:  "/files?search=tax&sort=size-desc&limit=10",
			want: repository.FileFilter{Search: "tax", Sort: "size-desc", Limit: 10},
		},
		{
			name: "non-numeric limit ignored",
			url:  "/files?limit=lots",
			want: repository.FileFilter{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			assert.Equal(t, tt.want, parseFileFilter(r))
		})
	}
}

func TestRefreshPath(t *testing.T) {
	assert.Equal(t, "/files", refreshPath(""))
	assert.Equal(t, "/files/images", refreshPath("/files/images"))
}
