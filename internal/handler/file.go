package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/drivespace/drivespace/internal/cache"
	"github.com/drivespace/drivespace/internal/ctxkeys"
	"github.com/drivespace/drivespace/internal/model"
	"github.com/drivespace/drivespace/internal/repository"
	"github.com/drivespace/drivespace/internal/service"
	"github.com/drivespace/drivespace/internal/validation"
)

// defaultRefreshPath is the UI region revalidated when a request does
// not name one.
const defaultRefreshPath = "/files"

type FileHandler struct {
	fileService   *service.FileService
	cache         *cache.Cache
	maxUploadSize int64
}

func NewFileHandler(fileService *service.FileService, cache *cache.Cache, maxUploadSize int64) *FileHandler {
	return &FileHandler{
		fileService:   fileService,
		cache:         cache,
		maxUploadSize: maxUploadSize,
	}
}

// Upload stores a new file for the authenticated user.
// Multipart form: "file" (required), "path" (UI region to refresh).
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+1<<20)
	err := r.ParseMultipartForm(32 << 20)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer func() { _ = file.Close() }()

	err = validation.ValidateUpload(header.Filename, header.Size, h.maxUploadSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.fileService.Upload(r.Context(), service.UploadInput{
		OwnerID:   user.ID,
		AccountID: user.AccountID,
		FileName:  header.Filename,
		Size:      header.Size,
		Body:      file,
		Path:      refreshPath(r.FormValue("path")),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List returns the files visible to the authenticated user.
// Query params: types (comma-separated), search, sort, limit.
// Responses are cached per user and revalidated by mutating actions.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	// Cache key is user-scoped so one user's listing never leaks into
	// another's.
	cacheQuery := user.ID + "|" + r.URL.RawQuery
	if body := h.cache.Get(r.Context(), r.URL.Path, cacheQuery); body != nil {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
		return
	}

	files, err := h.fileService.Files(r.Context(), user, parseFileFilter(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if files == nil {
		files = []*model.File{}
	}

	body, err := json.Marshal(map[string]any{"files": files, "total": len(files)})
	if err != nil {
		slog.Error("failed to encode file list", "error", err)
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	h.cache.Set(r.Context(), r.URL.Path, cacheQuery, body)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

type renameRequest struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	Path      string `json:"path"`
}

// Rename updates a file's name, leaving its extension as given.
func (h *FileHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err = validation.ValidateFileName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fileID := r.PathValue("id")
	if _, ok := h.ownedFile(w, r, fileID); !ok {
		return
	}

	file, err := h.fileService.Rename(r.Context(), fileID, req.Name, req.Extension, refreshPath(req.Path))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

type shareRequest struct {
	Emails []string `json:"emails"`
	Path   string   `json:"path"`
}

// UpdateSharing replaces the file's entire shared-email set.
func (h *FileHandler) UpdateSharing(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, email := range req.Emails {
		err = validation.ValidateEmail(email)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	fileID := r.PathValue("id")
	if _, ok := h.ownedFile(w, r, fileID); !ok {
		return
	}

	file, err := h.fileService.UpdateSharing(r.Context(), fileID, req.Emails, refreshPath(req.Path))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

// Delete removes a file record and its blob.
// Query params: bucketFileId (must match the record's), path.
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	fileID := r.PathValue("id")
	file, ok := h.ownedFile(w, r, fileID)
	if !ok {
		return
	}

	// The blob key always comes from the record. Shared users see
	// bucketFileId in list responses, so a client-supplied key must
	// never reach the blob store: accepting one would let any viewer
	// of a shared file delete another file's blob.
	if key := r.URL.Query().Get("bucketFileId"); key != "" && key != file.BucketFileID {
		writeError(w, http.StatusBadRequest, "bucketFileId does not match file")
		return
	}

	err := h.fileService.Delete(r.Context(), fileID, file.BucketFileID, refreshPath(r.URL.Query().Get("path")))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Usage reports per-category storage totals against the fixed quota.
func (h *FileHandler) Usage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	summary, err := h.fileService.TotalSpaceUsed(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Download answers with a short-lived presigned URL for the blob.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	url, err := h.fileService.DownloadURL(r.Context(), user, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// ownedFile fetches the file and requires the requester to be its
// owner. Sharing grants visibility, not ownership; mutations answer
// 404 for non-owners so file ids are not probeable.
func (h *FileHandler) ownedFile(w http.ResponseWriter, r *http.Request, fileID string) (*model.File, bool) {
	user := ctxkeys.User(r.Context())

	file, err := h.fileService.File(r.Context(), fileID)
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	if file.OwnerID != user.ID {
		writeServiceError(w, repository.ErrFileNotFound)
		return nil, false
	}

	return file, true
}

func parseFileFilter(r *http.Request) repository.FileFilter {
	q := r.URL.Query()

	var types []model.FileType
	if raw := q.Get("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, model.FileType(t))
			}
		}
	}

	limit, _ := strconv.Atoi(q.Get("limit"))

	return repository.FileFilter{
		Types:  types,
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
		Limit:  limit,
	}
}

func refreshPath(path string) string {
	if path == "" {
		return defaultRefreshPath
	}
	return path
}
