package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/drivespace/drivespace/internal/model"
	"github.com/drivespace/drivespace/internal/repository"
	"github.com/drivespace/drivespace/internal/storage"
)

// ErrAuthRequired is returned when an action needing a current user is
// invoked without one. It is checked before any backend call is made.
var ErrAuthRequired = errors.New("authentication required")

// Revalidator invalidates cached responses for a UI path after a
// mutating action. Fire and forget; implementations never return errors.
type Revalidator interface {
	Revalidate(ctx context.Context, path string)
}

type FileService struct {
	fileRepo repository.FileRepository
	blobs    storage.BlobStore
	cache    Revalidator
	email    *EmailService
}

func NewFileService(fileRepo repository.FileRepository, blobs storage.BlobStore, cache Revalidator, email *EmailService) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		blobs:    blobs,
		cache:    cache,
		email:    email,
	}
}

// UploadInput describes one file upload request.
type UploadInput struct {
	OwnerID   string
	AccountID string
	FileName  string
	Size      int64
	Body      io.Reader
	Path      string // UI path to revalidate on success
}

// Upload stores the raw bytes as a blob, then records the file's
// metadata. The blob and the record are a pair: if the record cannot be
// created the just-stored blob is deleted before the error propagates,
// so no orphaned blob outlives the request.
func (s *FileService) Upload(ctx context.Context, in UploadInput) (*model.File, error) {
	fileType, ext := model.TypeFromName(in.FileName)

	key := "files/" + uuid.New().String()
	if ext != "" {
		key += "." + ext
	}

	err := s.blobs.Save(ctx, key, in.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to store blob: %w", err)
	}

	file := &model.File{
		ID:           uuid.New().String(),
		OwnerID:      in.OwnerID,
		AccountID:    in.AccountID,
		Name:         in.FileName,
		Extension:    ext,
		Type:         fileType,
		URL:          s.blobs.URL(key),
		Size:         in.Size,
		BucketFileID: key,
		Users:        model.EmailList{}, // no shares at creation time
	}

	err = s.fileRepo.Create(file)
	if err != nil {
		createErr := fmt.Errorf("failed to create file record: %w", err)
		delErr := s.blobs.Delete(ctx, key)
		if delErr != nil {
			// The blob is now orphaned; surface the cleanup failure
			// alongside the original so neither is lost.
			return nil, errors.Join(createErr, fmt.Errorf("failed to clean up blob %s: %w", key, delErr))
		}
		return nil, createErr
	}

	s.cache.Revalidate(ctx, in.Path)
	return file, nil
}

// File fetches a single file record by id.
func (s *FileService) File(ctx context.Context, fileID string) (*model.File, error) {
	file, err := s.fileRepo.ByID(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return file, nil
}

// Files lists every file visible to user, filtered and ordered by the
// given search request. Results come back from the query verbatim.
func (s *FileService) Files(ctx context.Context, user *model.User, filter repository.FileFilter) ([]*model.File, error) {
	if user == nil {
		return nil, ErrAuthRequired
	}

	files, err := s.fileRepo.Search(user, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return files, nil
}

// Rename updates only the file's name, composed from the new base name
// and the existing extension.
func (s *FileService) Rename(ctx context.Context, fileID, name, extension, path string) (*model.File, error) {
	fullName := name
	if extension != "" {
		fullName = name + "." + extension
	}

	err := s.fileRepo.Rename(fileID, fullName)
	if err != nil {
		return nil, fmt.Errorf("failed to rename file: %w", err)
	}

	file, err := s.fileRepo.ByID(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get renamed file: %w", err)
	}

	s.cache.Revalidate(ctx, path)
	return file, nil
}

// UpdateSharing replaces the file's entire shared-email set with
// emails. Not a merge: removed addresses lose access immediately.
// Newly granted addresses are notified by email, best effort.
func (s *FileService) UpdateSharing(ctx context.Context, fileID string, emails []string, path string) (*model.File, error) {
	previous, err := s.fileRepo.ByID(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}

	err = s.fileRepo.UpdateSharedWith(fileID, emails)
	if err != nil {
		return nil, fmt.Errorf("failed to update sharing: %w", err)
	}

	file, err := s.fileRepo.ByID(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shared file: %w", err)
	}

	var added []string
	for _, email := range emails {
		if !previous.Users.Contains(email) {
			added = append(added, email)
		}
	}
	if len(added) > 0 {
		err = s.email.SendFileSharedEmail(ctx, added, file.Name)
		if err != nil {
			slog.Error("failed to send share notification", "file_id", fileID, "error", err)
		}
	}

	s.cache.Revalidate(ctx, path)
	return file, nil
}

// Delete removes the file record, then its blob. The record goes
// first: if that fails the blob is left untouched and nothing changed.
// The two deletions are strictly sequential, never reordered.
func (s *FileService) Delete(ctx context.Context, fileID, bucketFileID, path string) error {
	err := s.fileRepo.Delete(fileID)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	err = s.blobs.Delete(ctx, bucketFileID)
	if err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	s.cache.Revalidate(ctx, path)
	return nil
}

// TotalSpaceUsed summarizes storage usage over the files user owns.
// Shared-in files do not count against anyone but their owner.
func (s *FileService) TotalSpaceUsed(ctx context.Context, user *model.User) (*model.StorageSummary, error) {
	if user == nil {
		return nil, ErrAuthRequired
	}

	files, err := s.fileRepo.AllOwnedBy(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned files: %w", err)
	}

	summary := model.NewStorageSummary()
	for _, file := range files {
		summary.Add(file)
	}

	return summary, nil
}

// DownloadURL returns a short-lived presigned URL for the file's blob,
// for the owner or anyone the file is shared with.
func (s *FileService) DownloadURL(ctx context.Context, user *model.User, fileID string) (string, error) {
	if user == nil {
		return "", ErrAuthRequired
	}

	file, err := s.fileRepo.ByID(fileID)
	if err != nil {
		return "", fmt.Errorf("failed to get file: %w", err)
	}
	if !file.VisibleTo(user) {
		return "", repository.ErrFileNotFound
	}

	url, err := s.blobs.DownloadURL(ctx, file.BucketFileID)
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}

	return url, nil
}
