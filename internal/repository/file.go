package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/drivespace/drivespace/internal/model"
)

var (
	ErrFileNotFound = errors.New("file not found")
)

type FileRepository interface {
	Create(file *model.File) error
	ByID(id string) (*model.File, error)
	Rename(id, name string) error
	UpdateSharedWith(id string, emails model.EmailList) error
	Delete(id string) error
	Search(user *model.User, filter FileFilter) ([]*model.File, error)
	AllOwnedBy(ownerID string) ([]*model.File, error)
}

type fileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(file *model.File) error {
	now := time.Now().UTC()
	file.CreatedAt = now
	file.UpdatedAt = now
	if file.Users == nil {
		file.Users = model.EmailList{}
	}

	query := `INSERT INTO files (id, owner_id, account_id, name, extension, type, url, size, bucket_file_id, users, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(query,
		file.ID,
		file.OwnerID,
		file.AccountID,
		file.Name,
		file.Extension,
		file.Type,
		file.URL,
		file.Size,
		file.BucketFileID,
		file.Users,
		file.CreatedAt,
		file.UpdatedAt,
	)

	return err
}

func (r *fileRepository) ByID(id string) (*model.File, error) {
	file := &model.File{}
	query := `SELECT * FROM files WHERE id = $1`

	err := r.db.Get(file, query, id)
	if noRows(err) {
		return nil, ErrFileNotFound
	}

	return file, err
}

func (r *fileRepository) Rename(id, name string) error {
	query := `UPDATE files SET name = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, name, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	return requireRow(result)
}

func (r *fileRepository) UpdateSharedWith(id string, emails model.EmailList) error {
	if emails == nil {
		emails = model.EmailList{}
	}
	query := `UPDATE files SET users = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, emails, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	return requireRow(result)
}

func (r *fileRepository) Delete(id string) error {
	query := `DELETE FROM files WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	return requireRow(result)
}

// Search runs the built query verbatim; all filtering happens in SQL,
// nothing is post-filtered in Go.
func (r *fileRepository) Search(user *model.User, filter FileFilter) ([]*model.File, error) {
	query, args := buildFileQuery(user, filter, r.db.DriverName())

	var files []*model.File
	err := r.db.Select(&files, query, args...)
	if err != nil {
		return nil, err
	}

	return files, nil
}

// AllOwnedBy fetches every file the user owns, shared-in files
// excluded. Storage usage is computed over this set only.
func (r *fileRepository) AllOwnedBy(ownerID string) ([]*model.File, error) {
	var files []*model.File
	query := `SELECT * FROM files WHERE owner_id = $1`

	err := r.db.Select(&files, query, ownerID)
	if err != nil {
		return nil, err
	}

	return files, nil
}

// noRows reports a no-rows result, wrapped or not.
func noRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrFileNotFound
	}
	return nil
}
