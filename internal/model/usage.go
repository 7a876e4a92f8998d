package model

import (
	"time"
)

// TotalCapacity is the fixed storage quota reported to every user: 2 GiB.
// It is display-only; nothing in this module enforces it.
const TotalCapacity int64 = 2 * 1024 * 1024 * 1024

// TypeUsage is the running total for one file category.
type TypeUsage struct {
	Size   int64     `json:"size"`
	Latest time.Time `json:"latestDate"` // zero when the category has no files
}

// StorageSummary reports per-category usage against the fixed quota.
// Computed fresh per request, never persisted.
type StorageSummary struct {
	ByType map[FileType]TypeUsage `json:"byType"`
	Used   int64                  `json:"used"`
	All    int64                  `json:"all"`
}

// NewStorageSummary returns a summary with every category present at zero.
func NewStorageSummary() *StorageSummary {
	byType := make(map[FileType]TypeUsage, len(FileTypes))
	for _, t := range FileTypes {
		byType[t] = TypeUsage{}
	}
	return &StorageSummary{
		ByType: byType,
		All:    TotalCapacity,
	}
}

// Add folds one file into the summary. Unknown categories count as
// FileTypeOther so a stale record can never be dropped from the total.
func (s *StorageSummary) Add(f *File) {
	t := f.Type
	if _, ok := s.ByType[t]; !ok {
		t = FileTypeOther
	}

	usage := s.ByType[t]
	usage.Size += f.Size
	if usage.Latest.IsZero() || f.UpdatedAt.After(usage.Latest) {
		usage.Latest = f.UpdatedAt
	}
	s.ByType[t] = usage
	s.Used += f.Size
}
