package models

import (
	"fmt"
	"time"
)

// FileRecord holds the metadata of a single scanned file.
// Records are immutable once produced by the scanner; the content
// digest is the only field attached later, by the hasher.
type FileRecord struct {
	// Path is the absolute path of the file
	Path string

	// Name is the base name including extension
	Name string

	// Extension is the lowercase extension including the dot ("" if none)
	Extension string

	// SizeBytes is the file size in bytes
	SizeBytes int64

	// CreatedAt is the creation (birth) time where the platform provides
	// one, otherwise the inode change time
	CreatedAt time.Time

	// ModifiedAt is the last modification time
	ModifiedAt time.Time

	// AccessedAt is the last access time
	AccessedAt time.Time

	// Digest is the content digest, empty until computed
	Digest string
}

// SizeHuman returns the file size in human-readable form
func (f *FileRecord) SizeHuman() string {
	return FormatBytes(f.SizeBytes)
}

// DaysSinceAccess returns the whole-day difference between now and the
// last access time
func (f *FileRecord) DaysSinceAccess(now time.Time) int {
	return wholeDays(now, f.AccessedAt)
}

// DaysSinceModified returns the whole-day difference between now and the
// last modification time
func (f *FileRecord) DaysSinceModified(now time.Time) int {
	return wholeDays(now, f.ModifiedAt)
}

// DirectoryRecord holds the aggregate counters of a scanned directory.
// FileCount and SubdirCount cover direct children only; TotalSizeBytes
// accumulates the whole subtree below the directory.
type DirectoryRecord struct {
	// Path is the absolute path of the directory
	Path string

	// Name is the base name of the directory
	Name string

	// FileCount is the number of direct child files
	FileCount int

	// TotalSizeBytes is the cumulative size of all files in the subtree
	TotalSizeBytes int64

	// SubdirCount is the number of direct child directories
	SubdirCount int

	// Depth is the directory depth counted from its scan root (root = 0)
	Depth int
}

// IsEmpty reports whether the directory has no files and no subdirectories
func (d *DirectoryRecord) IsEmpty() bool {
	return d.FileCount == 0 && d.SubdirCount == 0
}

// TotalSizeHuman returns the subtree size in human-readable form
func (d *DirectoryRecord) TotalSizeHuman() string {
	return FormatBytes(d.TotalSizeBytes)
}

// FormatBytes formats a byte count in human-readable form
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// wholeDays returns the truncated whole-day difference between now and t
func wholeDays(now, t time.Time) int {
	d := now.Sub(t)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}
