package models

import (
	"time"
)

// ScanConfig describes what to scan and which thresholds apply
type ScanConfig struct {
	// RootPaths are the top-level paths to scan; a root may be a file
	RootPaths []string

	// Recursive controls descent into subdirectories
	Recursive bool

	// IncludeHidden includes dot-files and dot-directories
	IncludeHidden bool

	// MaxDepth limits directory depth per root (root = 0); nil = unlimited
	MaxDepth *int

	// ExcludePatterns are matched against entry names: exact substring
	// match, or suffix match when the pattern starts with "*"
	ExcludePatterns []string

	// ComputeHashes enables content digests for duplicate detection
	ComputeHashes bool

	// LargeFileThresholdMB is the large-file threshold in MiB
	LargeFileThresholdMB float64

	// StaleDaysThreshold is the staleness threshold in whole days
	StaleDaysThreshold int
}

// LargeFileThresholdBytes converts the MiB threshold to bytes
func (c *ScanConfig) LargeFileThresholdBytes() int64 {
	return int64(c.LargeFileThresholdMB * 1024 * 1024)
}

// Validate checks if the scan configuration is valid
func (c *ScanConfig) Validate() error {
	if len(c.RootPaths) == 0 {
		return &ValidationError{Field: "RootPaths", Message: "at least one root path is required"}
	}
	if c.LargeFileThresholdMB < 0 {
		return &ValidationError{Field: "LargeFileThresholdMB", Message: "must not be negative"}
	}
	if c.StaleDaysThreshold < 0 {
		return &ValidationError{Field: "StaleDaysThreshold", Message: "must not be negative"}
	}
	if c.MaxDepth != nil && *c.MaxDepth < 0 {
		return &ValidationError{Field: "MaxDepth", Message: "must not be negative"}
	}
	return nil
}

// ExtensionStats aggregates file count and size for one extension
type ExtensionStats struct {
	// Extension is the lowercase extension, "(no ext)" for files without one
	Extension string

	// Count is the number of files with this extension
	Count int

	// TotalSizeBytes is the cumulative size of those files
	TotalSizeBytes int64
}

// TotalSizeHuman returns the cumulative size in human-readable form
func (s *ExtensionStats) TotalSizeHuman() string {
	return FormatBytes(s.TotalSizeBytes)
}

// ScanSummary holds the aggregate statistics of a completed scan
type ScanSummary struct {
	TotalFiles       int
	TotalDirectories int
	TotalSizeBytes   int64
	EmptyDirectories int

	// FileTypes holds per-extension stats, sorted by cumulative size
	// descending and truncated to the top 20
	FileTypes []ExtensionStats

	// DeepestDepth is the deepest directory depth reached
	DeepestDepth int

	// Duration is the elapsed wall time of the scan
	Duration time.Duration
}

// TotalSizeHuman returns the total scanned size in human-readable form
func (s *ScanSummary) TotalSizeHuman() string {
	return FormatBytes(s.TotalSizeBytes)
}

// ScanResult is the complete output of one scan run
type ScanResult struct {
	// ScanID identifies this run
	ScanID string

	// Config is the configuration the scan ran with
	Config ScanConfig

	// StartedAt and CompletedAt bracket the run
	StartedAt   time.Time
	CompletedAt time.Time

	// Summary holds the aggregate statistics
	Summary ScanSummary

	// Files are the discovered files, in traversal order
	Files []FileRecord

	// Directories are the discovered directories; a directory always
	// follows all of its contents in this list
	Directories []DirectoryRecord
}

// IsComplete reports whether the scan finished
func (r *ScanResult) IsComplete() bool {
	return !r.CompletedAt.IsZero()
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
