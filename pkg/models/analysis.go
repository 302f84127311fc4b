package models

import (
	"time"
)

// DuplicateGroup is a set of byte-identical files sharing one digest
type DuplicateGroup struct {
	// Digest is the shared content digest
	Digest string

	// SizeBytes is the size of each member
	SizeBytes int64

	// Files are the absolute paths of the members, always >= 2
	Files []string
}

// Count returns the number of members
func (g *DuplicateGroup) Count() int {
	return len(g.Files)
}

// WastedBytes returns the bytes reclaimable by keeping one copy
func (g *DuplicateGroup) WastedBytes() int64 {
	return int64(g.Count()-1) * g.SizeBytes
}

// WastedHuman returns the reclaimable bytes in human-readable form
func (g *DuplicateGroup) WastedHuman() string {
	return FormatBytes(g.WastedBytes())
}

// LargeFile is a file at or above the large-file threshold
type LargeFile struct {
	Path       string    `json:"path"`
	SizeBytes  int64     `json:"size_bytes"`
	Extension  string    `json:"extension"`
	ModifiedAt time.Time `json:"modified_at"`
}

// SizeHuman returns the size in human-readable form
func (f *LargeFile) SizeHuman() string {
	return FormatBytes(f.SizeBytes)
}

// StaleFile is a file unaccessed for at least the staleness threshold
type StaleFile struct {
	Path         string    `json:"path"`
	SizeBytes    int64     `json:"size_bytes"`
	LastAccessed time.Time `json:"last_accessed"`
	DaysStale    int       `json:"days_stale"`
	Extension    string    `json:"extension"`
}

// SizeHuman returns the size in human-readable form
func (f *StaleFile) SizeHuman() string {
	return FormatBytes(f.SizeBytes)
}

// ChaoticNaming is a file carrying one or more naming issue tags
type ChaoticNaming struct {
	Path   string   `json:"path"`
	Issues []string `json:"issues"`
}

// EmptyDirectory is a directory with no files and no subdirectories
type EmptyDirectory struct {
	Path  string
	Depth int
}

// AnalysisResult is the complete output of analyzing one scan
type AnalysisResult struct {
	// ScanID ties the analysis back to the scan it consumed
	ScanID string

	// AnalyzedAt is when the analysis ran
	AnalyzedAt time.Time

	Duplicates       []DuplicateGroup
	LargeFiles       []LargeFile
	StaleFiles       []StaleFile
	ChaoticNaming    []ChaoticNaming
	EmptyDirectories []EmptyDirectory
}

// TotalWastedByDuplicates returns the bytes reclaimable across all groups
func (r *AnalysisResult) TotalWastedByDuplicates() int64 {
	var total int64
	for i := range r.Duplicates {
		total += r.Duplicates[i].WastedBytes()
	}
	return total
}

// TotalLargeFilesSize returns the cumulative size of all large files
func (r *AnalysisResult) TotalLargeFilesSize() int64 {
	var total int64
	for i := range r.LargeFiles {
		total += r.LargeFiles[i].SizeBytes
	}
	return total
}

// TotalStaleFilesSize returns the cumulative size of all stale files
func (r *AnalysisResult) TotalStaleFilesSize() int64 {
	var total int64
	for i := range r.StaleFiles {
		total += r.StaleFiles[i].SizeBytes
	}
	return total
}

// HasIssues reports whether any detector found anything
func (r *AnalysisResult) HasIssues() bool {
	return len(r.Duplicates) > 0 ||
		len(r.LargeFiles) > 0 ||
		len(r.StaleFiles) > 0 ||
		len(r.ChaoticNaming) > 0 ||
		len(r.EmptyDirectories) > 0
}

// IssueSummary returns per-category counts
func (r *AnalysisResult) IssueSummary() map[string]int {
	return map[string]int{
		"duplicates":        len(r.Duplicates),
		"large_files":       len(r.LargeFiles),
		"stale_files":       len(r.StaleFiles),
		"chaotic_naming":    len(r.ChaoticNaming),
		"empty_directories": len(r.EmptyDirectories),
	}
}
