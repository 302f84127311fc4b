// Package analyzer classifies scan output into actionable problem
// categories: duplicates, oversized files, stale files, chaotic names
// and empty directories.
package analyzer

import (
	"context"
	"sort"
	"time"

	"github.com/sdejongh/tidynorris/pkg/hasher"
	"github.com/sdejongh/tidynorris/pkg/logging"
	"github.com/sdejongh/tidynorris/pkg/models"
)

// HashProgressFunc receives progress while duplicate candidates are
// being hashed
type HashProgressFunc func(done, total int, path string)

// Analyzer runs the independent issue detectors over a scan result.
// It never mutates the ScanResult it is given.
type Analyzer struct {
	largeThresholdBytes int64
	staleDaysThreshold  int
	hasher              *hasher.Hasher
	logger              logging.Logger
	hashProgress        HashProgressFunc

	// now is swappable for deterministic staleness tests
	now func() time.Time
}

// New creates an analyzer with the given thresholds. The hasher is used
// only for duplicate candidates that survived the size pre-filter.
func New(largeThresholdMB float64, staleDaysThreshold int, h *hasher.Hasher, logger logging.Logger) *Analyzer {
	if h == nil {
		h = hasher.NewDefault()
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Analyzer{
		largeThresholdBytes: int64(largeThresholdMB * 1024 * 1024),
		staleDaysThreshold:  staleDaysThreshold,
		hasher:              h,
		logger:              logger,
		now:                 time.Now,
	}
}

// SetHashProgress installs an optional callback invoked once per hashed
// duplicate candidate
func (a *Analyzer) SetHashProgress(fn HashProgressFunc) {
	a.hashProgress = fn
}

// Analyze runs all detectors and returns their combined result.
// Detectors are independent of each other; duplicates are only detected
// when computeHashes is true.
func (a *Analyzer) Analyze(ctx context.Context, scan *models.ScanResult, computeHashes bool) *models.AnalysisResult {
	result := &models.AnalysisResult{
		ScanID:     scan.ScanID,
		AnalyzedAt: a.now(),
	}

	result.LargeFiles = a.detectLargeFiles(scan.Files)
	a.logger.Debug(ctx, "large file detection done", logging.Fields{"count": len(result.LargeFiles)})

	result.StaleFiles = a.detectStaleFiles(scan.Files)
	a.logger.Debug(ctx, "stale file detection done", logging.Fields{"count": len(result.StaleFiles)})

	result.ChaoticNaming = a.detectChaoticNaming(scan.Files)
	a.logger.Debug(ctx, "naming check done", logging.Fields{"count": len(result.ChaoticNaming)})

	result.EmptyDirectories = a.detectEmptyDirectories(scan.Directories)
	a.logger.Debug(ctx, "empty directory detection done", logging.Fields{"count": len(result.EmptyDirectories)})

	if computeHashes {
		result.Duplicates = a.detectDuplicates(ctx, scan.Files)
		a.logger.Debug(ctx, "duplicate detection done", logging.Fields{"groups": len(result.Duplicates)})
	}

	return result
}

// detectLargeFiles returns files at or above the size threshold, largest
// first
func (a *Analyzer) detectLargeFiles(files []models.FileRecord) []models.LargeFile {
	var large []models.LargeFile
	for i := range files {
		f := &files[i]
		if f.SizeBytes >= a.largeThresholdBytes {
			large = append(large, models.LargeFile{
				Path:       f.Path,
				SizeBytes:  f.SizeBytes,
				Extension:  f.Extension,
				ModifiedAt: f.ModifiedAt,
			})
		}
	}
	sort.Slice(large, func(i, j int) bool {
		if large[i].SizeBytes != large[j].SizeBytes {
			return large[i].SizeBytes > large[j].SizeBytes
		}
		return large[i].Path < large[j].Path
	})
	return large
}

// detectStaleFiles returns files unaccessed for at least the day
// threshold, stalest first
func (a *Analyzer) detectStaleFiles(files []models.FileRecord) []models.StaleFile {
	now := a.now()
	var stale []models.StaleFile
	for i := range files {
		f := &files[i]
		days := f.DaysSinceAccess(now)
		if days >= a.staleDaysThreshold {
			stale = append(stale, models.StaleFile{
				Path:         f.Path,
				SizeBytes:    f.SizeBytes,
				LastAccessed: f.AccessedAt,
				DaysStale:    days,
				Extension:    f.Extension,
			})
		}
	}
	sort.Slice(stale, func(i, j int) bool {
		if stale[i].DaysStale != stale[j].DaysStale {
			return stale[i].DaysStale > stale[j].DaysStale
		}
		return stale[i].Path < stale[j].Path
	})
	return stale
}

// detectChaoticNaming returns files carrying at least one naming issue
// tag
func (a *Analyzer) detectChaoticNaming(files []models.FileRecord) []models.ChaoticNaming {
	var chaotic []models.ChaoticNaming
	for i := range files {
		f := &files[i]
		issues := checkNamingIssues(f.Name)
		if len(issues) > 0 {
			chaotic = append(chaotic, models.ChaoticNaming{Path: f.Path, Issues: issues})
		}
	}
	return chaotic
}

// detectEmptyDirectories returns directories with no direct files and no
// subdirectories
func (a *Analyzer) detectEmptyDirectories(dirs []models.DirectoryRecord) []models.EmptyDirectory {
	var empty []models.EmptyDirectory
	for i := range dirs {
		d := &dirs[i]
		if d.IsEmpty() {
			empty = append(empty, models.EmptyDirectory{Path: d.Path, Depth: d.Depth})
		}
	}
	return empty
}

// detectDuplicates groups byte-identical files in two phases: group by
// exact size first (singleton groups are rejected without any I/O), then
// hash the survivors and group by digest. Files whose digest is
// unavailable are omitted rather than guessed at.
func (a *Analyzer) detectDuplicates(ctx context.Context, files []models.FileRecord) []models.DuplicateGroup {
	sizeGroups := make(map[int64][]*models.FileRecord)
	for i := range files {
		f := &files[i]
		if f.SizeBytes > 0 {
			sizeGroups[f.SizeBytes] = append(sizeGroups[f.SizeBytes], f)
		}
	}

	candidates := 0
	for _, group := range sizeGroups {
		if len(group) >= 2 {
			candidates += len(group)
		}
	}

	hashGroups := make(map[string][]string)
	sizeByDigest := make(map[string]int64)
	done := 0

	for size, group := range sizeGroups {
		if len(group) < 2 {
			continue
		}
		for _, f := range group {
			digest, err := a.hasher.Sum(ctx, f.Path)
			done++
			if a.hashProgress != nil {
				a.hashProgress(done, candidates, f.Path)
			}
			if err != nil {
				a.logger.Warn(ctx, "digest unavailable, excluding from duplicate grouping", logging.Fields{
					"path": f.Path, "error": err.Error(),
				})
				continue
			}
			hashGroups[digest] = append(hashGroups[digest], f.Path)
			sizeByDigest[digest] = size
		}
	}

	var groups []models.DuplicateGroup
	for digest, paths := range hashGroups {
		if len(paths) >= 2 {
			groups = append(groups, models.DuplicateGroup{
				Digest:    digest,
				SizeBytes: sizeByDigest[digest],
				Files:     paths,
			})
		}
	}

	sort.Slice(groups, func(i, j int) bool {
		wi, wj := groups[i].WastedBytes(), groups[j].WastedBytes()
		if wi != wj {
			return wi > wj
		}
		return groups[i].Digest < groups[j].Digest
	})
	return groups
}
