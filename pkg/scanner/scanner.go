// Package scanner walks one or more root paths depth-first and produces
// a stream of file and directory records plus running aggregate
// statistics.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sdejongh/tidynorris/internal/platform"
	"github.com/sdejongh/tidynorris/pkg/logging"
	"github.com/sdejongh/tidynorris/pkg/models"
)

// topFileTypes is the number of per-extension entries kept in the summary
const topFileTypes = 20

// ProgressFunc receives the running file count and the path of each file
// as it is discovered. It must not block traversal for long and must not
// mutate scanner state.
type ProgressFunc func(count int, path string)

// Scanner walks a set of roots according to a ScanConfig
type Scanner struct {
	config models.ScanConfig
	logger logging.Logger

	fileCount    int
	dirCount     int
	totalSize    int64
	deepestDepth int
	typeStats    map[string]*models.ExtensionStats
}

// New creates a scanner for the given configuration
func New(config models.ScanConfig, logger logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Scanner{
		config:    config,
		logger:    logger,
		typeStats: make(map[string]*models.ExtensionStats),
	}
}

// frame is one pending directory on the explicit traversal stack.
// Keeping the stack explicit bounds call depth on deep trees and makes
// interruption a matter of no longer popping frames.
type frame struct {
	path    string
	name    string
	depth   int
	entries []os.DirEntry
	next    int

	fileCount   int
	subdirCount int
	totalSize   int64
}

// Scan visits every root and returns the accumulated result.
// Individual entry errors are logged and skipped; a nonexistent root is
// skipped too. Only the total absence of any valid root is an error.
// If the context is cancelled mid-walk, the partial result gathered so
// far is returned along with the context error; the caller decides
// whether to use or discard it.
func (s *Scanner) Scan(ctx context.Context, progress ProgressFunc) (*models.ScanResult, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	result := &models.ScanResult{
		ScanID:    newScanID(),
		Config:    s.config,
		StartedAt: time.Now(),
	}

	validRoots := 0
	for _, root := range s.config.RootPaths {
		info, err := os.Stat(root)
		if err != nil {
			s.logger.Warn(ctx, "root path not accessible, skipping", logging.Fields{
				"path": root, "error": err.Error(),
			})
			continue
		}
		validRoots++

		if info.IsDir() {
			s.walkDirectory(ctx, root, result, progress)
		} else {
			s.recordFile(result, s.scanFile(root, info), progress)
		}

		if ctx.Err() != nil {
			break
		}
	}

	if validRoots == 0 {
		return nil, fmt.Errorf("no valid root path among %d configured", len(s.config.RootPaths))
	}

	result.CompletedAt = time.Now()
	result.Summary = s.summarize(result)
	return result, ctx.Err()
}

// walkDirectory traverses one root depth-first using an explicit stack.
// A directory's own record is emitted only after all of its descendants,
// which callers may rely on.
func (s *Scanner) walkDirectory(ctx context.Context, root string, result *models.ScanResult, progress ProgressFunc) {
	top, ok := s.readFrame(ctx, root, 0)
	if !ok {
		return
	}
	stack := []*frame{top}

	for len(stack) > 0 {
		if ctx.Err() != nil {
			return
		}

		f := stack[len(stack)-1]

		if f.next >= len(f.entries) {
			// Directory fully visited: emit its record and fold its
			// subtree size into the parent.
			result.Directories = append(result.Directories, models.DirectoryRecord{
				Path:           f.path,
				Name:           f.name,
				FileCount:      f.fileCount,
				TotalSizeBytes: f.totalSize,
				SubdirCount:    f.subdirCount,
				Depth:          f.depth,
			})
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				stack[len(stack)-1].totalSize += f.totalSize
			}
			continue
		}

		entry := f.entries[f.next]
		f.next++

		name := entry.Name()
		if !s.config.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if s.shouldExclude(name) {
			continue
		}

		fullPath := filepath.Join(f.path, name)

		if s.entryIsDir(entry, fullPath) {
			if !s.config.Recursive {
				continue
			}
			f.subdirCount++
			s.dirCount++

			childDepth := f.depth + 1
			if s.config.MaxDepth != nil && childDepth > *s.config.MaxDepth {
				continue
			}
			if childDepth > s.deepestDepth {
				s.deepestDepth = childDepth
			}

			child, ok := s.readFrame(ctx, fullPath, childDepth)
			if !ok {
				continue
			}
			stack = append(stack, child)
			continue
		}

		info, err := os.Stat(fullPath)
		if err != nil {
			s.logger.Warn(ctx, "cannot access file", logging.Fields{
				"path": fullPath, "error": err.Error(),
			})
			continue
		}

		record := s.scanFile(fullPath, info)
		f.fileCount++
		f.totalSize += record.SizeBytes
		s.recordFile(result, record, progress)
	}
}

// readFrame enumerates a directory into a new stack frame.
// Unreadable directories are logged and skipped; no record is emitted
// for them.
func (s *Scanner) readFrame(ctx context.Context, path string, depth int) (*frame, bool) {
	entries, err := os.ReadDir(path)
	if err != nil {
		s.logger.Warn(ctx, "cannot access directory", logging.Fields{
			"path": path, "error": err.Error(),
		})
		return nil, false
	}
	return &frame{
		path:    path,
		name:    filepath.Base(path),
		depth:   depth,
		entries: entries,
	}, true
}

// entryIsDir reports whether a directory entry is a directory, following
// symlinks the way the rest of the walk does
func (s *Scanner) entryIsDir(entry os.DirEntry, fullPath string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink != 0 {
		if info, err := os.Stat(fullPath); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// scanFile turns a stat result into an immutable file record
func (s *Scanner) scanFile(path string, info os.FileInfo) models.FileRecord {
	times := platform.Times(info)
	return models.FileRecord{
		Path:       path,
		Name:       filepath.Base(path),
		Extension:  strings.ToLower(filepath.Ext(path)),
		SizeBytes:  info.Size(),
		CreatedAt:  times.Created,
		ModifiedAt: times.Modified,
		AccessedAt: times.Accessed,
	}
}

// recordFile appends a file record and updates the running aggregates
func (s *Scanner) recordFile(result *models.ScanResult, record models.FileRecord, progress ProgressFunc) {
	s.fileCount++
	s.totalSize += record.SizeBytes
	s.updateTypeStats(record.Extension, record.SizeBytes)

	result.Files = append(result.Files, record)

	if progress != nil {
		progress(s.fileCount, record.Path)
	}
}

// shouldExclude matches an entry name against the exclude patterns:
// suffix match for "*"-prefixed patterns, substring match otherwise
func (s *Scanner) shouldExclude(name string) bool {
	for _, pattern := range s.config.ExcludePatterns {
		if pattern == "" {
			continue
		}
		if strings.HasPrefix(pattern, "*") {
			if strings.HasSuffix(name, pattern[1:]) {
				return true
			}
		} else if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}

func (s *Scanner) updateTypeStats(extension string, size int64) {
	ext := extension
	if ext == "" {
		ext = "(no ext)"
	}
	stats, ok := s.typeStats[ext]
	if !ok {
		stats = &models.ExtensionStats{Extension: ext}
		s.typeStats[ext] = stats
	}
	stats.Count++
	stats.TotalSizeBytes += size
}

// summarize finalizes the running aggregates into a ScanSummary
func (s *Scanner) summarize(result *models.ScanResult) models.ScanSummary {
	emptyDirs := 0
	for i := range result.Directories {
		if result.Directories[i].IsEmpty() {
			emptyDirs++
		}
	}

	types := make([]models.ExtensionStats, 0, len(s.typeStats))
	for _, stats := range s.typeStats {
		types = append(types, *stats)
	}
	sort.Slice(types, func(i, j int) bool {
		if types[i].TotalSizeBytes != types[j].TotalSizeBytes {
			return types[i].TotalSizeBytes > types[j].TotalSizeBytes
		}
		return types[i].Extension < types[j].Extension
	})
	if len(types) > topFileTypes {
		types = types[:topFileTypes]
	}

	return models.ScanSummary{
		TotalFiles:       s.fileCount,
		TotalDirectories: s.dirCount,
		TotalSizeBytes:   s.totalSize,
		EmptyDirectories: emptyDirs,
		FileTypes:        types,
		DeepestDepth:     s.deepestDepth,
		Duration:         result.CompletedAt.Sub(result.StartedAt),
	}
}

// newScanID returns a short random identifier for one scan run
func newScanID() string {
	return uuid.New().String()[:8]
}
