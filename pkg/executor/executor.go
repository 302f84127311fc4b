// Package executor applies organization plans and cleanup decisions to
// the filesystem: moves with conflict resolution, deletions with
// optional backup, and an audit log of every mutation. Nothing here
// silently destroys data; dry-run mode touches nothing at all.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/sdejongh/tidynorris/pkg/logging"
	"github.com/sdejongh/tidynorris/pkg/models"
)

// ConfirmFunc is an optional per-operation gate. Returning false skips
// the operation without counting it as failed.
type ConfirmFunc func(entry models.PlanEntry) bool

// Executor performs filesystem mutations sequentially
type Executor struct {
	dryRun    bool
	backupDir string
	log       *OperationLog
	logger    logging.Logger
	confirm   ConfirmFunc

	// now is swappable for deterministic backup names in tests
	now func() time.Time
}

// New creates an executor. In dry-run mode every operation is reported
// as success without touching the filesystem.
func New(dryRun bool, backupDir, opLogPath string, logger logging.Logger) *Executor {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Executor{
		dryRun:    dryRun,
		backupDir: backupDir,
		log:       NewOperationLog(opLogPath),
		logger:    logger,
		now:       time.Now,
	}
}

// SetConfirm installs the optional per-operation confirmation gate
func (e *Executor) SetConfirm(fn ConfirmFunc) {
	e.confirm = fn
}

// Log exposes the operation log for reporting
func (e *Executor) Log() *OperationLog {
	return e.log
}

// Move moves a file to target, creating the target's parent directories
// and resolving name conflicts by suffixing "_<n>" before the extension.
// Failures are returned, not raised: a failed move never aborts the
// rest of a plan.
func (e *Executor) Move(ctx context.Context, source, target string) error {
	if e.dryRun {
		e.logger.Info(ctx, "[dry run] would move", logging.Fields{
			"source": source, "target": target,
		})
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	finalTarget := resolveConflict(target)

	if err := moveFile(source, finalTarget); err != nil {
		return fmt.Errorf("failed to move %s: %w", source, err)
	}

	if err := e.log.Append(models.OperationLogEntry{
		Kind:      models.OpMove,
		Source:    source,
		Target:    finalTarget,
		Timestamp: e.now(),
	}); err != nil {
		e.logger.Warn(ctx, "move applied but not logged", logging.Fields{
			"source": source, "error": err.Error(),
		})
	}

	e.logger.Info(ctx, "moved", logging.Fields{"source": source, "target": finalTarget})
	return nil
}

// Delete removes a file, optionally copying it into the backup
// directory first under a timestamped name
func (e *Executor) Delete(ctx context.Context, path string, backup bool) error {
	if e.dryRun {
		e.logger.Info(ctx, "[dry run] would delete", logging.Fields{"path": path})
		return nil
	}

	var backupPath string
	if backup {
		var err error
		backupPath, err = e.backupFile(path)
		if err != nil {
			return fmt.Errorf("failed to back up %s: %w", path, err)
		}
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}

	if err := e.log.Append(models.OperationLogEntry{
		Kind:      models.OpDelete,
		Path:      path,
		Backup:    backupPath,
		Timestamp: e.now(),
	}); err != nil {
		e.logger.Warn(ctx, "delete applied but not logged", logging.Fields{
			"path": path, "error": err.Error(),
		})
	}

	e.logger.Info(ctx, "deleted", logging.Fields{"path": path, "backup": backupPath})
	return nil
}

// RemoveDir removes an empty directory. The removal fails, non-fatally,
// if the directory is no longer empty at apply time; non-empty
// directories are never deleted recursively.
func (e *Executor) RemoveDir(ctx context.Context, path string) error {
	if e.dryRun {
		e.logger.Info(ctx, "[dry run] would remove directory", logging.Fields{"path": path})
		return nil
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove directory %s: %w", path, err)
	}

	if err := e.log.Append(models.OperationLogEntry{
		Kind:      models.OpRemoveDir,
		Path:      path,
		Timestamp: e.now(),
	}); err != nil {
		e.logger.Warn(ctx, "directory removal applied but not logged", logging.Fields{
			"path": path, "error": err.Error(),
		})
	}

	e.logger.Info(ctx, "removed directory", logging.Fields{"path": path})
	return nil
}

// Apply executes a plan sequentially, tallying outcomes. Per-operation
// failures are counted and the batch continues; operations declined by
// the confirmation gate are counted as skipped.
func (e *Executor) Apply(ctx context.Context, plan models.OrganizationPlan) models.ExecutionStats {
	var stats models.ExecutionStats

	for _, entry := range plan {
		if e.confirm != nil && !e.confirm(entry) {
			stats.Skipped++
			continue
		}

		if err := e.Move(ctx, entry.Source, entry.Target); err != nil {
			e.logger.Error(ctx, "plan operation failed", err, logging.Fields{
				"source": entry.Source, "target": entry.Target,
			})
			stats.Failed++
			continue
		}
		stats.Success++
	}

	return stats
}

// backupFile copies a file into the backup directory under a name
// stamped with the current time, returning the backup path
func (e *Executor) backupFile(path string) (string, error) {
	if err := os.MkdirAll(e.backupDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	stamp := e.now().Format("20060102_150405")
	backupPath := filepath.Join(e.backupDir, fmt.Sprintf("%s_%s%s", stem, stamp, ext))

	if err := copyFile(path, backupPath); err != nil {
		return "", err
	}
	return backupPath, nil
}

// resolveConflict probes "_1", "_2", … suffixes before the extension
// until a free name is found
func resolveConflict(target string) string {
	if _, err := os.Lstat(target); os.IsNotExist(err) {
		return target
	}

	ext := filepath.Ext(target)
	stem := strings.TrimSuffix(target, ext)

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, counter, ext)
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// moveFile renames, falling back to copy+remove across filesystems
func moveFile(source, target string) error {
	err := os.Rename(source, target)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		if err := copyFile(source, target); err != nil {
			return err
		}
		return os.Remove(source)
	}

	return err
}

// copyFile copies contents and preserves the modification time
func copyFile(source, target string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.Create(target)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(target)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	os.Chtimes(target, info.ModTime(), info.ModTime())
	return os.Chmod(target, info.Mode().Perm())
}
