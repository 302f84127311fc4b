package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sdejongh/tidynorris/pkg/analyzer"
	"github.com/sdejongh/tidynorris/pkg/executor"
	"github.com/sdejongh/tidynorris/pkg/models"
	"github.com/sdejongh/tidynorris/pkg/output"
	"github.com/sdejongh/tidynorris/pkg/scanner"
)

// CleanFlags holds clean command flags
type CleanFlags struct {
	Scan       ScanFlags
	Duplicates bool
	EmptyDirs  bool
	NoBackup   bool
	Apply      bool
	Yes        bool
}

var cleanFlags CleanFlags

// NewCleanCommand creates the clean command
func NewCleanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [paths...]",
		Short: "Remove duplicate copies and empty directories",
		Long: `Scan one or more directory trees and remove redundant duplicate
copies (the first file of each group is kept) and empty directories.
Deleted files are backed up first unless --no-backup is given.
Without --apply this is a dry run and nothing is removed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClean,
	}

	addScanFlags(cmd, &cleanFlags.Scan)
	cmd.Flags().BoolVar(&cleanFlags.Duplicates, "duplicates", true, "remove redundant duplicate copies")
	cmd.Flags().BoolVar(&cleanFlags.EmptyDirs, "empty-dirs", true, "remove empty directories")
	cmd.Flags().BoolVar(&cleanFlags.NoBackup, "no-backup", false, "delete without backing up first")
	cmd.Flags().BoolVar(&cleanFlags.Apply, "apply", false, "apply the removals instead of only printing them")
	cmd.Flags().BoolVarP(&cleanFlags.Yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := createLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	formatter, err := newFormatter(cleanFlags.Scan.Output, cfg)
	if err != nil {
		return err
	}

	scanConfig := scanConfigFromFlags(cfg, args, &cleanFlags.Scan)
	if !cleanFlags.Duplicates {
		scanConfig.ComputeHashes = false
	}

	var progress scanner.ProgressFunc
	var scanProgress *output.ScanProgress
	if showProgress(cfg, formatter) {
		scanProgress = output.NewScanProgress(os.Stderr)
		progress = scanProgress.Update
	}

	result, err := scanner.New(scanConfig, logger).Scan(ctx, progress)
	if scanProgress != nil {
		scanProgress.Finish()
	}
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	a := analyzer.New(scanConfig.LargeFileThresholdMB, scanConfig.StaleDaysThreshold, newHasher(cfg), logger)

	var hashProgress *output.HashProgress
	if showProgress(cfg, formatter) {
		a.SetHashProgress(func(done, total int, path string) {
			if hashProgress == nil {
				hashProgress = output.NewHashProgress(os.Stderr, total)
			}
			hashProgress.Update(done, total, path)
		})
	}

	analysis := a.Analyze(ctx, result, scanConfig.ComputeHashes)
	if hashProgress != nil {
		hashProgress.Finish()
	}

	victims := duplicateVictims(analysis)
	emptyDirs := emptyDirsDeepestFirst(analysis)

	dryRun := !cleanFlags.Apply
	printCleanPlan(os.Stdout, analysis, victims, emptyDirs, dryRun)

	total := 0
	if cleanFlags.Duplicates {
		total += len(victims)
	}
	if cleanFlags.EmptyDirs {
		total += len(emptyDirs)
	}
	if dryRun || total == 0 {
		return nil
	}

	if cfg.Operation.RequireConfirm && !cleanFlags.Yes {
		if !confirmBatch(fmt.Sprintf("Remove %d items?", total)) {
			fmt.Fprintln(os.Stderr, "Aborted.")
			return nil
		}
	}

	backup := cfg.Operation.BackupBeforeDelete && !cleanFlags.NoBackup
	exec := executor.New(false, backupDir(cfg), opLogPath(cfg), logger)

	var stats models.ExecutionStats
	if cleanFlags.Duplicates {
		for _, path := range victims {
			if err := exec.Delete(ctx, path, backup); err != nil {
				formatter.Error(os.Stderr, err)
				stats.Failed++
				continue
			}
			stats.Success++
		}
	}
	if cleanFlags.EmptyDirs {
		for _, path := range emptyDirs {
			if err := exec.RemoveDir(ctx, path); err != nil {
				formatter.Error(os.Stderr, err)
				stats.Failed++
				continue
			}
			stats.Success++
		}
	}

	return formatter.ExecutionReport(os.Stdout, stats)
}

// duplicateVictims returns every duplicate member except the first of
// each group, which is kept
func duplicateVictims(analysis *models.AnalysisResult) []string {
	var victims []string
	for i := range analysis.Duplicates {
		group := &analysis.Duplicates[i]
		if len(group.Files) < 2 {
			continue
		}
		victims = append(victims, group.Files[1:]...)
	}
	return victims
}

// emptyDirsDeepestFirst orders empty directories so that nested ones
// are removed before their parents
func emptyDirsDeepestFirst(analysis *models.AnalysisResult) []string {
	dirs := make([]models.EmptyDirectory, len(analysis.EmptyDirectories))
	copy(dirs, analysis.EmptyDirectories)
	sort.SliceStable(dirs, func(i, j int) bool {
		return dirs[i].Depth > dirs[j].Depth
	})
	paths := make([]string, len(dirs))
	for i, d := range dirs {
		paths[i] = d.Path
	}
	return paths
}

// printCleanPlan summarizes what clean would remove
func printCleanPlan(w *os.File, analysis *models.AnalysisResult, victims, emptyDirs []string, dryRun bool) {
	if dryRun {
		fmt.Fprintf(w, "Dry run: nothing will be removed.\n\n")
	}
	if cleanFlags.Duplicates {
		fmt.Fprintf(w, "Duplicate copies to remove: %d (%s reclaimable)\n",
			len(victims), models.FormatBytes(analysis.TotalWastedByDuplicates()))
		for _, path := range victims {
			fmt.Fprintf(w, "  %s\n", path)
		}
	}
	if cleanFlags.EmptyDirs {
		fmt.Fprintf(w, "Empty directories to remove: %d\n", len(emptyDirs))
		for _, path := range emptyDirs {
			fmt.Fprintf(w, "  %s\n", path)
		}
	}
}
