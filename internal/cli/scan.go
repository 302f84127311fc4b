package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/tidynorris/pkg/analyzer"
	"github.com/sdejongh/tidynorris/pkg/output"
	"github.com/sdejongh/tidynorris/pkg/scanner"
)

// ScanFlags holds scan-related flags shared by the commands
type ScanFlags struct {
	Hidden           bool
	NoRecursive      bool
	MaxDepth         int
	Exclude          []string
	NoHash           bool
	LargeThresholdMB float64
	StaleDays        int
	Output           string
}

var scanFlags ScanFlags

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Inventory directories and report issues",
		Long: `Walk one or more directory trees, build an inventory, and analyze it
for duplicates, large files, stale files, chaotic names and empty
directories. Nothing is modified.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScan,
	}

	addScanFlags(cmd, &scanFlags)

	return cmd
}

// addScanFlags registers the shared scan flag set on a command
func addScanFlags(cmd *cobra.Command, f *ScanFlags) {
	cmd.Flags().BoolVar(&f.Hidden, "hidden", false, "include hidden files and directories")
	cmd.Flags().BoolVar(&f.NoRecursive, "no-recursive", false, "scan only the top level of each root")
	cmd.Flags().IntVar(&f.MaxDepth, "max-depth", -1, "maximum directory depth (-1 = unlimited)")
	cmd.Flags().StringSliceVar(&f.Exclude, "exclude", []string{}, "additional exclude patterns")
	cmd.Flags().BoolVar(&f.NoHash, "no-hash", false, "skip content hashing (disables duplicate detection)")
	cmd.Flags().Float64Var(&f.LargeThresholdMB, "large-threshold", 0, "large file threshold in MB")
	cmd.Flags().IntVar(&f.StaleDays, "stale-days", 0, "days without access before a file is stale")
	cmd.Flags().StringVarP(&f.Output, "output", "o", "", "output format: human, json")
}

func runScan(cmd *cobra.Command, args []string) error {
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

	formatter, err := newFormatter(scanFlags.Output, cfg)
	if err != nil {
		return err
	}

	scanConfig := scanConfigFromFlags(cfg, args, &scanFlags)

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

	if err := formatter.ScanReport(os.Stdout, result); err != nil {
		return err
	}
	if !globalFlags.Quiet {
		fmt.Fprintf(os.Stdout, "\n")
	}
	return formatter.AnalysisReport(os.Stdout, analysis)
}
