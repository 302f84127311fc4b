package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/tidynorris/pkg/executor"
	"github.com/sdejongh/tidynorris/pkg/organizer"
	"github.com/sdejongh/tidynorris/pkg/output"
	"github.com/sdejongh/tidynorris/pkg/scanner"
)

// OrganizeFlags holds organize command flags
type OrganizeFlags struct {
	Scan   ScanFlags
	Target string
	Apply  bool
	Yes    bool
}

var organizeFlags OrganizeFlags

// NewOrganizeCommand creates the organize command
func NewOrganizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize <path>",
		Short: "Propose and optionally apply an organization plan",
		Long: `Scan a directory, classify its files by project, date, type,
screenshot and download-age rules, and print the resulting move plan.
Without --apply this is a dry run and nothing is moved.`,
		Args: cobra.ExactArgs(1),
		RunE: runOrganize,
	}

	addScanFlags(cmd, &organizeFlags.Scan)
	cmd.Flags().StringVarP(&organizeFlags.Target, "target", "t", "", "base directory for organized files (default: scanned path)")
	cmd.Flags().BoolVar(&organizeFlags.Apply, "apply", false, "apply the plan instead of only printing it")
	cmd.Flags().BoolVarP(&organizeFlags.Yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func runOrganize(cmd *cobra.Command, args []string) error {
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

	formatter, err := newFormatter(organizeFlags.Scan.Output, cfg)
	if err != nil {
		return err
	}

	root := args[0]
	target := organizeFlags.Target
	if target == "" {
		target = root
	}

	scanConfig := scanConfigFromFlags(cfg, []string{root}, &organizeFlags.Scan)
	scanConfig.ComputeHashes = false

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

	org := organizer.New(logger)
	suggestions := org.Suggest(ctx, result)
	plan := org.Plan(suggestions, target)

	dryRun := !organizeFlags.Apply
	if err := formatter.PlanReport(os.Stdout, plan, dryRun); err != nil {
		return err
	}
	if dryRun || len(plan) == 0 {
		return nil
	}

	if cfg.Operation.RequireConfirm && !organizeFlags.Yes {
		if !confirmBatch(fmt.Sprintf("Apply %d moves?", len(plan))) {
			fmt.Fprintln(os.Stderr, "Aborted.")
			return nil
		}
	}

	exec := executor.New(false, backupDir(cfg), opLogPath(cfg), logger)
	stats := exec.Apply(ctx, plan)
	return formatter.ExecutionReport(os.Stdout, stats)
}
