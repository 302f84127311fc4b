package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdejongh/tidynorris/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or modify tidynorris configuration.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Printf("Recursive: %t\n", cfg.Scan.Recursive)
			fmt.Printf("Include Hidden: %t\n", cfg.Scan.IncludeHidden)
			fmt.Printf("Exclude Patterns: %s\n", strings.Join(cfg.Scan.ExcludePatterns, ", "))
			fmt.Printf("Compute Hashes: %t\n", cfg.Scan.ComputeHashes)
			fmt.Printf("Large File Threshold: %.0f MB\n", cfg.Scan.LargeFileThresholdMB)
			fmt.Printf("Stale Days Threshold: %d\n", cfg.Scan.StaleDaysThreshold)
			fmt.Printf("Hash Algorithm: %s\n", cfg.Hash.Algorithm)
			fmt.Printf("Dry Run: %t\n", cfg.Operation.DryRun)
			fmt.Printf("Backup Before Delete: %t\n", cfg.Operation.BackupBeforeDelete)
			fmt.Printf("Output Format: %s\n", cfg.Output.Format)
			fmt.Printf("Log Format: %s\n", cfg.Logging.Format)
			fmt.Printf("Log Level: %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}

			cfg := config.Default()
			if err := config.SaveToFile(cfg, path); err != nil {
				return err
			}

			fmt.Printf("Configuration file created at: %s\n", path)
			return nil
		},
	}
}
