package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sdejongh/tidynorris/internal/platform"
	"github.com/sdejongh/tidynorris/pkg/config"
	"github.com/sdejongh/tidynorris/pkg/hasher"
	"github.com/sdejongh/tidynorris/pkg/logging"
	"github.com/sdejongh/tidynorris/pkg/models"
	"github.com/sdejongh/tidynorris/pkg/output"
	"github.com/sdejongh/tidynorris/pkg/ratelimit"
)

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// createLogger creates a logger based on configuration. Without a log
// file all log output is discarded.
func createLogger(cfg *config.Config) (logging.Logger, error) {
	if !cfg.Logging.Enabled || cfg.Logging.File == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch cfg.Logging.Format {
	case "text":
		format = logging.FormatText
	default:
		format = logging.FormatJSON
	}

	level := logging.ParseLevel(cfg.Logging.Level)
	if globalFlags.Verbose {
		level = logging.DebugLevel
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.Logging.File,
		Format:     format,
		Level:      level,
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	})
}

// newFormatter resolves the output formatter, letting a flag override
// the configured format
func newFormatter(flagFormat string, cfg *config.Config) (output.Formatter, error) {
	format := cfg.Output.Format
	if flagFormat != "" {
		format = flagFormat
	}
	return output.NewFormatter(format)
}

// showProgress reports whether live progress should be rendered
func showProgress(cfg *config.Config, formatter output.Formatter) bool {
	return cfg.Output.Progress && !globalFlags.Quiet && formatter.Name() == "human"
}

// confirmBatch asks once on stdin before a batch of operations runs.
// Anything but an explicit yes declines.
func confirmBatch(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// newHasher builds the configured hasher, throttled when a read limit
// is set
func newHasher(cfg *config.Config) *hasher.Hasher {
	h := hasher.New(hasher.ParseAlgorithm(cfg.Hash.Algorithm), cfg.Hash.ChunkSize)
	if cfg.Hash.MaxReadMBps > 0 {
		h.SetLimiter(ratelimit.NewLimiter(int64(cfg.Hash.MaxReadMBps * 1024 * 1024)))
	}
	return h
}

// backupDir resolves the backup directory, preferring the configured
// one over the per-user data directory
func backupDir(cfg *config.Config) string {
	if cfg.Operation.BackupDir != "" {
		return cfg.Operation.BackupDir
	}
	dir, err := platform.DefaultBackupDir()
	if err != nil {
		return filepath.Join(".", ".tidynorris", "backup")
	}
	return dir
}

// opLogPath resolves the operation log path, preferring the configured
// one over the per-user data directory
func opLogPath(cfg *config.Config) string {
	if cfg.Operation.OpLogPath != "" {
		return cfg.Operation.OpLogPath
	}
	path, err := platform.DefaultOpLogPath()
	if err != nil {
		return filepath.Join(".", ".tidynorris", "operations.json")
	}
	return path
}

// scanConfigFromFlags builds a scan configuration from config defaults
// and the scan-related flags shared by the commands
func scanConfigFromFlags(cfg *config.Config, paths []string, f *ScanFlags) models.ScanConfig {
	sc := models.ScanConfig{
		RootPaths:            paths,
		Recursive:            cfg.Scan.Recursive,
		IncludeHidden:        cfg.Scan.IncludeHidden,
		ExcludePatterns:      cfg.Scan.ExcludePatterns,
		ComputeHashes:        cfg.Scan.ComputeHashes,
		LargeFileThresholdMB: cfg.Scan.LargeFileThresholdMB,
		StaleDaysThreshold:   cfg.Scan.StaleDaysThreshold,
	}

	if f.Hidden {
		sc.IncludeHidden = true
	}
	if f.NoRecursive {
		sc.Recursive = false
	}
	if f.MaxDepth >= 0 {
		depth := f.MaxDepth
		sc.MaxDepth = &depth
	}
	if len(f.Exclude) > 0 {
		sc.ExcludePatterns = append(sc.ExcludePatterns, f.Exclude...)
	}
	if f.NoHash {
		sc.ComputeHashes = false
	}
	if f.LargeThresholdMB > 0 {
		sc.LargeFileThresholdMB = f.LargeThresholdMB
	}
	if f.StaleDays > 0 {
		sc.StaleDaysThreshold = f.StaleDays
	}

	return sc
}
