package config

import (
	"github.com/sdejongh/tidynorris/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Scan      ScanSettings      `yaml:"scan"`
	Hash      HashSettings      `yaml:"hash"`
	Operation OperationSettings `yaml:"operation"`
	Output    OutputConfig      `yaml:"output"`
	Logging   LoggingConfig     `yaml:"logging"`
}

// ScanSettings holds scan and analysis thresholds
type ScanSettings struct {
	Recursive            bool     `yaml:"recursive"`
	IncludeHidden        bool     `yaml:"include_hidden"`
	ExcludePatterns      []string `yaml:"exclude_patterns"`
	ComputeHashes        bool     `yaml:"compute_hashes"`
	LargeFileThresholdMB float64  `yaml:"large_file_threshold_mb"`
	StaleDaysThreshold   int      `yaml:"stale_days_threshold"`
}

// HashSettings holds content-digest settings
type HashSettings struct {
	// Algorithm selects the digest: "sha256" (default) or "xxh3" (fast)
	Algorithm string `yaml:"algorithm"`
	// ChunkSize is the read buffer size in bytes
	ChunkSize int `yaml:"chunk_size"`
	// MaxReadMBps throttles digest reads, 0 means unlimited
	MaxReadMBps float64 `yaml:"max_read_mbps"`
}

// OperationSettings holds apply-layer settings
type OperationSettings struct {
	DryRun             bool   `yaml:"dry_run"`
	RequireConfirm     bool   `yaml:"require_confirmation"`
	BackupBeforeDelete bool   `yaml:"backup_before_delete"`
	BackupDir          string `yaml:"backup_dir"`
	OpLogPath          string `yaml:"oplog_path"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress bars
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = disabled)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Scan: ScanSettings{
			Recursive:     true,
			IncludeHidden: false,
			ExcludePatterns: []string{
				"__pycache__", ".git", "node_modules", ".venv", "venv",
				".DS_Store", ".idea", ".vscode", "*.pyc",
			},
			ComputeHashes:        true,
			LargeFileThresholdMB: 100.0,
			StaleDaysThreshold:   180,
		},
		Hash: HashSettings{
			Algorithm: "sha256",
			ChunkSize: 65536,
		},
		Operation: OperationSettings{
			DryRun:             true,
			RequireConfirm:     true,
			BackupBeforeDelete: true,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Format:  "json",
			Level:   "info",
			File:    "",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Scan.LargeFileThresholdMB < 0 {
		return &models.ValidationError{
			Field:   "scan.large_file_threshold_mb",
			Message: "must not be negative",
		}
	}

	if c.Scan.StaleDaysThreshold < 0 {
		return &models.ValidationError{
			Field:   "scan.stale_days_threshold",
			Message: "must not be negative",
		}
	}

	validAlgorithms := map[string]bool{"sha256": true, "xxh3": true}
	if !validAlgorithms[c.Hash.Algorithm] {
		return &models.ValidationError{
			Field:   "hash.algorithm",
			Message: "must be 'sha256' or 'xxh3'",
		}
	}

	if c.Hash.ChunkSize < 1024 {
		return &models.ValidationError{
			Field:   "hash.chunk_size",
			Message: "must be at least 1024 bytes",
		}
	}

	if c.Hash.MaxReadMBps < 0 {
		return &models.ValidationError{
			Field:   "hash.max_read_mbps",
			Message: "must not be negative",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
