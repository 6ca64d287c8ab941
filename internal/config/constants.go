package config

import (
	"log/slog"
	"os"
	"strings"
)

// UnitFileExt is the extension of compilation unit descriptions.
const UnitFileExt = ".yaml"

// UnitFileExtensions are all recognized unit file extensions
var UnitFileExtensions = []string{".yaml", ".yml"}

// DefaultDBPath is where `check --db` writes when no path is given.
const DefaultDBPath = ".patcanon/reports.db"

// Environment variables
const (
	LogLevelEnv = "PATCANON_LOG_LEVEL"
	DBPathEnv   = "PATCANON_DB"
	NoColorEnv  = "NO_COLOR"
)

// Pattern context keys used in unit files and fixtures.
const (
	TopLevelDefKey = "top_level_def"
	DefExprKey     = "def_expr"
	FunctionArgKey = "function_arg"
	WhenBranchKey  = "when_branch"
)

// Output formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// ParseLogLevel maps a level name to a slog level. Unknown names fall back to warn.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}

// LogLevelFromEnv returns the level named by PATCANON_LOG_LEVEL, or fallback when unset.
func LogLevelFromEnv(fallback string) slog.Level {
	if v, ok := os.LookupEnv(LogLevelEnv); ok && v != "" {
		return ParseLogLevel(v)
	}
	return ParseLogLevel(fallback)
}

// IsUnitFile reports whether path has a recognized unit file extension.
func IsUnitFile(path string) bool {
	for _, ext := range UnitFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
