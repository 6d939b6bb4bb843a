package flag

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/thirukguru/sg-audit/model"
)

// Output formats accepted by --output.
var outputFormats = []string{"human", "json", "yml"}

// NewService creates a new flag service.
func NewService() Service {
	return &service{}
}

// GetParsedFlags parses and returns the command-line flags.
func (s *service) GetParsedFlags() (model.Flags, error) {
	profile := pflag.StringP("profile", "p", "", "AWS profile to use")
	region := pflag.StringP("region", "r", "", "AWS region to analyze")
	version := pflag.BoolP("version", "v", false, "Show version information")
	output := pflag.StringP("output", "o", "human", "Output format (human, json, or yml)")
	outputFile := pflag.StringP("file", "f", "", "Path to save the analysis file (json or yml output only)")
	whitelistPath := pflag.String("whitelist", "", "Path to a file with one safe IP/CIDR per line")
	maxParallel := pflag.Int("max-parallel", 8, "Maximum number of concurrent AWS listing calls")
	callTimeout := pflag.Duration("call-timeout", 30*time.Second, "Timeout applied to every AWS API call")
	store := pflag.Bool("store", false, "Persist the analysis in the local SQLite history")
	dbPath := pflag.String("db-path", "", "Custom SQLite database path (default ~/.sg-audit/history.db)")
	logLevel := pflag.String("log-level", "warn", "Log level (debug, info, warn, error)")

	pflag.Parse()

	format := strings.ToLower(strings.TrimSpace(*output))
	if !isSupportedOutput(format) {
		return model.Flags{}, fmt.Errorf("invalid output %q: must be one of %s", *output, strings.Join(outputFormats, ", "))
	}

	if *maxParallel < 1 {
		return model.Flags{}, fmt.Errorf("--max-parallel must be >= 1, got %d", *maxParallel)
	}

	flags := model.Flags{
		Profile:       *profile,
		Region:        *region,
		Version:       *version,
		Output:        format,
		OutputFile:    *outputFile,
		WhitelistPath: *whitelistPath,
		MaxParallel:   *maxParallel,
		CallTimeout:   *callTimeout,
		Store:         *store,
		DBPath:        *dbPath,
		LogLevel:      *logLevel,
	}

	return flags, nil
}

func isSupportedOutput(format string) bool {
	for _, f := range outputFormats {
		if f == format {
			return true
		}
	}
	return false
}
