// Package main is the entry point for the sg-audit application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thirukguru/sg-audit/model"
	"github.com/thirukguru/sg-audit/service/flag"
	"github.com/thirukguru/sg-audit/service/orchestrator"
	"github.com/thirukguru/sg-audit/service/output"
	"github.com/thirukguru/sg-audit/shared/banner"
	"github.com/thirukguru/sg-audit/shared/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "db", "history":
			return runStorageCommand(ctx, os.Args[1], os.Args[2:], os.Stdout)
		case "view":
			return runViewCommand(os.Args[2:], os.Stdout)
		}
	}

	flagService := flag.NewService()
	flags, err := flagService.GetParsedFlags()
	if err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	logger, err := logging.New(os.Stderr, flags.LogLevel)
	if err != nil {
		return err
	}
	ctx = logger.WithContext(ctx)

	versionInfo := model.VersionInfo{Version: version, Commit: commit, Date: date}

	if flags.Version {
		orchestratorService := orchestrator.NewService(nil, output.NewService(flags.Output), nil, versionInfo)
		return orchestratorService.Orchestrate(ctx, flags)
	}

	if flags.Output == string(output.FormatHuman) {
		banner.DrawBannerTitle()
	}

	return runAnalysis(ctx, flags, versionInfo)
}
