// Package orchestrator runs an analysis and delivers its report.
package orchestrator

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/thirukguru/sg-audit/model"
	"github.com/thirukguru/sg-audit/service/output"
	"github.com/thirukguru/sg-audit/service/storage"
	"github.com/thirukguru/sg-audit/shared/spinner"
	whitelistfile "github.com/thirukguru/sg-audit/shared/whitelist_file"
	"golang.org/x/term"
)

// NewService creates a new orchestrator service. analyzer and storageService
// may be nil when only the version is requested or history is disabled.
func NewService(
	analyzer Analyzer,
	outputService output.Service,
	storageService storage.Service,
	versionInfo model.VersionInfo,
) Service {
	return &service{
		analyzer:       analyzer,
		outputService:  outputService,
		storageService: storageService,
		versionInfo:    versionInfo,
		out:            os.Stdout,
		showSpinner:    outputService != nil && outputService.Format() == output.FormatHuman && term.IsTerminal(int(os.Stdout.Fd())),
	}
}

func (s *service) Orchestrate(ctx context.Context, flags model.Flags) error {
	if flags.Version {
		return s.versionWorkflow()
	}

	return s.analysisWorkflow(ctx, flags)
}

func (s *service) versionWorkflow() error {
	fmt.Fprintf(s.out, "sg-audit version %s\n", s.versionInfo.Version)
	fmt.Fprintf(s.out, "commit: %s\n", s.versionInfo.Commit)
	fmt.Fprintf(s.out, "built at: %s\n", s.versionInfo.Date)

	return nil
}

func (s *service) analysisWorkflow(ctx context.Context, flags model.Flags) error {
	if s.analyzer == nil {
		return &model.AuthenticationError{}
	}

	static, err := whitelistfile.Load(flags.WhitelistPath)
	if err != nil {
		return fmt.Errorf("failed to load whitelist: %w", err)
	}

	if s.showSpinner {
		spinner.StartSpinner()
	}
	result, err := s.analyzer.Analyze(ctx, static)
	if s.showSpinner {
		spinner.StopSpinner()
	}
	if err != nil {
		return err
	}

	if err := s.outputService.Render(result.Report); err != nil {
		return fmt.Errorf("failed to render analysis: %w", err)
	}

	if flags.OutputFile != "" {
		if err := s.outputService.WriteFile(ctx, result.Report, flags.OutputFile); err != nil {
			return err
		}
	}

	logger := zerolog.Ctx(ctx)
	for _, adapterErr := range result.AdapterErrors {
		logger.Warn().
			Str("source", adapterErr.Source).
			Err(adapterErr.Err).
			Msg("resource query failed, results may be incomplete")
	}

	return s.persistAnalysisIfEnabled(ctx, flags, result)
}
