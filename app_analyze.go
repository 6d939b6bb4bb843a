package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/pflag"
	"github.com/thirukguru/sg-audit/model"
	awsconfig "github.com/thirukguru/sg-audit/service/aws_config"
	"github.com/thirukguru/sg-audit/service/orchestrator"
	"github.com/thirukguru/sg-audit/service/output"
	"github.com/thirukguru/sg-audit/service/storage"
	reportfile "github.com/thirukguru/sg-audit/shared/report_file"
)

func runAnalysis(ctx context.Context, flags model.Flags, versionInfo model.VersionInfo) error {
	cfgService := awsconfig.NewService()

	awsCfg, err := cfgService.GetAWSCfg(ctx, awsconfig.Input{
		Region:      flags.Region,
		Profile:     flags.Profile,
		CallTimeout: flags.CallTimeout,
	})
	if err != nil {
		return err
	}

	region, err := resolveRegion(flags, awsCfg)
	if err != nil {
		return err
	}
	awsCfg.Region = region

	engine, err := orchestrator.NewEngine(&awsCfg, flags.MaxParallel)
	if err != nil {
		return err
	}

	var storageService storage.Service
	if flags.Store {
		storageService, err = storage.NewService(flags.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer storageService.Close()
	}

	orchestratorService := orchestrator.NewService(engine, output.NewService(flags.Output), storageService, versionInfo)
	if err := orchestratorService.Orchestrate(ctx, flags); err != nil {
		return fmt.Errorf("security group analysis failed for region %s: %w", region, err)
	}
	return nil
}

// resolveRegion prefers --region over the region of the loaded profile.
func resolveRegion(flags model.Flags, awsCfg aws.Config) (string, error) {
	if flags.Region != "" {
		return flags.Region, nil
	}
	if awsCfg.Region != "" {
		return awsCfg.Region, nil
	}
	return "", errors.New("no AWS region configured: pass --region or set one in the profile")
}

func runViewCommand(args []string, w io.Writer) error {
	fs := pflag.NewFlagSet("view", pflag.ContinueOnError)
	file := fs.StringP("file", "f", "", "Path to an analysis file saved with --file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("usage: sg-audit view -f <analysis.json|analysis.yml>")
	}

	report, err := reportfile.Load(*file)
	if err != nil {
		return err
	}
	if report.Metadata.CloudProvider.Name != model.ProviderAWS {
		return fmt.Errorf("unsupported cloud provider %q in %s", report.Metadata.CloudProvider.Name, *file)
	}

	return output.NewServiceWithWriter(string(output.FormatHuman), w).Render(report)
}
