// Package awsconfig provides the authenticated AWS session used by every adapter.
package awsconfig

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/thirukguru/sg-audit/model"
)

// loadSharedConfigProfile is a variable to allow mocking in tests.
var loadSharedConfigProfile = config.LoadSharedConfigProfile

// stsFallbackRegion is used to reach STS when neither the flag nor the profile names a region.
const stsFallbackRegion = "us-east-1"

// NewService creates a new AWS configuration service.
func NewService() Service {
	return &service{}
}

// GetAWSCfg loads an authenticated configuration. Credential failures are
// reported as *model.AuthenticationError.
func (s *service) GetAWSCfg(ctx context.Context, input Input) (aws.Config, error) {
	// Profiles that assume a role with MFA are resolved by hand so the source
	// profile's credentials sign the AssumeRole call.
	if input.Profile != "" {
		sharedCfg, err := loadSharedConfigProfile(ctx, input.Profile)
		if err == nil && sharedCfg.RoleARN != "" && sharedCfg.MFASerial != "" {
			return s.loadConfigWithManualMFA(ctx, input, sharedCfg)
		}
	}

	opts := baseOptions(input)
	if input.Region != "" {
		opts = append(opts, config.WithRegion(input.Region))
	}
	if input.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(input.Profile))
	}
	opts = append(opts, config.WithAssumeRoleCredentialOptions(func(options *stscreds.AssumeRoleOptions) {
		options.TokenProvider = stscreds.StdinTokenProvider
	}))

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, &model.AuthenticationError{Err: fmt.Errorf("unable to load AWS config: %w", err)}
	}

	if err := retrieveCredentials(ctx, cfg); err != nil {
		return aws.Config{}, err
	}

	return cfg, nil
}

func (s *service) loadConfigWithManualMFA(ctx context.Context, input Input, sharedCfg config.SharedConfig) (aws.Config, error) {
	sourceProfile := sharedCfg.SourceProfileName
	if sourceProfile == "" {
		sourceProfile = "default"
	}

	stsRegion := input.Region
	if stsRegion == "" {
		stsRegion = sharedCfg.Region
	}
	if stsRegion == "" {
		stsRegion = stsFallbackRegion
	}

	baseOpts := append(baseOptions(input),
		config.WithSharedConfigProfile(sourceProfile),
		config.WithRegion(stsRegion),
	)
	baseCfg, err := config.LoadDefaultConfig(ctx, baseOpts...)
	if err != nil {
		return aws.Config{}, &model.AuthenticationError{Err: fmt.Errorf("failed to load source profile config: %w", err)}
	}

	provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(baseCfg), sharedCfg.RoleARN, func(o *stscreds.AssumeRoleOptions) {
		o.SerialNumber = aws.String(sharedCfg.MFASerial)
		o.TokenProvider = stscreds.StdinTokenProvider
	})

	finalOpts := append(baseOptions(input), config.WithCredentialsProvider(aws.NewCredentialsCache(provider)))
	switch {
	case input.Region != "":
		finalOpts = append(finalOpts, config.WithRegion(input.Region))
	case sharedCfg.Region != "":
		finalOpts = append(finalOpts, config.WithRegion(sharedCfg.Region))
	}

	finalCfg, err := config.LoadDefaultConfig(ctx, finalOpts...)
	if err != nil {
		return aws.Config{}, &model.AuthenticationError{Err: fmt.Errorf("failed to load final config with mfa: %w", err)}
	}

	// Trigger the MFA prompt now, before the spinner takes over the terminal.
	if err := retrieveCredentials(ctx, finalCfg); err != nil {
		return aws.Config{}, err
	}

	return finalCfg, nil
}

// baseOptions returns the load options shared by every config built for a run.
func baseOptions(input Input) []func(*config.LoadOptions) error {
	var opts []func(*config.LoadOptions) error
	if input.CallTimeout > 0 {
		opts = append(opts, config.WithHTTPClient(httpClient(input.CallTimeout)))
	}
	return opts
}

func httpClient(timeout time.Duration) *awshttp.BuildableClient {
	return awshttp.NewBuildableClient().WithTimeout(timeout)
}

func retrieveCredentials(ctx context.Context, cfg aws.Config) error {
	if cfg.Credentials == nil {
		return &model.AuthenticationError{Err: fmt.Errorf("no credentials provider configured")}
	}
	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		return &model.AuthenticationError{Err: fmt.Errorf("failed to retrieve credentials: %w", err)}
	}
	return nil
}
