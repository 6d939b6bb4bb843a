package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/rs/zerolog"
	"github.com/thirukguru/sg-audit/model"
	"github.com/thirukguru/sg-audit/service/analysis"
	"github.com/thirukguru/sg-audit/service/attachment"
	awsecs "github.com/thirukguru/sg-audit/service/ecs"
	awselasticache "github.com/thirukguru/sg-audit/service/elasticache"
	"github.com/thirukguru/sg-audit/service/elb"
	awslambda "github.com/thirukguru/sg-audit/service/lambda"
	awsrds "github.com/thirukguru/sg-audit/service/rds"
	awssts "github.com/thirukguru/sg-audit/service/sts"
	"github.com/thirukguru/sg-audit/service/vpc"
	"github.com/thirukguru/sg-audit/service/whitelist"
	"golang.org/x/sync/errgroup"
)

// NewEngine wires every adapter to session. A nil session is an
// authentication failure.
func NewEngine(session *aws.Config, maxParallel int) (*Engine, error) {
	if session == nil {
		return nil, &model.AuthenticationError{}
	}
	cfg := *session

	ec2 := vpc.NewService(cfg)
	adapters := attachment.Adapters{
		EC2:           ec2,
		RDS:           awsrds.NewService(cfg),
		LoadBalancers: elb.NewService(cfg),
		Lambda:        awslambda.NewService(cfg),
		ElastiCache:   awselasticache.NewService(cfg),
		ECS:           awsecs.NewService(cfg),
	}

	return NewEngineWithServices(cfg.Region, Services{
		Identity:    awssts.NewService(cfg),
		Inventory:   ec2,
		Whitelist:   whitelist.NewService(ec2, maxParallel),
		Attachments: attachment.NewService(adapters, maxParallel),
	}), nil
}

// NewEngineWithServices creates an engine over explicit collaborators.
func NewEngineWithServices(region string, services Services) *Engine {
	return &Engine{region: region, services: services, now: time.Now}
}

// Analyze resolves the caller identity, then builds the whitelist, collects
// attachments and lists security groups concurrently before classifying.
// Resource query failures are returned in the result; failing to list the
// groups themselves fails the run.
func (e *Engine) Analyze(ctx context.Context, static []string) (*Result, error) {
	if e.services.Identity == nil {
		return nil, &model.AuthenticationError{}
	}
	if err := ctx.Err(); err != nil {
		return nil, &model.CancellationError{Err: err}
	}

	logger := zerolog.Ctx(ctx)
	startedAt := e.now()

	identity, err := e.services.Identity.GetCallerIdentity(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &model.CancellationError{Err: ctxErr}
		}
		return nil, err
	}
	logger.Debug().Str("account", identity.Account).Str("region", e.region).Msg("analysis started")

	var (
		trusted, attached         model.StringSet
		groups                    []model.SecurityGroup
		whitelistErrs, attachErrs []model.AdapterError
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trusted, whitelistErrs, err = e.services.Whitelist.BuildWhitelist(gctx, static)
		return err
	})
	g.Go(func() error {
		var err error
		attached, attachErrs, err = e.services.Attachments.CollectAttachedGroups(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		groups, err = e.services.Inventory.GetSecurityGroups(gctx)
		if err != nil {
			return fmt.Errorf("failed to list security groups: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &model.CancellationError{Err: ctxErr}
		}
		return nil, err
	}

	classification := analysis.Classify(groups, attached, trusted)
	finishedAt := e.now()

	report := analysis.Assemble(classification, startedAt, finishedAt, identity, model.ProviderAWS)
	report.Metadata.Region = e.region

	adapterErrs := append(whitelistErrs, attachErrs...)
	report.Metadata.FailedSources = model.AdapterSources(adapterErrs)

	logger.Debug().
		Int("groups", len(groups)).
		Int("attached", attached.Len()).
		Int("whitelist", trusted.Len()).
		Int("failed_sources", len(adapterErrs)).
		Msg("analysis finished")

	return &Result{
		Report:        report,
		AdapterErrors: adapterErrs,
		StartedAt:     startedAt,
		FinishedAt:    finishedAt,
	}, nil
}
