// Package attachment collects the security groups referenced by any resource
// family in the region.
package attachment

import (
	"context"

	"github.com/thirukguru/sg-audit/model"
	"github.com/thirukguru/sg-audit/service/elasticache"
	"github.com/thirukguru/sg-audit/service/elb"
)

// Source names reported in adapter errors.
const (
	SourceEC2                = "ec2"
	SourceRDS                = "rds"
	SourceELB                = "elb"
	SourceELBv2              = "elbv2"
	SourceLambda             = "lambda"
	SourceElastiCache        = "elasticache"
	SourceElastiCacheClassic = "elasticache-classic"
	SourceECS                = "ecs"
)

// GroupLister is implemented by every adapter that reports attached groups.
type GroupLister interface {
	GetAttachedSecurityGroups(ctx context.Context) ([]string, error)
}

// Adapters holds one adapter per resource family. Nil adapters are skipped.
type Adapters struct {
	EC2           GroupLister
	RDS           GroupLister
	LoadBalancers elb.Service
	Lambda        GroupLister
	ElastiCache   awselasticache.Service
	ECS           GroupLister
}

// Service is the interface for the attachment collector.
type Service interface {
	// CollectAttachedGroups returns the union of every family's group ids and
	// names. Failed families are returned as adapter errors; the error result
	// is set only when ctx is canceled.
	CollectAttachedGroups(ctx context.Context) (model.StringSet, []model.AdapterError, error)
}

type service struct {
	adapters    Adapters
	maxParallel int
}

// NewService creates a collector running at most maxParallel queries at once.
func NewService(adapters Adapters, maxParallel int) Service {
	return &service{adapters: adapters, maxParallel: maxParallel}
}
