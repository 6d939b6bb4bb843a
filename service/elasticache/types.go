// Package awselasticache lists the security groups referenced by ElastiCache.
package awselasticache

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticache"
)

// ElastiCacheClientAPI defines the ElastiCache client methods used by this service.
type ElastiCacheClientAPI interface {
	DescribeCacheClusters(ctx context.Context, params *elasticache.DescribeCacheClustersInput, optFns ...func(*elasticache.Options)) (*elasticache.DescribeCacheClustersOutput, error)
	DescribeCacheSecurityGroups(ctx context.Context, params *elasticache.DescribeCacheSecurityGroupsInput, optFns ...func(*elasticache.Options)) (*elasticache.DescribeCacheSecurityGroupsOutput, error)
}

// Service is the interface for the ElastiCache attachment adapters.
type Service interface {
	// GetAttachedSecurityGroups returns cache security group names and VPC
	// security group ids of every cache cluster.
	GetAttachedSecurityGroups(ctx context.Context) ([]string, error)
	// GetClassicSecurityGroupNames returns the EC2 group names authorized in
	// legacy cache security groups. Failures wrap model.ErrExpectedAbsence.
	GetClassicSecurityGroupNames(ctx context.Context) ([]string, error)
}

type service struct {
	client ElastiCacheClientAPI
}

// NewService creates a new ElastiCache service.
func NewService(cfg aws.Config) Service {
	return NewServiceWithClient(elasticache.NewFromConfig(cfg))
}

// NewServiceWithClient creates a new ElastiCache service with a custom client.
func NewServiceWithClient(client ElastiCacheClientAPI) Service {
	return &service{client: client}
}
