// Package awsecs lists the security groups of ECS services using awsvpc networking.
package awsecs

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
)

// DescribeServicesBatchSize is the maximum number of services DescribeServices accepts per call.
const DescribeServicesBatchSize = 10

// ECSClientAPI defines the ECS client methods used by this service.
type ECSClientAPI interface {
	ListClusters(ctx context.Context, params *ecs.ListClustersInput, optFns ...func(*ecs.Options)) (*ecs.ListClustersOutput, error)
	ListServices(ctx context.Context, params *ecs.ListServicesInput, optFns ...func(*ecs.Options)) (*ecs.ListServicesOutput, error)
	DescribeServices(ctx context.Context, params *ecs.DescribeServicesInput, optFns ...func(*ecs.Options)) (*ecs.DescribeServicesOutput, error)
}

// Service is the interface for the ECS attachment adapter.
type Service interface {
	GetAttachedSecurityGroups(ctx context.Context) ([]string, error)
}

type service struct {
	client ECSClientAPI
}

// NewService creates a new ECS service.
func NewService(cfg aws.Config) Service {
	return NewServiceWithClient(ecs.NewFromConfig(cfg))
}

// NewServiceWithClient creates a new ECS service with a custom client.
func NewServiceWithClient(client ECSClientAPI) Service {
	return &service{client: client}
}
