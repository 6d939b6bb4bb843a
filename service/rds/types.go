// Package awsrds lists the security groups attached to RDS instances.
package awsrds

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
)

// RDSClientAPI defines the RDS client methods used by this service.
type RDSClientAPI interface {
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

// Service is the interface for the RDS attachment adapter.
type Service interface {
	GetAttachedSecurityGroups(ctx context.Context) ([]string, error)
}

type service struct {
	client RDSClientAPI
}

// NewService creates a new RDS service.
func NewService(cfg aws.Config) Service {
	return NewServiceWithClient(rds.NewFromConfig(cfg))
}

// NewServiceWithClient creates a new RDS service with a custom client.
func NewServiceWithClient(client RDSClientAPI) Service {
	return &service{client: client}
}
