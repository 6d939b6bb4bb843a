// Package awslambda lists the security groups of VPC-attached Lambda functions.
package awslambda

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// LambdaClientAPI defines the Lambda client methods used by this service.
type LambdaClientAPI interface {
	ListFunctions(ctx context.Context, params *lambda.ListFunctionsInput, optFns ...func(*lambda.Options)) (*lambda.ListFunctionsOutput, error)
}

// Service is the interface for the Lambda attachment adapter.
type Service interface {
	GetAttachedSecurityGroups(ctx context.Context) ([]string, error)
}

type service struct {
	client LambdaClientAPI
}

// NewService creates a new Lambda service.
func NewService(cfg aws.Config) Service {
	return NewServiceWithClient(lambda.NewFromConfig(cfg))
}

// NewServiceWithClient creates a new Lambda service with a custom client.
func NewServiceWithClient(client LambdaClientAPI) Service {
	return &service{client: client}
}
