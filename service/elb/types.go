// Package elb lists the security groups attached to classic and v2 load balancers.
package elb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
)

// ClassicClientAPI defines the classic ELB client methods used by this service.
type ClassicClientAPI interface {
	DescribeLoadBalancers(ctx context.Context, params *elasticloadbalancing.DescribeLoadBalancersInput, optFns ...func(*elasticloadbalancing.Options)) (*elasticloadbalancing.DescribeLoadBalancersOutput, error)
}

// V2ClientAPI defines the ELBv2 client methods used by this service.
type V2ClientAPI interface {
	DescribeLoadBalancers(ctx context.Context, params *elasticloadbalancingv2.DescribeLoadBalancersInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeLoadBalancersOutput, error)
}

// Service is the interface for the load balancer attachment adapters.
type Service interface {
	// GetClassicAttachedSecurityGroups returns the groups of classic load
	// balancers. The legacy API may report names instead of ids.
	GetClassicAttachedSecurityGroups(ctx context.Context) ([]string, error)
	// GetAttachedSecurityGroups returns the groups of application and network load balancers.
	GetAttachedSecurityGroups(ctx context.Context) ([]string, error)
}

type service struct {
	classic ClassicClientAPI
	v2      V2ClientAPI
}

// NewService creates a new ELB service.
func NewService(cfg aws.Config) Service {
	return NewServiceWithClients(
		elasticloadbalancing.NewFromConfig(cfg),
		elasticloadbalancingv2.NewFromConfig(cfg),
	)
}

// NewServiceWithClients creates a new ELB service with custom clients.
func NewServiceWithClients(classic ClassicClientAPI, v2 V2ClientAPI) Service {
	return &service{classic: classic, v2: v2}
}
