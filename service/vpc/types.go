// Package vpc reads security groups and network topology from EC2.
package vpc

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/thirukguru/sg-audit/model"
)

// EC2ClientAPI defines the EC2 client methods used by this service.
type EC2ClientAPI interface {
	DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeVpcs(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)
	DescribeSubnets(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)
	DescribeAddresses(ctx context.Context, params *ec2.DescribeAddressesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error)
}

// Service defines the EC2 queries the analysis needs.
type Service interface {
	// GetSecurityGroups returns the full security group inventory of the region.
	GetSecurityGroups(ctx context.Context) ([]model.SecurityGroup, error)
	// GetAttachedSecurityGroups returns the group ids referenced by EC2 instances.
	GetAttachedSecurityGroups(ctx context.Context) ([]string, error)
	GetVpcCidrs(ctx context.Context) ([]string, error)
	GetSubnetCidrs(ctx context.Context) ([]string, error)
	// GetInstanceAddresses returns every private and public instance address as a /32.
	GetInstanceAddresses(ctx context.Context) ([]string, error)
	GetElasticIPs(ctx context.Context) ([]string, error)
}

type service struct {
	client EC2ClientAPI
}

// NewService creates a new EC2 service.
func NewService(cfg aws.Config) Service {
	return &service{
		client: ec2.NewFromConfig(cfg),
	}
}

// NewServiceWithClient creates a new EC2 service with a provided client (for testing).
func NewServiceWithClient(client EC2ClientAPI) Service {
	return &service{
		client: client,
	}
}
