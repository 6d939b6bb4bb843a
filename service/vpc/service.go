package vpc

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/thirukguru/sg-audit/model"
)

func (s *service) GetSecurityGroups(ctx context.Context) ([]model.SecurityGroup, error) {
	var groups []model.SecurityGroup

	paginator := ec2.NewDescribeSecurityGroupsPaginator(s.client, &ec2.DescribeSecurityGroupsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe security groups: %w", err)
		}

		for _, sg := range page.SecurityGroups {
			groups = append(groups, toSecurityGroup(sg))
		}
	}

	return groups, nil
}

func toSecurityGroup(sg types.SecurityGroup) model.SecurityGroup {
	group := model.SecurityGroup{
		GroupID:     aws.ToString(sg.GroupId),
		GroupName:   aws.ToString(sg.GroupName),
		Description: aws.ToString(sg.Description),
		VpcID:       sg.VpcId,
	}

	for _, perm := range sg.IpPermissions {
		rule := model.IngressRule{
			Protocol: aws.ToString(perm.IpProtocol),
			FromPort: perm.FromPort,
			ToPort:   perm.ToPort,
		}
		// IPv6 ranges and group references are not part of the exposure check.
		for _, ipRange := range perm.IpRanges {
			if cidr := aws.ToString(ipRange.CidrIp); cidr != "" {
				rule.CidrRanges = append(rule.CidrRanges, cidr)
			}
		}
		group.IngressRules = append(group.IngressRules, rule)
	}

	return group
}

func (s *service) GetAttachedSecurityGroups(ctx context.Context) ([]string, error) {
	var ids []string

	err := s.eachInstance(ctx, func(instance types.Instance) {
		for _, sg := range instance.SecurityGroups {
			if id := aws.ToString(sg.GroupId); id != "" {
				ids = append(ids, id)
			}
		}
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (s *service) GetVpcCidrs(ctx context.Context) ([]string, error) {
	var cidrs []string

	paginator := ec2.NewDescribeVpcsPaginator(s.client, &ec2.DescribeVpcsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe vpcs: %w", err)
		}

		for _, v := range page.Vpcs {
			if cidr := aws.ToString(v.CidrBlock); cidr != "" {
				cidrs = append(cidrs, cidr)
			}
			for _, assoc := range v.CidrBlockAssociationSet {
				if cidr := aws.ToString(assoc.CidrBlock); cidr != "" {
					cidrs = append(cidrs, cidr)
				}
			}
		}
	}

	return cidrs, nil
}

func (s *service) GetSubnetCidrs(ctx context.Context) ([]string, error) {
	var cidrs []string

	paginator := ec2.NewDescribeSubnetsPaginator(s.client, &ec2.DescribeSubnetsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe subnets: %w", err)
		}

		for _, subnet := range page.Subnets {
			if cidr := aws.ToString(subnet.CidrBlock); cidr != "" {
				cidrs = append(cidrs, cidr)
			}
		}
	}

	return cidrs, nil
}

func (s *service) GetInstanceAddresses(ctx context.Context) ([]string, error) {
	var addrs []string

	err := s.eachInstance(ctx, func(instance types.Instance) {
		for _, eni := range instance.NetworkInterfaces {
			addrs = appendHost(addrs, aws.ToString(eni.PrivateIpAddress))
			if eni.Association != nil {
				addrs = appendHost(addrs, aws.ToString(eni.Association.PublicIp))
			}
			for _, secondary := range eni.PrivateIpAddresses {
				addrs = appendHost(addrs, aws.ToString(secondary.PrivateIpAddress))
				if secondary.Association != nil {
					addrs = appendHost(addrs, aws.ToString(secondary.Association.PublicIp))
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}

	return addrs, nil
}

func (s *service) GetElasticIPs(ctx context.Context) ([]string, error) {
	// DescribeAddresses is not paginated.
	out, err := s.client.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe addresses: %w", err)
	}

	var addrs []string
	for _, addr := range out.Addresses {
		addrs = appendHost(addrs, aws.ToString(addr.PublicIp))
		addrs = appendHost(addrs, aws.ToString(addr.PrivateIpAddress))
	}

	return addrs, nil
}

func (s *service) eachInstance(ctx context.Context, fn func(types.Instance)) error {
	paginator := ec2.NewDescribeInstancesPaginator(s.client, &ec2.DescribeInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to describe instances: %w", err)
		}

		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				fn(instance)
			}
		}
	}
	return nil
}

// appendHost appends ip as a single-host CIDR, skipping empty values.
func appendHost(dst []string, ip string) []string {
	if ip == "" {
		return dst
	}
	return append(dst, ip+"/32")
}
