package elb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
)

func (s *service) GetClassicAttachedSecurityGroups(ctx context.Context) ([]string, error) {
	var groups []string

	paginator := elasticloadbalancing.NewDescribeLoadBalancersPaginator(s.classic, &elasticloadbalancing.DescribeLoadBalancersInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe classic load balancers: %w", err)
		}

		for _, lb := range page.LoadBalancerDescriptions {
			groups = appendNonEmpty(groups, lb.SecurityGroups)
		}
	}

	return groups, nil
}

func (s *service) GetAttachedSecurityGroups(ctx context.Context) ([]string, error) {
	var groups []string

	paginator := elasticloadbalancingv2.NewDescribeLoadBalancersPaginator(s.v2, &elasticloadbalancingv2.DescribeLoadBalancersInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe load balancers: %w", err)
		}

		// Gateway load balancers and older NLBs carry no security groups.
		for _, lb := range page.LoadBalancers {
			groups = appendNonEmpty(groups, lb.SecurityGroups)
		}
	}

	return groups, nil
}

func appendNonEmpty(dst, values []string) []string {
	for _, v := range values {
		if v != "" {
			dst = append(dst, v)
		}
	}
	return dst
}
