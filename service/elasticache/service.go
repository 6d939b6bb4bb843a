package awselasticache

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticache"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
	"github.com/thirukguru/sg-audit/model"
)

func (s *service) GetAttachedSecurityGroups(ctx context.Context) ([]string, error) {
	var groups []string

	paginator := elasticache.NewDescribeCacheClustersPaginator(s.client, &elasticache.DescribeCacheClustersInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe cache clusters: %w", err)
		}

		for _, cluster := range page.CacheClusters {
			for _, csg := range cluster.CacheSecurityGroups {
				if name := aws.ToString(csg.CacheSecurityGroupName); name != "" {
					groups = append(groups, name)
				}
			}
			for _, sg := range cluster.SecurityGroups {
				if id := aws.ToString(sg.SecurityGroupId); id != "" {
					groups = append(groups, id)
				}
			}
		}
	}

	return groups, nil
}

func (s *service) GetClassicSecurityGroupNames(ctx context.Context) ([]string, error) {
	var names []string

	paginator := elasticache.NewDescribeCacheSecurityGroupsPaginator(s.client, &elasticache.DescribeCacheSecurityGroupsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Accounts without EC2-Classic reject this call outright.
			zerolog.Ctx(ctx).Debug().
				Str("code", apiErrorCode(err)).
				Err(err).
				Msg("cache security groups unavailable")
			return nil, fmt.Errorf("failed to describe cache security groups: %w: %w", model.ErrExpectedAbsence, err)
		}

		for _, csg := range page.CacheSecurityGroups {
			for _, ec2sg := range csg.EC2SecurityGroups {
				if name := aws.ToString(ec2sg.EC2SecurityGroupName); name != "" {
					names = append(names, name)
				}
			}
		}
	}

	return names, nil
}

func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
