package awsecs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/rs/zerolog"
)

func (s *service) GetAttachedSecurityGroups(ctx context.Context) ([]string, error) {
	var groups []string

	clusters, err := s.listClusters(ctx)
	if err != nil {
		return nil, err
	}

	for _, cluster := range clusters {
		services, err := s.listServices(ctx, cluster)
		if err != nil {
			return nil, err
		}

		for _, batch := range chunk(services, DescribeServicesBatchSize) {
			out, err := s.client.DescribeServices(ctx, &ecs.DescribeServicesInput{
				Cluster:  aws.String(cluster),
				Services: batch,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to describe services in %s: %w", cluster, err)
			}

			for _, f := range out.Failures {
				zerolog.Ctx(ctx).Debug().
					Str("cluster", cluster).
					Str("arn", aws.ToString(f.Arn)).
					Str("reason", aws.ToString(f.Reason)).
					Msg("ecs service not described")
			}

			for _, svc := range out.Services {
				if svc.NetworkConfiguration == nil || svc.NetworkConfiguration.AwsvpcConfiguration == nil {
					continue
				}
				for _, id := range svc.NetworkConfiguration.AwsvpcConfiguration.SecurityGroups {
					if id != "" {
						groups = append(groups, id)
					}
				}
			}
		}
	}

	return groups, nil
}

func (s *service) listClusters(ctx context.Context) ([]string, error) {
	var arns []string

	paginator := ecs.NewListClustersPaginator(s.client, &ecs.ListClustersInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list clusters: %w", err)
		}
		arns = append(arns, page.ClusterArns...)
	}

	return arns, nil
}

func (s *service) listServices(ctx context.Context, cluster string) ([]string, error) {
	var arns []string

	paginator := ecs.NewListServicesPaginator(s.client, &ecs.ListServicesInput{Cluster: aws.String(cluster)})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list services in %s: %w", cluster, err)
		}
		arns = append(arns, page.ServiceArns...)
	}

	return arns, nil
}

// chunk splits items into consecutive slices of at most size elements.
func chunk(items []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}
