package awsrds

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
)

func (s *service) GetAttachedSecurityGroups(ctx context.Context) ([]string, error) {
	var ids []string

	paginator := rds.NewDescribeDBInstancesPaginator(s.client, &rds.DescribeDBInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe db instances: %w", err)
		}

		for _, db := range page.DBInstances {
			for _, sg := range db.VpcSecurityGroups {
				if id := aws.ToString(sg.VpcSecurityGroupId); id != "" {
					ids = append(ids, id)
				}
			}
		}
	}

	return ids, nil
}
