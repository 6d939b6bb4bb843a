package awslambda

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

func (s *service) GetAttachedSecurityGroups(ctx context.Context) ([]string, error) {
	var ids []string

	paginator := lambda.NewListFunctionsPaginator(s.client, &lambda.ListFunctionsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list functions: %w", err)
		}

		for _, fn := range page.Functions {
			if fn.VpcConfig == nil {
				continue
			}
			for _, id := range fn.VpcConfig.SecurityGroupIds {
				if id != "" {
					ids = append(ids, id)
				}
			}
		}
	}

	return ids, nil
}
