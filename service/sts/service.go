// Package awssts resolves the identity behind the analysis session.
package awssts

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/thirukguru/sg-audit/model"
)

// NewService creates a new STS service.
func NewService(awsconfig aws.Config) Service {
	return NewServiceWithClient(sts.NewFromConfig(awsconfig))
}

// NewServiceWithClient creates a new STS service with a custom client.
func NewServiceWithClient(client STSClientAPI) Service {
	return &service{client: client}
}

// GetCallerIdentity returns the account and principal of the session.
// Any failure means the session is not usable and is reported as
// *model.AuthenticationError.
func (s *service) GetCallerIdentity(ctx context.Context) (model.CallerIdentity, error) {
	out, err := s.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return model.CallerIdentity{}, &model.AuthenticationError{Err: fmt.Errorf("failed to get caller identity: %w", err)}
	}

	return model.CallerIdentity{
		Account: aws.ToString(out.Account),
		Arn:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}
