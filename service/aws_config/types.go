package awsconfig

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

type service struct{}

// Input selects the profile and region of the session and the timeout applied
// to every AWS API call made with it.
type Input struct {
	Region      string
	Profile     string
	CallTimeout time.Duration
}

// Service is the interface for AWS configuration service.
type Service interface {
	GetAWSCfg(ctx context.Context, input Input) (aws.Config, error)
}
