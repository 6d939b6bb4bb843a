// Package whitelist computes the set of CIDRs treated as trusted ingress sources.
package whitelist

import (
	"context"

	"github.com/thirukguru/sg-audit/model"
)

// Source names reported in adapter errors.
const (
	SourceVpcCidrs          = "vpc-cidrs"
	SourceSubnetCidrs       = "subnet-cidrs"
	SourceInstanceAddresses = "instance-addresses"
	SourceElasticIPs        = "elastic-ips"
)

// Topology reads the network facts the whitelist is derived from.
type Topology interface {
	GetVpcCidrs(ctx context.Context) ([]string, error)
	GetSubnetCidrs(ctx context.Context) ([]string, error)
	GetInstanceAddresses(ctx context.Context) ([]string, error)
	GetElasticIPs(ctx context.Context) ([]string, error)
}

// Service is the interface for the whitelist builder.
type Service interface {
	// BuildWhitelist returns a new set holding the dynamic topology CIDRs and
	// the static entries. static is never modified.
	BuildWhitelist(ctx context.Context, static []string) (model.StringSet, []model.AdapterError, error)
}

type service struct {
	topology    Topology
	maxParallel int
}

// NewService creates a whitelist builder running at most maxParallel queries at once.
func NewService(topology Topology, maxParallel int) Service {
	return &service{topology: topology, maxParallel: maxParallel}
}
