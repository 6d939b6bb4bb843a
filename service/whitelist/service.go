package whitelist

import (
	"context"
	"strings"

	"github.com/thirukguru/sg-audit/model"
	"github.com/thirukguru/sg-audit/shared/fanout"
)

func (s *service) BuildWhitelist(ctx context.Context, static []string) (model.StringSet, []model.AdapterError, error) {
	dynamic, failures, err := fanout.Run(ctx, s.maxParallel, []fanout.Task{
		{Source: SourceVpcCidrs, Run: s.topology.GetVpcCidrs},
		{Source: SourceSubnetCidrs, Run: s.topology.GetSubnetCidrs},
		{Source: SourceInstanceAddresses, Run: s.topology.GetInstanceAddresses},
		{Source: SourceElasticIPs, Run: s.topology.GetElasticIPs},
	})
	if err != nil {
		return nil, nil, err
	}

	fixed := model.NewStringSet()
	for _, entry := range static {
		fixed.Add(strings.TrimSpace(entry))
	}

	return dynamic.Union(fixed), failures, nil
}
