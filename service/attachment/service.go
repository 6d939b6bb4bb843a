package attachment

import (
	"context"

	"github.com/thirukguru/sg-audit/model"
	"github.com/thirukguru/sg-audit/shared/fanout"
)

func (s *service) CollectAttachedGroups(ctx context.Context) (model.StringSet, []model.AdapterError, error) {
	return fanout.Run(ctx, s.maxParallel, s.tasks())
}

func (s *service) tasks() []fanout.Task {
	a := s.adapters
	var tasks []fanout.Task

	add := func(source string, lister GroupLister) {
		if lister != nil {
			tasks = append(tasks, fanout.Task{Source: source, Run: lister.GetAttachedSecurityGroups})
		}
	}

	add(SourceEC2, a.EC2)
	add(SourceRDS, a.RDS)
	if a.LoadBalancers != nil {
		tasks = append(tasks,
			fanout.Task{Source: SourceELB, Run: a.LoadBalancers.GetClassicAttachedSecurityGroups},
			fanout.Task{Source: SourceELBv2, Run: a.LoadBalancers.GetAttachedSecurityGroups},
		)
	}
	add(SourceLambda, a.Lambda)
	if a.ElastiCache != nil {
		tasks = append(tasks,
			fanout.Task{Source: SourceElastiCache, Run: a.ElastiCache.GetAttachedSecurityGroups},
			fanout.Task{Source: SourceElastiCacheClassic, Run: a.ElastiCache.GetClassicSecurityGroupNames},
		)
	}
	add(SourceECS, a.ECS)

	return tasks
}
