package analysis

import (
	"time"

	"github.com/thirukguru/sg-audit/model"
)

// Assemble wraps a classification with run metadata. Timestamps use RFC 3339
// so they sort lexically and keep their offset.
func Assemble(classification model.SecurityGroupsAnalysis, startedAt, finishedAt time.Time, identity model.CallerIdentity, provider string) model.AnalysisReport {
	return model.AnalysisReport{
		SecurityGroups: classification,
		Metadata: model.Metadata{
			StartedAt:  startedAt.Format(time.RFC3339),
			FinishedAt: finishedAt.Format(time.RFC3339),
			CloudProvider: model.CloudProvider{
				Name: provider,
				Auth: identity.Arn,
			},
			AccountID: identity.Account,
		},
	}
}
