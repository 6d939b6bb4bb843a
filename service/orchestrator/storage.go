package orchestrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/thirukguru/sg-audit/model"
	"github.com/thirukguru/sg-audit/service/storage"
)

func (s *service) persistAnalysisIfEnabled(ctx context.Context, flags model.Flags, result *Result) error {
	if s.storageService == nil || !flags.Store {
		return nil
	}

	id, err := s.storageService.SaveAnalysis(ctx, storage.SaveAnalysisInput{
		RunUUID:  uuid.NewString(),
		Region:   result.Report.Metadata.Region,
		Profile:  flags.Profile,
		Version:  s.versionInfo.Version,
		Duration: result.FinishedAt.Sub(result.StartedAt),
		Report:   result.Report,
	})
	if err != nil {
		return fmt.Errorf("failed to store analysis: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int64("analysis_id", id).Msg("analysis stored")
	return nil
}
