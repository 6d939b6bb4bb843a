package orchestrator

import (
	"context"
	"io"
	"time"

	"github.com/thirukguru/sg-audit/model"
	"github.com/thirukguru/sg-audit/service/attachment"
	"github.com/thirukguru/sg-audit/service/output"
	"github.com/thirukguru/sg-audit/service/storage"
	awssts "github.com/thirukguru/sg-audit/service/sts"
	"github.com/thirukguru/sg-audit/service/whitelist"
)

// Inventory lists the security groups of the region.
type Inventory interface {
	GetSecurityGroups(ctx context.Context) ([]model.SecurityGroup, error)
}

// Services are the collaborators of an Engine.
type Services struct {
	Identity    awssts.Service
	Inventory   Inventory
	Whitelist   whitelist.Service
	Attachments attachment.Service
}

// Engine runs one analysis of a region.
type Engine struct {
	region   string
	services Services
	now      func() time.Time
}

// Result is the outcome of a completed analysis. AdapterErrors lists the
// resource queries that failed; the report was built without their data.
type Result struct {
	Report        model.AnalysisReport
	AdapterErrors []model.AdapterError
	StartedAt     time.Time
	FinishedAt    time.Time
}

// Analyzer produces an analysis result from a static whitelist.
type Analyzer interface {
	Analyze(ctx context.Context, static []string) (*Result, error)
}

type service struct {
	analyzer       Analyzer
	outputService  output.Service
	storageService storage.Service
	versionInfo    model.VersionInfo
	out            io.Writer
	showSpinner    bool
}

// Service is the interface for orchestrator service.
type Service interface {
	Orchestrate(ctx context.Context, flags model.Flags) error
}
