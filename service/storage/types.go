// Package storage keeps a local SQLite history of analyses and tracks each
// finding across runs.
package storage

import (
	"context"
	"time"

	"github.com/thirukguru/sg-audit/model"
)

// Finding kinds.
const (
	KindUnusedGroup   = "UNUSED_GROUP"
	KindUnsafeIngress = "UNSAFE_INGRESS"
)

// Finding statuses.
const (
	StatusOpen     = "OPEN"
	StatusResolved = "RESOLVED"
)

// SeverityUnused is stored for unused group findings, which carry no tier.
const SeverityUnused = "info"

// Service defines persistence and history query operations.
type Service interface {
	SaveAnalysis(ctx context.Context, input SaveAnalysisInput) (int64, error)
	GetTrends(accountID string, days int) ([]TrendPoint, error)
	GetRecentAnalyses(accountID string, limit int) ([]AnalysisSummary, error)
	GetReport(analysisID int64) (*model.AnalysisReport, error)
	GetAnalysisComparison(analysisID1, analysisID2 int64) (*AnalysisComparison, error)
	GetFindingLifecycle(findingHash string) ([]FindingLifecycleEvent, error)
	ListFindings(analysisID int64) ([]FindingSnapshot, error)
	Vacuum(ctx context.Context) error
	Reindex(ctx context.Context) error
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
	Close() error
}

// SaveAnalysisInput is the payload saved for a completed analysis.
type SaveAnalysisInput struct {
	RunUUID  string
	Region   string
	Profile  string
	Version  string
	Duration time.Duration
	Report   model.AnalysisReport
}

// Finding is one normalized finding used for lifecycle tracking.
type Finding struct {
	Hash      string
	Kind      string
	GroupID   string
	GroupName string
	Protocol  string
	Cidr      string
	Ports     string
	Severity  string
}

// TrendPoint is a daily aggregate per account and region.
type TrendPoint struct {
	AccountID string `json:"account_id"`
	Region    string `json:"region"`
	Date      string `json:"date"`
	Unused    int    `json:"unused"`
	Warnings  int    `json:"warnings"`
	Alerts    int    `json:"alerts"`
}

// AnalysisSummary provides compact analysis metadata. FlaggedGroups counts
// the distinct groups with at least one finding.
type AnalysisSummary struct {
	AnalysisID    int64
	RunUUID       string
	AccountID     string
	Region        string
	AnalyzedAt    time.Time
	FlaggedGroups int
	UnusedCount   int
	WarningCount  int
	AlertCount    int
	FailedSources string
	Version       string
}

// AnalysisComparison holds diff details between two analyses.
type AnalysisComparison struct {
	AnalysisID1    int64
	AnalysisID2    int64
	NewFindings    int
	Resolved       int
	Persistent     int
	NewHashes      []string
	ResolvedHashes []string
}

// FindingLifecycleEvent represents finding status at a given analysis.
type FindingLifecycleEvent struct {
	AnalysisID int64
	AnalyzedAt time.Time
	Status     string
	Severity   string
	Kind       string
	GroupID    string
}

// FindingSnapshot is an analysis-time finding view.
type FindingSnapshot struct {
	FindingHash string
	Kind        string
	GroupID     string
	Cidr        string
	Ports       string
	Severity    string
	Status      string
}
