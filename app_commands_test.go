package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/thirukguru/sg-audit/model"
	"github.com/thirukguru/sg-audit/service/storage"
)

type mockStorage struct {
	points   []storage.TrendPoint
	analyses []storage.AnalysisSummary
	cmp      *storage.AnalysisComparison
}

func (m *mockStorage) SaveAnalysis(context.Context, storage.SaveAnalysisInput) (int64, error) {
	return 0, nil
}
func (m *mockStorage) GetTrends(accountID string, days int) ([]storage.TrendPoint, error) {
	return m.points, nil
}
func (m *mockStorage) GetRecentAnalyses(accountID string, limit int) ([]storage.AnalysisSummary, error) {
	return m.analyses, nil
}
func (m *mockStorage) GetReport(int64) (*model.AnalysisReport, error) {
	return nil, storage.ErrAnalysisNotFound
}
func (m *mockStorage) GetAnalysisComparison(analysisID1, analysisID2 int64) (*storage.AnalysisComparison, error) {
	return m.cmp, nil
}
func (m *mockStorage) GetFindingLifecycle(string) ([]storage.FindingLifecycleEvent, error) {
	return nil, nil
}
func (m *mockStorage) ListFindings(int64) ([]storage.FindingSnapshot, error) {
	return nil, nil
}
func (m *mockStorage) Vacuum(context.Context) error  { return nil }
func (m *mockStorage) Reindex(context.Context) error { return nil }
func (m *mockStorage) PurgeOlderThan(context.Context, int) (int64, error) {
	return 0, nil
}
func (m *mockStorage) Close() error { return nil }

func TestRunTrendWorkflowExports(t *testing.T) {
	tmp := t.TempDir()
	jsonPath := filepath.Join(tmp, "trends.json")
	csvPath := filepath.Join(tmp, "trends.csv")

	store := &mockStorage{
		points: []storage.TrendPoint{
			{AccountID: "111111111111", Region: "us-east-1", Date: "2026-02-10", Unused: 3, Warnings: 2, Alerts: 1},
			{AccountID: "111111111111", Region: "us-west-2", Date: "2026-02-10", Unused: 0, Warnings: 1, Alerts: 0},
		},
		analyses: []storage.AnalysisSummary{{AnalysisID: 2, AnalyzedAt: time.Now()}, {AnalysisID: 1, AnalyzedAt: time.Now().Add(-time.Hour)}},
		cmp:      &storage.AnalysisComparison{AnalysisID1: 1, AnalysisID2: 2, NewFindings: 1, Resolved: 2, Persistent: 3},
	}

	var out bytes.Buffer
	err := runTrendWorkflow(store, trendOptions{
		Days:       30,
		Compare:    true,
		ExportJSON: jsonPath,
		ExportCSV:  csvPath,
		AccountID:  "111111111111",
	}, &out)
	if err != nil {
		t.Fatalf("runTrendWorkflow failed: %v", err)
	}
	if !strings.Contains(out.String(), "Analysis Comparison (1 -> 2)") {
		t.Fatalf("expected comparison in output: %s", out.String())
	}

	jsonBytes, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("failed reading exported json: %v", err)
	}
	var exported []storage.TrendPoint
	if err := json.Unmarshal(jsonBytes, &exported); err != nil {
		t.Fatalf("invalid json export: %v", err)
	}
	if len(exported) != 2 || exported[0].Region == "" {
		t.Fatalf("unexpected json export content: %+v", exported)
	}

	csvBytes, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("failed reading exported csv: %v", err)
	}
	csv := string(csvBytes)
	if !strings.Contains(csv, "account_id,region,date,unused,warnings,alerts") {
		t.Fatalf("csv header missing: %s", csv)
	}
	if !strings.Contains(csv, "111111111111,us-east-1,2026-02-10,3,2,1") {
		t.Fatalf("csv row missing: %s", csv)
	}
}

func seedHistory(t *testing.T) (string, int64, int64) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := storage.NewService(dbPath)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	defer store.Close()

	report := func(unused ...string) model.AnalysisReport {
		r := model.AnalysisReport{Metadata: model.Metadata{
			StartedAt:     "2024-05-01T10:00:00Z",
			FinishedAt:    "2024-05-01T10:00:01Z",
			CloudProvider: model.CloudProvider{Name: "aws", Auth: "arn:aws:iam::222222222222:user/a"},
			AccountID:     "222222222222",
			Region:        "eu-central-1",
		}}
		for _, id := range unused {
			r.SecurityGroups.UnusedGroups = append(r.SecurityGroups.UnusedGroups, model.UnusedGroup{GroupID: id, GroupName: id, VpcID: "vpc-1"})
		}
		return r
	}

	ctx := context.Background()
	first, err := store.SaveAnalysis(ctx, storage.SaveAnalysisInput{Report: report("sg-a", "sg-b")})
	if err != nil {
		t.Fatalf("SaveAnalysis failed: %v", err)
	}
	second, err := store.SaveAnalysis(ctx, storage.SaveAnalysisInput{Report: report("sg-b", "sg-c")})
	if err != nil {
		t.Fatalf("SaveAnalysis failed: %v", err)
	}
	return dbPath, first, second
}

func TestRunHistoryCommand(t *testing.T) {
	dbPath, first, second := seedHistory(t)
	ids := func(id int64) string { return strconv.FormatInt(id, 10) }

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"list", []string{"list"}, []string{"222222222222", "eu-central-1"}},
		{"show", []string{"show", ids(second)}, []string{"sg-b", "sg-c", "UNUSED_GROUP"}},
		{"report", []string{"report", ids(first), "-o", "json"}, []string{`"GroupId": "sg-a"`}},
		{"compare", []string{"compare", ids(first), ids(second)}, []string{"Analysis Comparison"}},
		{"trends", []string{"trends", "--account-id", "222222222222"}, []string{"eu-central-1"}},
	}
	for _, tc := range tests {
		var out bytes.Buffer
		args := append([]string{"--db-path", dbPath}, tc.args...)
		if err := runStorageCommand(context.Background(), "history", args, &out); err != nil {
			t.Fatalf("%s failed: %v", tc.name, err)
		}
		for _, want := range tc.want {
			if !strings.Contains(out.String(), want) {
				t.Fatalf("%s: expected %q in output:\n%s", tc.name, want, out.String())
			}
		}
	}

	hash := storage.FindingHash(storage.KindUnusedGroup, "sg-a", "", "", "")
	var out bytes.Buffer
	if err := runStorageCommand(context.Background(), "history", []string{"--db-path", dbPath, "finding", hash[:12]}, &out); err != nil {
		t.Fatalf("finding failed: %v", err)
	}
	if !strings.Contains(out.String(), storage.StatusOpen) || !strings.Contains(out.String(), storage.StatusResolved) {
		t.Fatalf("expected open and resolved events:\n%s", out.String())
	}
}

func TestRunHistoryCommandUsageErrors(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	for _, args := range [][]string{
		{},
		{"show"},
		{"show", "abc"},
		{"compare", "1"},
		{"finding"},
		{"explode"},
	} {
		full := append([]string{"--db-path", dbPath}, args...)
		if err := runStorageCommand(context.Background(), "history", full, &bytes.Buffer{}); err == nil {
			t.Fatalf("expected error for history %v", args)
		}
	}
}

func TestRunDBCommand(t *testing.T) {
	dbPath, _, _ := seedHistory(t)
	ctx := context.Background()

	for _, sub := range []string{"vacuum", "reindex"} {
		if err := runStorageCommand(ctx, "db", []string{"--db-path", dbPath, sub}, &bytes.Buffer{}); err != nil {
			t.Fatalf("db %s failed: %v", sub, err)
		}
	}

	var out bytes.Buffer
	if err := runStorageCommand(ctx, "db", []string{"--db-path", dbPath, "purge", "--older-than", "1"}, &out); err != nil {
		t.Fatalf("db purge failed: %v", err)
	}
	if out.String() != "Purged 0 analyses\n" {
		t.Fatalf("unexpected purge output: %q", out.String())
	}

	if err := runStorageCommand(ctx, "db", []string{"--db-path", dbPath}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected usage error without subcommand")
	}
	if err := runStorageCommand(ctx, "db", []string{"--db-path", dbPath, "drop"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unsupported db command")
	}
}
