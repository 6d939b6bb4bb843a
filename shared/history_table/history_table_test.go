package historytable

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/thirukguru/sg-audit/service/storage"
)

func TestRenderAnalysesTable(t *testing.T) {
	var buf bytes.Buffer
	RenderAnalysesTable(&buf, []storage.AnalysisSummary{{
		AnalysisID: 7, AnalyzedAt: time.Now(), AccountID: "123456789012", Region: "eu-west-1",
		FlaggedGroups: 2, UnusedCount: 1, WarningCount: 3, AlertCount: 4, FailedSources: "ecs",
	}})

	out := buf.String()
	assert.Contains(t, out, "123456789012")
	assert.Contains(t, out, "eu-west-1")
	assert.Contains(t, out, "ecs")
}

func TestRenderEmptyTables(t *testing.T) {
	var buf bytes.Buffer
	RenderAnalysesTable(&buf, nil)
	RenderFindingsTable(&buf, nil)
	RenderLifecycleTable(&buf, nil)
	RenderComparisonTable(&buf, nil)

	assert.Equal(t, "No analyses stored\nNo findings recorded\nFinding not found\nNo comparison data available\n", buf.String())
}

func TestRenderFindingsTableShortensHashes(t *testing.T) {
	hash := strings.Repeat("ab", 32)
	var buf bytes.Buffer
	RenderFindingsTable(&buf, []storage.FindingSnapshot{{
		FindingHash: hash, Kind: storage.KindUnsafeIngress, GroupID: "sg-1", Cidr: "0.0.0.0/0",
		Ports: "22", Severity: "alert", Status: storage.StatusOpen,
	}})

	out := buf.String()
	assert.Contains(t, out, hash[:12])
	assert.NotContains(t, out, hash)
	assert.Contains(t, out, "UNSAFE_INGRESS")
}

func TestRenderComparisonTable(t *testing.T) {
	var buf bytes.Buffer
	RenderComparisonTable(&buf, &storage.AnalysisComparison{
		AnalysisID1: 1, AnalysisID2: 2, NewFindings: 1, Resolved: 1, Persistent: 5,
		NewHashes: []string{"aaaaaaaaaaaaaaaa"}, ResolvedHashes: []string{"bbbb"},
	})

	out := buf.String()
	assert.Contains(t, out, "Analysis Comparison (1 -> 2)")
	assert.Contains(t, out, "  + aaaaaaaaaaaa\n")
	assert.Contains(t, out, "  - bbbb\n")
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "abc", ShortHash("abc"))
	assert.Equal(t, "0123456789ab", ShortHash("0123456789abcdef"))
}
