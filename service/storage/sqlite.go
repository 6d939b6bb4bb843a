package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thirukguru/sg-audit/model"
	_ "modernc.org/sqlite"
)

const defaultDBPath = "~/.sg-audit/history.db"

// ErrAnalysisNotFound is returned when an analysis id has no stored row.
var ErrAnalysisNotFound = errors.New("analysis not found")

// NewService creates a SQLite-backed storage service.
func NewService(dbPath string) (Service, error) {
	resolved, err := resolvePath(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaV1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &service{db: db, dbPath: resolved}, nil
}

type service struct {
	db     *sql.DB
	dbPath string
}

func resolvePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		p = defaultDBPath
	}
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home dir: %w", err)
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}
	return filepath.Clean(p), nil
}

func (s *service) SaveAnalysis(ctx context.Context, input SaveAnalysisInput) (id int64, err error) {
	meta := input.Report.Metadata
	if meta.AccountID == "" {
		return 0, errors.New("account id is required")
	}
	if input.Region == "" {
		input.Region = meta.Region
	}
	if input.Region == "" {
		input.Region = "unknown"
	}
	if input.RunUUID == "" {
		input.RunUUID = fmt.Sprintf("run-%d", time.Now().UnixNano())
	}

	reportJSON, err := json.Marshal(input.Report)
	if err != nil {
		return 0, fmt.Errorf("failed to encode report: %w", err)
	}

	findings := dedupe(FindingsFromReport(input.Report))
	warnings, alerts := input.Report.SecurityGroups.CountBySeverity()
	groupIDs := map[string]bool{}
	for _, f := range findings {
		groupIDs[f.GroupID] = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO analyses (
			run_uuid, account_id, region, started_at, finished_at, duration_ms,
			flagged_groups, unused_count, warning_count, alert_count, failed_sources,
			cli_version, profile, report_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, input.RunUUID, meta.AccountID, input.Region, meta.StartedAt, meta.FinishedAt, input.Duration.Milliseconds(),
		len(groupIDs), len(input.Report.SecurityGroups.UnusedGroups), warnings, alerts,
		strings.Join(meta.FailedSources, ","), input.Version, input.Profile, string(reportJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis: %w", err)
	}
	analysisID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err = s.saveFindingsTx(ctx, tx, analysisID, meta.AccountID, input.Region, findings); err != nil {
		return 0, fmt.Errorf("failed to save findings: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return analysisID, nil
}

func dedupe(findings []Finding) []Finding {
	seen := make(map[string]bool, len(findings))
	out := findings[:0]
	for _, f := range findings {
		if seen[f.Hash] {
			continue
		}
		seen[f.Hash] = true
		out = append(out, f)
	}
	return out
}

// saveFindingsTx upserts the findings of one analysis as OPEN and resolves the
// previously open findings of the same account and region that are gone.
func (s *service) saveFindingsTx(ctx context.Context, tx *sql.Tx, analysisID int64, accountID, region string, findings []Finding) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	for _, f := range findings {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO findings (
				account_id, region, finding_hash, kind, group_id, group_name,
				protocol, cidr, ports, severity, first_seen, last_seen, status
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'OPEN')
			ON CONFLICT(account_id, region, finding_hash) DO UPDATE SET
				group_name=excluded.group_name,
				severity=excluded.severity,
				last_seen=excluded.last_seen,
				resolved_at=NULL,
				status='OPEN'
		`, accountID, region, f.Hash, f.Kind, f.GroupID, f.GroupName,
			f.Protocol, f.Cidr, f.Ports, f.Severity, now, now)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO analysis_findings(analysis_id, finding_hash, kind, group_id, cidr, ports, severity, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, 'OPEN')
		`, analysisID, f.Hash, f.Kind, f.GroupID, f.Cidr, f.Ports, f.Severity)
		if err != nil {
			return err
		}
	}

	args := []any{now, now, accountID, region}
	query := `
		UPDATE findings SET status='RESOLVED', resolved_at=?, last_seen=?
		WHERE account_id=? AND region=? AND status='OPEN'`
	if len(findings) > 0 {
		query += fmt.Sprintf(" AND finding_hash NOT IN (%s)", strings.TrimSuffix(strings.Repeat("?,", len(findings)), ","))
		for _, f := range findings {
			args = append(args, f.Hash)
		}
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO analysis_findings(analysis_id, finding_hash, kind, group_id, cidr, ports, severity, status)
		SELECT ?, finding_hash, kind, group_id, cidr, ports, severity, status
		FROM findings WHERE account_id=? AND region=? AND status='RESOLVED' AND resolved_at=?
	`, analysisID, accountID, region, now)
	return err
}

func (s *service) GetTrends(accountID string, days int) ([]TrendPoint, error) {
	if days <= 0 {
		days = 30
	}
	query := `
		SELECT
			account_id,
			region,
			DATE(analyzed_at) as day,
			MAX(unused_count),
			MAX(warning_count),
			MAX(alert_count)
		FROM analyses
		WHERE analyzed_at >= DATETIME('now', ?)
	`
	args := []any{fmt.Sprintf("-%d day", days)}
	if accountID != "" {
		query += " AND account_id=?"
		args = append(args, accountID)
	}
	query += " GROUP BY account_id, region, DATE(analyzed_at) ORDER BY day ASC, account_id ASC, region ASC"
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []TrendPoint{}
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.AccountID, &p.Region, &p.Date, &p.Unused, &p.Warnings, &p.Alerts); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (s *service) GetRecentAnalyses(accountID string, limit int) ([]AnalysisSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT analysis_id, run_uuid, account_id, region, analyzed_at,
			flagged_groups, unused_count, warning_count, alert_count, failed_sources, cli_version
		FROM analyses
	`
	args := []any{}
	if accountID != "" {
		query += " WHERE account_id=?"
		args = append(args, accountID)
	}
	query += " ORDER BY analysis_id DESC LIMIT ?"
	args = append(args, limit)
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AnalysisSummary{}
	for rows.Next() {
		var a AnalysisSummary
		var failed, version sql.NullString
		if err := rows.Scan(&a.AnalysisID, &a.RunUUID, &a.AccountID, &a.Region, &a.AnalyzedAt,
			&a.FlaggedGroups, &a.UnusedCount, &a.WarningCount, &a.AlertCount, &failed, &version); err != nil {
			return nil, err
		}
		a.FailedSources = failed.String
		a.Version = version.String
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *service) GetReport(analysisID int64) (*model.AnalysisReport, error) {
	var raw string
	err := s.db.QueryRow(`SELECT report_json FROM analyses WHERE analysis_id=?`, analysisID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrAnalysisNotFound, analysisID)
	}
	if err != nil {
		return nil, err
	}

	var report model.AnalysisReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, fmt.Errorf("failed to decode stored report %d: %w", analysisID, err)
	}
	return &report, nil
}

func (s *service) GetAnalysisComparison(analysisID1, analysisID2 int64) (*AnalysisComparison, error) {
	first, err := s.openHashes(analysisID1)
	if err != nil {
		return nil, err
	}
	second, err := s.openHashes(analysisID2)
	if err != nil {
		return nil, err
	}

	cmp := &AnalysisComparison{AnalysisID1: analysisID1, AnalysisID2: analysisID2}
	for h := range second {
		if !first[h] {
			cmp.NewHashes = append(cmp.NewHashes, h)
		}
	}
	for h := range first {
		if second[h] {
			cmp.Persistent++
		} else {
			cmp.ResolvedHashes = append(cmp.ResolvedHashes, h)
		}
	}
	cmp.NewFindings = len(cmp.NewHashes)
	cmp.Resolved = len(cmp.ResolvedHashes)
	return cmp, nil
}

func (s *service) openHashes(analysisID int64) (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT DISTINCT finding_hash FROM analysis_findings WHERE analysis_id=? AND status='OPEN'`, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]bool{}
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		out[h] = true
	}
	return out, rows.Err()
}

// GetFindingLifecycle accepts a full finding hash or a prefix of one.
func (s *service) GetFindingLifecycle(findingHash string) ([]FindingLifecycleEvent, error) {
	prefix := strings.ToLower(strings.TrimSpace(findingHash))
	if prefix == "" || strings.Trim(prefix, "0123456789abcdef") != "" {
		return nil, fmt.Errorf("invalid finding hash %q", findingHash)
	}
	rows, err := s.db.Query(`
		SELECT af.analysis_id, a.analyzed_at, af.status, af.severity, af.kind, af.group_id
		FROM analysis_findings af
		JOIN analyses a ON a.analysis_id = af.analysis_id
		WHERE af.finding_hash LIKE ?
		ORDER BY af.analysis_id ASC
	`, prefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []FindingLifecycleEvent{}
	for rows.Next() {
		var e FindingLifecycleEvent
		if err := rows.Scan(&e.AnalysisID, &e.AnalyzedAt, &e.Status, &e.Severity, &e.Kind, &e.GroupID); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *service) ListFindings(analysisID int64) ([]FindingSnapshot, error) {
	rows, err := s.db.Query(`
		SELECT finding_hash, kind, group_id, cidr, ports, severity, status
		FROM analysis_findings WHERE analysis_id=?
		ORDER BY CASE severity WHEN 'alert' THEN 0 WHEN 'warning' THEN 1 ELSE 2 END, group_id
	`, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []FindingSnapshot{}
	for rows.Next() {
		var f FindingSnapshot
		var cidr, ports sql.NullString
		if err := rows.Scan(&f.FindingHash, &f.Kind, &f.GroupID, &cidr, &ports, &f.Severity, &f.Status); err != nil {
			return nil, err
		}
		f.Cidr = cidr.String
		f.Ports = ports.String
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *service) Vacuum(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

func (s *service) Reindex(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "REINDEX")
	return err
}

func (s *service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, errors.New("days must be > 0")
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM analyses WHERE analyzed_at < DATETIME('now', ?)
	`, fmt.Sprintf("-%d day", days))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *service) Close() error {
	return s.db.Close()
}
