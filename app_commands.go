package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/thirukguru/sg-audit/service/output"
	"github.com/thirukguru/sg-audit/service/storage"
	historytable "github.com/thirukguru/sg-audit/shared/history_table"
)

func runStorageCommand(ctx context.Context, cmd string, args []string, w io.Writer) error {
	switch cmd {
	case "db":
		return runDBCommand(ctx, args, w)
	case "history":
		return runHistoryCommand(args, w)
	default:
		return fmt.Errorf("unsupported command: %s", cmd)
	}
}

func runDBCommand(ctx context.Context, args []string, w io.Writer) error {
	fs := pflag.NewFlagSet("db", pflag.ContinueOnError)
	dbPath := fs.String("db-path", "", "SQLite database path")
	olderThan := fs.Int("older-than", 30, "Purge analyses older than N days")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: sg-audit db <vacuum|reindex|purge> [--db-path ...]")
	}

	store, err := storage.NewService(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sub := rest[0]
	switch sub {
	case "vacuum":
		return store.Vacuum(ctx)
	case "reindex":
		return store.Reindex(ctx)
	case "purge":
		count, err := store.PurgeOlderThan(ctx, *olderThan)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Purged %d analyses\n", count)
		return nil
	default:
		return fmt.Errorf("unsupported db command: %s", sub)
	}
}

type trendOptions struct {
	Days       int
	Compare    bool
	ExportJSON string
	ExportCSV  string
	AccountID  string
}

func runHistoryCommand(args []string, w io.Writer) error {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	dbPath := fs.String("db-path", "", "SQLite database path")
	accountID := fs.String("account-id", "", "AWS account ID filter")
	limit := fs.Int("limit", 20, "Number of analyses to list")
	format := fs.StringP("output", "o", "human", "Output format of history report (human, json, or yml)")
	days := fs.Int("days", 30, "Trend window in days")
	compare := fs.Bool("compare", false, "Compare the two most recent analyses after the trend table")
	exportJSON := fs.String("export-json", "", "Write trend points to a JSON file")
	exportCSV := fs.String("export-csv", "", "Write trend points to a CSV file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: sg-audit history <list|show|report|finding|compare|trends>")
	}

	store, err := storage.NewService(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sub := rest[0]
	switch sub {
	case "list":
		analyses, err := store.GetRecentAnalyses(*accountID, *limit)
		if err != nil {
			return err
		}
		historytable.RenderAnalysesTable(w, analyses)
		return nil
	case "show":
		analysisID, err := analysisIDArg(rest, "show")
		if err != nil {
			return err
		}
		findings, err := store.ListFindings(analysisID)
		if err != nil {
			return err
		}
		historytable.RenderFindingsTable(w, findings)
		return nil
	case "report":
		analysisID, err := analysisIDArg(rest, "report")
		if err != nil {
			return err
		}
		report, err := store.GetReport(analysisID)
		if err != nil {
			return err
		}
		return output.NewServiceWithWriter(strings.ToLower(*format), w).Render(*report)
	case "finding":
		if len(rest) < 2 {
			return fmt.Errorf("usage: sg-audit history finding <hash>")
		}
		events, err := store.GetFindingLifecycle(rest[1])
		if err != nil {
			return err
		}
		historytable.RenderLifecycleTable(w, events)
		return nil
	case "compare":
		if len(rest) < 3 {
			return fmt.Errorf("usage: sg-audit history compare <analysis-id> <analysis-id>")
		}
		first, err := strconv.ParseInt(rest[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid analysis id %q: %w", rest[1], err)
		}
		second, err := strconv.ParseInt(rest[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid analysis id %q: %w", rest[2], err)
		}
		cmp, err := store.GetAnalysisComparison(first, second)
		if err != nil {
			return err
		}
		historytable.RenderComparisonTable(w, cmp)
		return nil
	case "trends":
		return runTrendWorkflow(store, trendOptions{
			Days:       *days,
			Compare:    *compare,
			ExportJSON: *exportJSON,
			ExportCSV:  *exportCSV,
			AccountID:  *accountID,
		}, w)
	default:
		return fmt.Errorf("unsupported history command: %s", sub)
	}
}

func analysisIDArg(rest []string, sub string) (int64, error) {
	if len(rest) < 2 {
		return 0, fmt.Errorf("usage: sg-audit history %s <analysis-id>", sub)
	}
	id, err := strconv.ParseInt(rest[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid analysis id %q: %w", rest[1], err)
	}
	return id, nil
}

func runTrendWorkflow(store storage.Service, opts trendOptions, w io.Writer) error {
	points, err := store.GetTrends(opts.AccountID, opts.Days)
	if err != nil {
		return err
	}
	historytable.RenderTrendTable(w, points)

	if opts.Compare {
		analyses, err := store.GetRecentAnalyses(opts.AccountID, 2)
		if err == nil && len(analyses) >= 2 {
			cmp, err := store.GetAnalysisComparison(analyses[1].AnalysisID, analyses[0].AnalysisID)
			if err == nil {
				historytable.RenderComparisonTable(w, cmp)
			}
		}
	}

	if strings.TrimSpace(opts.ExportJSON) != "" {
		b, err := json.MarshalIndent(points, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.ExportJSON, b, 0o644); err != nil {
			return err
		}
	}
	if strings.TrimSpace(opts.ExportCSV) != "" {
		f, err := os.Create(opts.ExportCSV)
		if err != nil {
			return err
		}
		defer f.Close()
		cw := csv.NewWriter(f)
		_ = cw.Write([]string{"account_id", "region", "date", "unused", "warnings", "alerts"})
		for _, p := range points {
			_ = cw.Write([]string{p.AccountID, p.Region, p.Date, strconv.Itoa(p.Unused), strconv.Itoa(p.Warnings), strconv.Itoa(p.Alerts)})
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
	}

	return nil
}
