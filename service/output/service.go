// Package output renders analysis reports as human text, JSON or YAML.
package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/thirukguru/sg-audit/model"
	humanoutput "github.com/thirukguru/sg-audit/shared/human_output"
	"gopkg.in/yaml.v3"
)

type realRenderer struct{}

func (r *realRenderer) DrawReport(w io.Writer, report model.AnalysisReport) {
	humanoutput.Draw(w, report)
}

// NewService creates a new output service writing to stdout. Unknown formats
// fall back to human.
func NewService(format string) Service {
	return NewServiceWithWriter(format, os.Stdout)
}

// NewServiceWithWriter creates a new output service writing to w.
func NewServiceWithWriter(format string, w io.Writer) Service {
	f := FormatHuman
	switch Format(format) {
	case FormatJSON:
		f = FormatJSON
	case FormatYML:
		f = FormatYML
	}

	return &service{
		format:   f,
		out:      w,
		renderer: &realRenderer{},
	}
}

func (s *service) Format() Format {
	return s.format
}

func (s *service) Render(report model.AnalysisReport) error {
	if s.format == FormatHuman {
		s.renderer.DrawReport(s.out, report)
		return nil
	}

	data, err := Marshal(s.format, report)
	if err != nil {
		return err
	}
	_, err = s.out.Write(data)
	return err
}

func (s *service) WriteFile(ctx context.Context, report model.AnalysisReport, path string) error {
	if s.format == FormatHuman {
		zerolog.Ctx(ctx).Warn().
			Str("file", path).
			Msg("Your analysis file will not be created as 'human' output is not supported.")
		return nil
	}

	data, err := Marshal(s.format, report)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write analysis file: %w", err)
	}
	return nil
}

// Marshal encodes a report in a machine format. JSON is indented with four
// spaces and ends with a newline.
func Marshal(format Format, report model.AnalysisReport) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "    ")
		if err := enc.Encode(report); err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("format %q has no machine encoding", format)
	}
}
