package output

import (
	"context"
	"io"

	"github.com/thirukguru/sg-audit/model"
)

// Format represents the output format type
type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatYML   Format = "yml"
)

// Renderer draws the human form of a report.
type Renderer interface {
	DrawReport(w io.Writer, report model.AnalysisReport)
}

// service is the internal implementation
type service struct {
	format   Format
	out      io.Writer
	renderer Renderer
}

// Service defines the interface for output operations
type Service interface {
	// Render writes the report to the service output in the selected format.
	Render(report model.AnalysisReport) error
	// WriteFile persists the report to path in the selected format. The human
	// format cannot be persisted: a warning is logged and nothing is written.
	WriteFile(ctx context.Context, report model.AnalysisReport, path string) error
	Format() Format
}
