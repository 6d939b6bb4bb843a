// Package reportfile reads analysis files saved with --file.
package reportfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/thirukguru/sg-audit/model"
	"gopkg.in/yaml.v3"
)

// ErrFileExtensionMissing is returned for files whose extension does not name
// a supported format.
var ErrFileExtensionMissing = errors.New("analysis file must end in .json, .yml or .yaml")

// Load decodes the analysis stored at path, choosing the decoder by extension.
func Load(path string) (model.AnalysisReport, error) {
	var report model.AnalysisReport

	var decode func([]byte, any) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		decode = json.Unmarshal
	case ".yml", ".yaml":
		decode = yaml.Unmarshal
	default:
		return report, fmt.Errorf("%w: %s", ErrFileExtensionMissing, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return report, fmt.Errorf("failed to read analysis file: %w", err)
	}
	if err := decode(data, &report); err != nil {
		return report, fmt.Errorf("failed to parse analysis file %s: %w", path, err)
	}
	return report, nil
}
