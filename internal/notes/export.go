package notes

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"notekeeper/internal/domain"
	appErrors "notekeeper/internal/errors"
)

// ExportFormat selects the encoding used by Export.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
)

// Snapshot is the document written by Export.
type Snapshot struct {
	Tags  []domain.Tag  `json:"tags" yaml:"tags"`
	Notes []domain.Note `json:"notes" yaml:"notes"`
}

// FormatForPath infers the export format from a file extension.
func FormatForPath(path string) (ExportFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", appErrors.New(appErrors.CodeExportFailed,
			fmt.Sprintf("unsupported export extension %q (use .json, .yaml or .yml)", filepath.Ext(path)), nil)
	}
}

// Export writes every tag and note to w.
func (r *Repository) Export(w io.Writer, format ExportFormat) error {
	snap := Snapshot{Tags: r.Tags(), Notes: r.Notes()}
	if snap.Notes == nil {
		snap.Notes = []domain.Note{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return appErrors.New(appErrors.CodeExportFailed, "encode json", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return appErrors.New(appErrors.CodeExportFailed, "encode yaml", err)
		}
		if err := enc.Close(); err != nil {
			return appErrors.New(appErrors.CodeExportFailed, "flush yaml", err)
		}
	default:
		return appErrors.New(appErrors.CodeExportFailed, fmt.Sprintf("unknown export format %q", format), nil)
	}
	return nil
}
