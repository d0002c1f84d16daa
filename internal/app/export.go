// ABOUTME: Encode and decode the backup interchange format.
// ABOUTME: Supports JSON and YAML; decoding rejects unknown fields.
package app

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/harperreed/gym/internal/models"
	"gopkg.in/yaml.v3"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format: %q (expected json or yaml)", s)
	}
}

// EncodeExport serializes an export in the given format.
func EncodeExport(export *models.Export, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(export)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown format: %q", format)
	}
}

// DecodeExport parses an export in the given format. Unknown fields are an
// error so a mistyped or foreign file never half-imports.
func DecodeExport(data []byte, format Format) (*models.Export, error) {
	var export models.Export
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&export); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&export); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format: %q", format)
	}
	return &export, nil
}
