// Package playground runs the analyzer end to end on source text and
// renders the result for people and tools.
package playground

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	goyaml "github.com/itchyny/go-yaml"

	"github.com/speakeasy-api/sinkflow/analysis"
)

// Format selects how a result is rendered.
type Format string

const (
	List   Format = "list"   // [1, 2]
	JSON   Format = "json"   // {"values":[1,2]}
	YAML   Format = "yaml"   // values: [1, 2]
	Schema Format = "schema" // integer schema with an enum of the values
)

// ParseFormat accepts the names of the formats above. The empty string
// selects List.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return List, nil
	case List, JSON, YAML, Schema:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: list, json, yaml, schema)", s)
	}
}

// Report is the machine-readable form of a result.
type Report struct {
	Values   []int64  `json:"values" yaml:"values"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// AnalyzeSource analyzes src and renders the possible sink values in the
// given format.
func AnalyzeSource(ctx context.Context, src string, format Format, opts analysis.Options) (string, error) {
	res, err := analysis.Analyze(ctx, src, opts)
	if err != nil {
		return "", err
	}
	return Render(res, format)
}

// Render formats res. Every format except Schema ends without a newline.
func Render(res *analysis.Result, format Format) (string, error) {
	report := Report{Values: res.Values, Warnings: res.Warnings}
	if report.Values == nil {
		report.Values = []int64{}
	}

	switch format {
	case List, "":
		return FormatList(res.Values), nil
	case JSON:
		data, err := json.Marshal(report)
		if err != nil {
			return "", fmt.Errorf("failed to encode json: %w", err)
		}
		return string(data), nil
	case YAML:
		data, err := goyaml.Marshal(report)
		if err != nil {
			return "", fmt.Errorf("failed to encode yaml: %w", err)
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	case Schema:
		data, err := analysis.MarshalSchemaYAML(analysis.SinkSchema(res.Values))
		if err != nil {
			return "", fmt.Errorf("failed to encode schema: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

// FormatList renders values the way the command line prints them: "[1, 2]".
func FormatList(values []int64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
