package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// addOutputFlags registers the flags shared by commands that print records.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "json", "output format: json, yaml")
	cmd.Flags().String("metrics-file", "", "write Prometheus metrics for the run to this file")
}

// writeOutput prints v as indented JSON or as YAML with the same field names
// and order.
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		out, err := toYAML(v)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// toYAML goes through JSON so the json tags, omitempty rules and the
// flattened stats fields apply to YAML output too.
func toYAML(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("convert to yaml: %w", err)
	}
	blockStyle(&node)

	return yaml.Marshal(&node)
}

// blockStyle drops the flow and quoting styles inherited from JSON. The
// encoder quotes scalars again where a plain one would change type.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}
