package cli

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", outputJSON, "output format (json, yaml)")
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	switch format {
	case outputJSON, outputYAML:
		return format, nil
	}
	return "", errors.Errorf("unknown output format %q", format)
}

// render writes v as indented JSON or as block style YAML. YAML goes through
// the JSON form so custom JSON marshalers such as Preset's apply to both.
func render(w io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal output")
	}
	if format == outputJSON {
		_, err = w.Write(append(data, '\n'))
		return err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return errors.Wrap(err, "convert output to yaml")
	}
	blockStyle(&node)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return enc.Close()
}

func blockStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// decodeDocument reads a JSON or YAML document into v.
func decodeDocument(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, "decode document")
	}
	return nil
}
