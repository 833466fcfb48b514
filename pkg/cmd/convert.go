package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/fxpio/composer-asset-plugin-sub001/pkg/asset"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/config"
)

// conversionOutput is the printed form of a converted manifest.
type conversionOutput struct {
	Package      *asset.Package        `json:"package"`
	Repositories []asset.VcsRepository `json:"repositories,omitempty"`
}

func newConvertCmd() *cobra.Command {
	var typeName, output string

	cmd := &cobra.Command{
		Use:   "convert <manifest>",
		Short: "Convert a package.json or bower.json into a host package",
		Long: `Converts an asset manifest and prints the host package.

The asset type is taken from --type, or from the manifest filename.
Main and ignore file overrides from asset-plugin.toml are applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			t, err := resolveType(typeName, filepath.Base(path))
			if err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			cfg, err := config.LoadFileOrDefault(config.ManifestFileName)
			if err != nil {
				return err
			}

			conv, err := t.Convert(asset.ConvertOpts{Logger: Log}, data)
			if err != nil {
				return err
			}
			cfg.Asset.ApplyOverrides(t, conv.Package)

			return printOutput(cmd, output, conversionOutput{
				Package:      conv.Package,
				Repositories: conv.Repositories,
			})
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "asset type (npm, bower)")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format (json, yaml)")
	return cmd
}

// resolveType returns the named asset type, or the type whose manifest is
// called filename when name is empty.
func resolveType(name, filename string) (asset.Type, error) {
	if name != "" {
		t, ok := asset.GetType(name)
		if !ok {
			return nil, fmt.Errorf("unknown asset type %q (available: %v)", name, asset.RegisteredTypes())
		}
		return t, nil
	}

	for _, n := range asset.RegisteredTypes() {
		if t, _ := asset.GetType(n); t.Filename() == filename {
			return t, nil
		}
	}
	return nil, fmt.Errorf("cannot infer asset type of %s, use --type", filename)
}

func printOutput(cmd *cobra.Command, format string, v any) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
