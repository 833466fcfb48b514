package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fxpio/composer-asset-plugin-sub001/pkg/version"
)

func newNormalizeCmd() *cobra.Command {
	var full string

	cmd := &cobra.Command{
		Use:   "normalize <version>...",
		Short: "Normalize asset versions",
		Long: `Prints each version with its normalized form and stability, tab separated.

Versions the host grammar cannot read normalize to "dev". Versions containing
"-patch" are classified as dev.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := version.NewAssetParser(nil)
			for _, v := range args {
				normalized, err := parser.Normalize(v, full)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", v, normalized, parser.ParseStability(v))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&full, "full", "", "full version, used in error messages")
	return cmd
}

func newStabilityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stability <version>...",
		Short: "Classify the stability of asset versions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, v := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", v, version.ParseStability(v))
			}
			return nil
		},
	}
}
