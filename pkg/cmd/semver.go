package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fxpio/composer-asset-plugin-sub001/pkg/converter"
)

func newSemverCmd() *cobra.Command {
	semverCmd := &cobra.Command{
		Use:   "semver",
		Short: "Convert npm semver strings",
	}

	semverCmd.AddCommand(&cobra.Command{
		Use:   "version <version>",
		Short: "Convert an npm version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), converter.NewSemverConverter().ConvertVersion(args[0]))
			return nil
		},
	})

	semverCmd.AddCommand(&cobra.Command{
		Use:   "range <range>",
		Short: "Convert an npm range into a host constraint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !converter.ValidRange(args[0]) {
				Log.Warn("range is not valid npm semver", "range", args[0])
			}
			constraint, err := converter.NewSemverConverter().ConvertRange(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), constraint)
			return nil
		},
	})

	return semverCmd
}
