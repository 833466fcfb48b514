package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/fxpio/composer-asset-plugin-sub001/pkg/asset"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/config"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/project"
)

func newInitCmd() *cobra.Command {
	var types []string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize asset-plugin.toml",
		Long: `Creates an asset-plugin.toml manifest and adds the asset install
directories to .gitignore. Without --types the asset types are chosen
interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, types)
		},
		// init does not need settings resolution; skip the root PersistentPreRunE.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	cmd.Flags().StringSliceVar(&types, "types", nil, "asset types to enable (e.g. npm,bower)")
	return cmd
}

func runInit(cmd *cobra.Command, types []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	if len(types) == 0 {
		if types, err = promptTypes(); err != nil {
			return err
		}
	}

	cfg := config.Default()
	var ignored []string
	for _, name := range types {
		t, ok := asset.GetType(name)
		if !ok {
			return fmt.Errorf("unknown asset type %q (available: %v)", name, asset.RegisteredTypes())
		}
		ignored = append(ignored, strings.TrimSuffix(cfg.Asset.InstallerPath(t), "/")+"/")
	}
	cfg.Asset.EnabledTypes = types

	if err := project.Init(wd, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", project.ManifestFile)

	// An existing local settings file belongs to the developer; keep it.
	if _, err := os.Stat(filepath.Join(wd, config.LocalSettingsFile)); os.IsNotExist(err) {
		if err := config.WriteLocalSettings(wd, config.DefaultSettings()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.LocalSettingsFile)
	}

	added, err := project.EnsureGitignore(wd, append(ignored, config.LocalSettingsFile))
	if err != nil {
		return err
	}
	for _, entry := range added {
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to .gitignore\n", entry)
	}

	return nil
}

// promptTypes uses huh to present a multi-select of the registered asset
// types.
func promptTypes() ([]string, error) {
	names := asset.RegisteredTypes()
	options := make([]huh.Option[string], len(names))
	for i, name := range names {
		t, _ := asset.GetType(name)
		options[i] = huh.NewOption(fmt.Sprintf("%s (%s)", name, t.Filename()), name).Selected(true)
	}

	var selected []string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which asset types should be handled?").
				Options(options...).
				Value(&selected),
		),
	).Run()
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no asset type selected")
	}

	return selected, nil
}
