package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fxpio/composer-asset-plugin-sub001/pkg/asset"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/config"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/event"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/repository"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/store"
)

func newPackagesCmd() *cobra.Command {
	var registryDir, typeName, npmRange, output string

	cmd := &cobra.Command{
		Use:   "packages <name>",
		Short: "List the versions of an asset package",
		Long: `Reads the registry document of a package from --registry-dir and prints
every version the host would see, newest first.

With --range only the newest version satisfying the npm range is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFileOrDefault(config.ManifestFileName)
			if err != nil {
				return err
			}

			t, ok := asset.GetType(typeName)
			if !ok {
				return fmt.Errorf("unknown asset type %q (available: %v)", typeName, asset.RegisteredTypes())
			}
			if !cfg.Asset.TypeEnabled(t.Name()) {
				return fmt.Errorf("asset type %q is not enabled in %s", t.Name(), config.ManifestFileName)
			}

			caches, err := newCacheRegistry()
			if err != nil {
				return err
			}
			cache, _ := caches.Find(t.Name())

			repo, err := repository.New(repository.Options{
				Type:        t,
				Fetcher:     repository.NewDirFetcher(registryDir),
				Cache:       cache,
				Dispatcher:  logRepositories(),
				SkipPattern: cfg.Asset.SkipPattern(),
				Convert:     asset.ConvertOpts{Logger: Log},
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var packages []*asset.Package
			if npmRange != "" {
				pkg, err := repo.Find(ctx, args[0], npmRange)
				if err != nil {
					return err
				}
				packages = []*asset.Package{pkg}
			} else {
				packages, err = repo.Packages(ctx, args[0])
				if err != nil {
					return err
				}
			}

			for _, pkg := range packages {
				cfg.Asset.ApplyOverrides(t, pkg)
			}

			if output == "text" {
				for _, pkg := range packages {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", pkg.Name, pkg.Version, pkg.VersionNormalized, pkg.Stability)
				}
				return nil
			}
			return printOutput(cmd, output, packages)
		},
	}

	cmd.Flags().StringVar(&registryDir, "registry-dir", "", "directory of registry documents (<name>.json)")
	cmd.Flags().StringVar(&typeName, "type", "npm", "asset type (npm, bower)")
	cmd.Flags().StringVar(&npmRange, "range", "", "npm range the version must satisfy")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json, yaml)")
	cmd.MarkFlagRequired("registry-dir")
	return cmd
}

// newCacheRegistry builds one registry document cache per asset type, all
// sharing the configured disk store.
func newCacheRegistry() (*repository.Registry, error) {
	var (
		disk store.Store
		err  error
	)
	if Settings != nil && Settings.CacheDir != "" {
		disk = store.New(Settings.CacheDir)
	} else if disk, err = store.Default(); err != nil {
		return nil, err
	}

	size := repository.DefaultCacheSize
	if Settings != nil {
		size = Settings.CacheSize
	}

	caches := repository.NewRegistry()
	for _, name := range asset.RegisteredTypes() {
		cache, err := repository.NewCache(size, disk, Log.With("cache", name))
		if err != nil {
			return nil, err
		}
		if err := caches.Register(name, cache); err != nil {
			return nil, err
		}
	}
	return caches, nil
}

func logRepositories() event.Dispatcher {
	return event.DispatcherFunc(func(_ context.Context, e event.Event) error {
		if ev, ok := e.(*event.VcsRepositoryEvent); ok {
			for _, repo := range ev.Repositories {
				Log.Info("dependency needs a VCS repository", "name", repo.Name, "type", repo.Type, "url", repo.URL)
			}
		}
		return nil
	})
}
