package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labyrinth/pkg/cache"
	"github.com/matzehuels/labyrinth/pkg/config"
	errs "github.com/matzehuels/labyrinth/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached artifact from the configured backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ch, err := newCache(cmd.Context(), cfg.Cache, false)
			if err != nil {
				return err
			}
			defer ch.Close()

			clearer, ok := ch.(cache.Clearer)
			if !ok {
				return errs.New(errs.ErrCodeUnsupported, "cache backend %q cannot be cleared", cfg.Cache.Backend)
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Backend: %s", cacheLocation(cfg.Cache, ch))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend != config.BackendFile {
				printWarning("cache backend is %s, not file", cfg.Cache.Backend)
			}
			dir := cfg.Cache.Dir
			if dir == "" {
				if dir, err = cacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// cacheLocation describes where a backend keeps its entries.
func cacheLocation(cfg config.CacheConfig, ch cache.Cache) string {
	switch v := ch.(type) {
	case *cache.FileCache:
		return "file " + v.Dir()
	case *cache.RedisCache:
		return "redis"
	case *cache.MongoCache:
		return "mongo " + cfg.MongoDatabase
	}
	return cfg.Backend
}
