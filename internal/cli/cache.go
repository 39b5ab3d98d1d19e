package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dotkit/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop all cached renders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.CacheConfig(c.Logger)
			if cfg.Backend == "" || cfg.Backend == cache.BackendNone {
				printInfo("Cache is disabled")
				return nil
			}

			store, err := cache.Open(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("open %s cache: %w", cfg.Backend, err)
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return fmt.Errorf("the %s cache cannot be cleared from here, entries expire on their own", cfg.Backend)
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return err
			}

			printSuccess("Cleared %s cache", cfg.Backend)
			if cfg.Dir != "" {
				printDetail("Directory: %s", cfg.Dir)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.CacheConfig(c.Logger)
			switch cfg.Backend {
			case cache.BackendFile, cache.BackendBadger:
				fmt.Fprintln(cmd.OutOrStdout(), cfg.Dir)
			case cache.BackendRedis, cache.BackendMongo:
				fmt.Fprintln(cmd.OutOrStdout(), cfg.URL)
			default:
				return fmt.Errorf("cache is disabled")
			}
			return nil
		},
	}
}
