package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dyluth/perch/internal/cache"
	"github.com/dyluth/perch/internal/config"
	"github.com/dyluth/perch/internal/filter"
	"github.com/dyluth/perch/internal/printer"
	"github.com/dyluth/perch/internal/timespec"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// cacheOptions holds flags for the cache subcommands
type cacheOptions struct {
	redisAddr string
	namespace string
}

func newCacheCmd(opts *globalOptions) *cobra.Command {
	cacheOpts := &cacheOptions{}

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Read and write the replaceable event cache",
		Long: `Read and write the Redis-backed replaceable event cache.

Only the newest copy of each replaceable event is retained. The Redis address
and namespace come from perch.yml unless --redis or --namespace are given.`,
	}

	cmd.PersistentFlags().StringVar(&cacheOpts.redisAddr, "redis", "", "Redis address (host:port or redis:// URL)")
	cmd.PersistentFlags().StringVarP(&cacheOpts.namespace, "namespace", "n", "", "Cache namespace")

	cmd.AddCommand(
		newCachePutCmd(opts, cacheOpts),
		newCacheGetCmd(opts, cacheOpts),
		newCacheListCmd(opts, cacheOpts),
		newCacheWatchCmd(opts, cacheOpts),
	)

	return cmd
}

// openCache connects to the cache described by flags and perch.yml.
func openCache(cmd *cobra.Command, opts *globalOptions, cacheOpts *cacheOptions) (*cache.Client, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	addr := cacheOpts.redisAddr
	namespace := cacheOpts.namespace
	if cfg.Cache != nil {
		if addr == "" {
			addr = cfg.Cache.RedisAddr
		}
		if namespace == "" {
			namespace = cfg.Cache.Namespace
		}
	}
	if namespace == "" {
		namespace = config.DefaultNamespace
	}

	if addr == "" {
		return nil, printer.Error(
			"no cache configured",
			"No Redis address was given and perch.yml has no cache section.",
			[]string{
				"Pass an address:\n  perch cache --redis localhost:6379 ...",
				"Add a cache section to perch.yml",
			},
		)
	}

	redisOpts, err := redisOptions(addr)
	if err != nil {
		return nil, printer.Error("invalid Redis address", err.Error(), nil)
	}

	client, err := cache.NewClient(redisOpts, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache client: %w", err)
	}

	if err := client.Ping(cmd.Context()); err != nil {
		client.Close()
		return nil, printer.ErrorWithContext(
			"Redis not reachable",
			err.Error(),
			map[string]string{"Address": addr},
			nil,
		)
	}

	return client, nil
}

// redisOptions accepts either a redis:// URL or a bare host:port.
func redisOptions(addr string) (*redis.Options, error) {
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		return redis.ParseURL(addr)
	}
	return &redis.Options{Addr: addr}, nil
}

func newCachePutCmd(opts *globalOptions, cacheOpts *cacheOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "put [EVENT_FILE|-]",
		Short: "Offer an event to the cache",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) > 0 {
				path = args[0]
			}

			ev, err := readEvent(cmd, path)
			if err != nil {
				return printer.Error("failed to read event", err.Error(), nil)
			}

			client, err := openCache(cmd, opts, cacheOpts)
			if err != nil {
				return err
			}
			defer client.Close()

			kept, replaced, err := client.Put(cmd.Context(), ev)
			if err != nil {
				return printer.Error("failed to cache event", err.Error(), nil)
			}

			out := cmd.OutOrStdout()
			if replaced {
				printer.Success(out, "Stored %s\n", kept.ID)
			} else {
				printer.Warning(out, "Kept existing %s (incoming copy is older)\n", kept.ID)
			}
			return nil
		},
	}
}

func newCacheGetCmd(opts *globalOptions, cacheOpts *cacheOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get COORDINATE",
		Short: "Print the retained event for a coordinate",
		Long: `Print the retained event for a coordinate.

Coordinates are "<kind>:<pubkey>" for replaceable kinds and
"<kind>:<pubkey>:<d-tag>" for addressable kinds.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := openCache(cmd, opts, cacheOpts)
			if err != nil {
				return err
			}
			defer client.Close()

			ev, err := client.Get(cmd.Context(), args[0])
			if err != nil {
				if cache.IsNotFound(err) {
					return printer.Error(
						"event not found",
						fmt.Sprintf("Nothing is cached for coordinate %s in namespace %s.", args[0], client.Namespace()),
						nil,
					)
				}
				return fmt.Errorf("failed to get event: %w", err)
			}

			return writeEventJSON(cmd.OutOrStdout(), ev)
		},
	}
}

func newCacheListCmd(opts *globalOptions, cacheOpts *cacheOptions) *cobra.Command {
	var (
		since  string
		until  string
		kinds  []int
		author string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List retained events, oldest first",
		Long: `List retained events, oldest first.

Time filters accept a duration ("2h" means two hours ago), an RFC3339
timestamp, or Unix seconds. All filters are combined.

Examples:
  perch cache list --since 24h
  perch cache list --kind 0 --kind 3 --author <pubkey>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sinceSecs, untilSecs, err := timespec.ParseRange(since, until, time.Now())
			if err != nil {
				return printer.Error("invalid time filter", err.Error(), nil)
			}

			criteria := &filter.Criteria{
				SinceSeconds: sinceSecs,
				UntilSeconds: untilSecs,
				Kinds:        kinds,
				PubKey:       author,
			}

			client, err := openCache(cmd, opts, cacheOpts)
			if err != nil {
				return err
			}
			defer client.Close()

			events, err := client.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list cache: %w", err)
			}
			events = criteria.Apply(events)

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintf(out, "No events cached in namespace '%s'\n", client.Namespace())
				return nil
			}

			fmt.Fprintf(out, "%-10s %-6s %-12s %s\n", "ID", "KIND", "CREATED_AT", "PUBKEY")
			for _, ev := range events {
				ts, _ := ev.Timestamp()
				fmt.Fprintf(out, "%-10s %-6d %-12d %s\n", formatID(ev.ID), ev.Kind, ts, ev.PubKey)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Only events created at or after this time")
	cmd.Flags().StringVar(&until, "until", "", "Only events created at or before this time")
	cmd.Flags().IntSliceVarP(&kinds, "kind", "k", nil, "Only these kinds (repeatable)")
	cmd.Flags().StringVar(&author, "author", "", "Only events by this pubkey")

	return cmd
}

func newCacheWatchCmd(opts *globalOptions, cacheOpts *cacheOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream events as they replace older copies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client, err := openCache(cmd, opts, cacheOpts)
			if err != nil {
				return err
			}
			defer client.Close()

			return watchReplacements(ctx, cmd, client)
		},
	}
}

// watchReplacements prints each replaced event until ctx is cancelled.
func watchReplacements(ctx context.Context, cmd *cobra.Command, client *cache.Client) error {
	sub, err := client.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	defer sub.Close()

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-sub.Events():
			if !ok {
				return nil
			}
			ts, _ := ev.Timestamp()
			fmt.Fprintf(out, "%s kind=%d created_at=%d\n", ev.ID, ev.Kind, ts)
		case err, ok := <-sub.Errors():
			if !ok {
				return nil
			}
			printer.Warning(errOut, "%v\n", err)
		}
	}
}
