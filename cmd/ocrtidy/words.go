package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/chriscorrea/ocrtidy/internal/customdict"

	"github.com/spf13/cobra"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Manage the custom dictionary kept in Redis",
	Long: `Custom words are stored in a Redis set and merged into the dictionary on
every run when --redis-addr (or REDIS_ADDR) is set.`,
}

var wordsAddCmd = &cobra.Command{
	Use:   "add word...",
	Short: "Add words to the custom dictionary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store *customdict.Store) error {
			return store.Add(ctx, args...)
		})
	},
}

var wordsRemoveCmd = &cobra.Command{
	Use:   "remove word...",
	Short: "Remove words from the custom dictionary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store *customdict.Store) error {
			return store.Remove(ctx, args...)
		})
	},
}

var wordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the custom dictionary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store *customdict.Store) error {
			words, err := store.All(ctx)
			if err != nil {
				return err
			}
			for _, w := range words {
				fmt.Fprintln(cmd.OutOrStdout(), w)
			}
			return nil
		})
	},
}

// withStore opens the custom dictionary for the duration of fn.
func withStore(cmd *cobra.Command, fn func(context.Context, *customdict.Store) error) error {
	debug, _ := cmd.Flags().GetBool("debug")
	setupLogger(debug)

	opts, err := redisOptions(cmd)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if opts.Addr == "" {
		return fmt.Errorf("configuration error: --redis-addr or REDIS_ADDR is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := customdict.Open(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(ctx, store)
}

func init() {
	wordsCmd.AddCommand(wordsAddCmd, wordsRemoveCmd, wordsListCmd)
}
