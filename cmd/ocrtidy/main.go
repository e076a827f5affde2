package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/chriscorrea/ocrtidy/internal/app"
	"github.com/chriscorrea/ocrtidy/internal/customdict"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config from command flags and arguments
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	dictionaryPath, _ := cmd.Flags().GetString("dictionary")
	hocr, _ := cmd.Flags().GetBool("hocr")
	textFlag, _ := cmd.Flags().GetBool("text")
	cleanOnly, _ := cmd.Flags().GetBool("clean-only")
	workers, _ := cmd.Flags().GetInt("workers")
	stats, _ := cmd.Flags().GetBool("stats")
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")

	if dictionaryPath == "" {
		dictionaryPath = os.Getenv("OCRTIDY_DICTIONARY")
	}
	if dictionaryPath == "" && !cleanOnly {
		return app.Config{}, fmt.Errorf("a dictionary is required (--dictionary or OCRTIDY_DICTIONARY)")
	}
	if workers < 0 {
		return app.Config{}, fmt.Errorf("--workers must not be negative, got %d", workers)
	}

	// --json is the default; the flag exists for explicitness
	outputFormat := app.JSON
	if textFlag {
		outputFormat = app.Text
	}

	redisOpts, err := redisOptions(cmd)
	if err != nil {
		return app.Config{}, err
	}

	// no arguments provided - use stdin
	sources := args
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	return app.Config{
		Sources:        sources,
		DictionaryPath: dictionaryPath,
		HOCR:           hocr,
		OutputFormat:   outputFormat,
		CleanOnly:      cleanOnly,
		Workers:        workers,
		Stats:          stats,
		Redis:          redisOpts,
		Quiet:          quiet,
		Debug:          debug,
	}, nil
}

// redisOptions reads the custom dictionary connection from flags, falling
// back to the environment.
func redisOptions(cmd *cobra.Command) (customdict.Options, error) {
	addr, _ := cmd.Flags().GetString("redis-addr")
	key, _ := cmd.Flags().GetString("redis-key")
	if addr == "" {
		addr = getenv("REDIS_ADDR", "")
	}

	db, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return customdict.Options{}, err
	}

	return customdict.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
		Key:      key,
	}, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(k))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", k, raw, err)
	}
	return v, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "ocrtidy [sources...]",
	Short: "Clean up OCR text and suggest spelling corrections",
	Long: `ocrtidy removes noise lines from raw OCR output and suggests corrections for
words that look misrecognized. Each source is one page: a text file, an hOCR
file, or standard input.

Examples:
  ocrtidy -d pt-br.txt page1.txt page2.txt
  ocrtidy -d pt-br.txt --text scan.hocr
  tesseract scan.png - | ocrtidy -d pt-br.txt`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		setupLogger(config.Debug)

		// create context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.Run(ctx, config)
		if err != nil {
			return fmt.Errorf("ocrtidy failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringP("dictionary", "d", "", "Word list, one entry per line (env OCRTIDY_DICTIONARY)")
	rootCmd.Flags().Bool("hocr", false, "Parse every source as hOCR (automatic for .hocr and .html files)")
	rootCmd.Flags().Bool("clean-only", false, "Only remove noise lines; skip correction suggestions")
	rootCmd.Flags().Int("workers", 0, "Words processed concurrently (default: one per CPU)")
	rootCmd.Flags().Bool("stats", false, "Report line, word, character and token counts before and after cleanup")

	// output format flags are mutually exclusive
	rootCmd.Flags().Bool("json", false, "Output in JSON format (default)")
	rootCmd.Flags().Bool("text", false, "Output in plain text format")
	rootCmd.MarkFlagsMutuallyExclusive("json", "text")

	// custom dictionary
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address of the custom dictionary (env REDIS_ADDR)")
	rootCmd.PersistentFlags().String("redis-key", customdict.DefaultKey, "Redis set holding custom words")

	// other flags
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress warnings and progress")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.PersistentFlags().MarkHidden("debug")

	rootCmd.AddCommand(wordsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
