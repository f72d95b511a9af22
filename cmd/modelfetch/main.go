package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/everstacklabs/modelfetch/internal/adapter"
	_ "github.com/everstacklabs/modelfetch/internal/adapter/providers/anthropic"  // register Anthropic adapter
	_ "github.com/everstacklabs/modelfetch/internal/adapter/providers/google"     // register Google adapter
	_ "github.com/everstacklabs/modelfetch/internal/adapter/providers/openai"     // register OpenAI adapter
	_ "github.com/everstacklabs/modelfetch/internal/adapter/providers/openrouter" // register OpenRouter adapter
	"github.com/everstacklabs/modelfetch/internal/cache"
	"github.com/everstacklabs/modelfetch/internal/catalog"
	"github.com/everstacklabs/modelfetch/internal/config"
	"github.com/everstacklabs/modelfetch/internal/fetcher"
	"github.com/everstacklabs/modelfetch/internal/httpclient"
	"github.com/everstacklabs/modelfetch/internal/publish"
	"github.com/everstacklabs/modelfetch/internal/validate"

	anthropicAdapter "github.com/everstacklabs/modelfetch/internal/adapter/providers/anthropic"
	googleAdapter "github.com/everstacklabs/modelfetch/internal/adapter/providers/google"
	openaiAdapter "github.com/everstacklabs/modelfetch/internal/adapter/providers/openai"
	openrouterAdapter "github.com/everstacklabs/modelfetch/internal/adapter/providers/openrouter"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "modelfetch",
		Short: "AI model catalog fetcher",
		Long:  "Fetches model listings from provider APIs and maintains a local model catalog.",
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	rootCmd.AddCommand(
		fetchCmd(),
		listCmd(),
		searchCmd(),
		exportCmd(),
		validateCmd(),
		publishCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch model listings and merge them into the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			configureAdapters(cfg)

			providers, _ := cmd.Flags().GetStringSlice("providers")
			if len(providers) == 0 {
				providers = cfg.Providers
			}
			if len(providers) == 1 && providers[0] == "all" {
				providers = adapter.List()
			}
			rebuild, _ := cmd.Flags().GetBool("rebuild")

			f := fetcher.New(catalog.NewStore(cfg.DataDir))
			_, summary, err := f.Fetch(cmd.Context(), providers, !rebuild)
			if err != nil {
				if errors.Is(err, fetcher.ErrNoModels) {
					return fmt.Errorf("no models fetched from any provider")
				}
				return err
			}

			slog.Info("fetch finished",
				"fetched", summary.FetchedCount,
				"added", summary.Added,
				"replaced", summary.Replaced,
				"total", summary.TotalModels)
			for name, n := range summary.Providers {
				fmt.Printf("%-14s %d models\n", name, n)
			}
			for name, ferr := range summary.Failures {
				fmt.Printf("%-14s FAILED: %v\n", name, ferr)
			}

			return nil
		},
	}

	cmd.Flags().StringSlice("providers", nil, "Providers to fetch (default: from config; \"all\" for every registered adapter)")
	cmd.Flags().Bool("rebuild", false, "Rebuild the catalog from scratch instead of merging")

	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			cat := catalog.NewStore(cfg.DataDir).Load()

			provider, _ := cmd.Flags().GetString("provider")
			models := cat.Models
			if provider != "" {
				models = cat.ModelsByProvider(provider)
			}

			limit, _ := cmd.Flags().GetInt("limit")
			if limit > 0 && len(models) > limit {
				models = models[:limit]
			}

			for _, m := range models {
				fmt.Printf("%-50s %-12s %8d  %s\n", m.ModelID, m.Provider, m.ContextLength, m.Name)
			}
			fmt.Printf("\nTotal: %d models\n", len(models))
			return nil
		},
	}

	cmd.Flags().String("provider", "", "Only show models from this provider")
	cmd.Flags().Int("limit", 0, "Maximum number of models to show")

	return cmd
}

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search catalog models by name and filters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			cat := catalog.NewStore(cfg.DataDir).Load()

			criteria := catalog.SearchCriteria{}
			if len(args) > 0 {
				criteria.Query = args[0]
			}
			criteria.Provider, _ = cmd.Flags().GetString("provider")
			criteria.Modalities, _ = cmd.Flags().GetStringSlice("modality")
			criteria.Limit, _ = cmd.Flags().GetInt("limit")

			if cmd.Flags().Changed("min-context") {
				v, _ := cmd.Flags().GetInt("min-context")
				criteria.MinContext = &v
			}
			if cmd.Flags().Changed("max-context") {
				v, _ := cmd.Flags().GetInt("max-context")
				criteria.MaxContext = &v
			}
			if cmd.Flags().Changed("max-prompt-price") {
				v, _ := cmd.Flags().GetFloat64("max-prompt-price")
				criteria.MaxPromptPrice = &v
			}
			if cmd.Flags().Changed("max-completion-price") {
				v, _ := cmd.Flags().GetFloat64("max-completion-price")
				criteria.MaxCompletionPrice = &v
			}
			if cmd.Flags().Changed("vision") {
				v, _ := cmd.Flags().GetBool("vision")
				criteria.SupportsVision = &v
			}
			if cmd.Flags().Changed("function-calling") {
				v, _ := cmd.Flags().GetBool("function-calling")
				criteria.SupportsFuncCalling = &v
			}
			if cmd.Flags().Changed("streaming") {
				v, _ := cmd.Flags().GetBool("streaming")
				criteria.SupportsStreaming = &v
			}

			matches := cat.Search(criteria)
			for _, m := range matches {
				caps := capsSummary(m)
				fmt.Printf("%-50s %-12s %8d  %s\n", m.ModelID, m.Provider, m.ContextLength, caps)
			}
			fmt.Printf("\nMatched: %d models\n", len(matches))
			return nil
		},
	}

	cmd.Flags().String("provider", "", "Filter by provider")
	cmd.Flags().Int("min-context", 0, "Minimum context length")
	cmd.Flags().Int("max-context", 0, "Maximum context length")
	cmd.Flags().Float64("max-prompt-price", 0, "Maximum prompt price")
	cmd.Flags().Float64("max-completion-price", 0, "Maximum completion price")
	cmd.Flags().Bool("vision", false, "Filter by vision support")
	cmd.Flags().Bool("function-calling", false, "Filter by function calling support")
	cmd.Flags().Bool("streaming", false, "Filter by streaming support")
	cmd.Flags().StringSlice("modality", nil, "Require modalities (repeatable)")
	cmd.Flags().Int("limit", 0, "Maximum number of results")

	return cmd
}

func capsSummary(m catalog.ModelRecord) string {
	var caps []string
	if m.Capabilities.SupportsVision {
		caps = append(caps, "vision")
	}
	if m.Capabilities.SupportsFunctionCalling {
		caps = append(caps, "tools")
	}
	if m.Capabilities.SupportsStreaming {
		caps = append(caps, "streaming")
	}
	return strings.Join(caps, ",")
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as csv, yaml, or json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			store := catalog.NewStore(cfg.DataDir)
			path, err := store.Export(format, output)
			if err != nil {
				return err
			}

			fmt.Println(path)
			return nil
		},
	}

	cmd.Flags().String("format", "csv", "Export format: csv, yaml, or json")
	cmd.Flags().String("output", "", "Output path (default: alongside the catalog)")

	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the catalog (CI check)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			cat := catalog.NewStore(cfg.DataDir).Load()

			result := validate.ValidateCatalog(cat)
			fmt.Println(validate.FormatResult(result))

			if result.HasErrors() {
				os.Exit(1)
			}
			return nil
		},
	}
}

func publishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Commit the catalog to a git repo and open a PR",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store := catalog.NewStore(cfg.DataDir)

			result := validate.ValidateCatalog(store.Load())
			if result.HasErrors() {
				fmt.Println(validate.FormatResult(result))
				return fmt.Errorf("catalog has validation errors, refusing to publish")
			}

			draft, _ := cmd.Flags().GetBool("draft")

			p := publish.New(cfg.GitHub, store)
			res, err := p.Publish(cmd.Context(), draft)
			if err != nil {
				return err
			}
			if res == nil {
				fmt.Println("Catalog unchanged, nothing to publish.")
				return nil
			}

			fmt.Printf("PR #%d: %s\n", res.PRNumber, res.PRURL)
			return nil
		},
	}

	cmd.Flags().Bool("draft", false, "Open the PR as a draft")

	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	setupLogging(cfg.LogLevel)
	return cfg, nil
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func configureAdapters(cfg *config.Config) {
	// Set up cache
	var fileCache *cache.FileCache
	if !cfg.NoCache {
		ttl, err := time.ParseDuration(cfg.CacheTTL)
		if err != nil {
			ttl = time.Hour
		}
		fc, err := cache.New(cfg.CacheDir, ttl)
		if err != nil {
			slog.Warn("failed to create cache, continuing without", "error", err)
		} else {
			fileCache = fc
		}
	}

	// Set up HTTP client
	opts := []httpclient.Option{
		httpclient.WithRateLimit(cfg.RateLimit),
		httpclient.WithTimeout(cfg.HTTPTimeout()),
	}
	if fileCache != nil {
		opts = append(opts, httpclient.WithCache(fileCache))
	}
	if cfg.NoCache {
		opts = append(opts, httpclient.WithNoCache())
	}
	client := httpclient.New(opts...)

	if a, err := adapter.Get("openrouter"); err == nil {
		if oa, ok := a.(*openrouterAdapter.OpenRouter); ok {
			apiKey, baseURL := cfg.ProviderSettings("openrouter")
			oa.Configure(apiKey, baseURL, client)
		}
	}
	if a, err := adapter.Get("openai"); err == nil {
		if oa, ok := a.(*openaiAdapter.OpenAI); ok {
			apiKey, baseURL := cfg.ProviderSettings("openai")
			oa.Configure(apiKey, baseURL, client)
		}
	}
	if a, err := adapter.Get("anthropic"); err == nil {
		if aa, ok := a.(*anthropicAdapter.Anthropic); ok {
			apiKey, baseURL := cfg.ProviderSettings("anthropic")
			aa.Configure(apiKey, baseURL, client)
		}
	}
	if a, err := adapter.Get("google"); err == nil {
		if ga, ok := a.(*googleAdapter.Google); ok {
			apiKey, baseURL := cfg.ProviderSettings("google")
			ga.Configure(apiKey, baseURL, client)
		}
	}
}
