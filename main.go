package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"costofliving/api"
	"costofliving/config"
	"costofliving/scraper/numbeo"
	"costofliving/scraper/reddit"
	"costofliving/services"
	"costofliving/storage"
	"costofliving/utils"
)

const version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "costofliving",
		Short:         "Monthly cost of living estimates by city",
		SilenceUsage:  true,
	}
	serve := newServeCmd()
	root.AddCommand(serve, newLookupCmd(), newFallbackCmd())
	root.RunE = serve.RunE
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logger := utils.NewLogger(cfg.LogLevel)
			defer logger.Sync()

			logger.Info("=== Cost of living API starting ===")
			logger.Info("Config: port: %s | scraping: %v (%s) | discussions: %v | timeouts: %v/%v",
				cfg.Port, cfg.ScrapingEnabled, cfg.ScrapeMode, cfg.DiscussionsEnabled,
				cfg.ScrapeTimeout, cfg.DiscussionTimeout)

			svc, cleanup, err := buildCostService(cfg, logger)
			if err != nil {
				logger.Error("Startup failed: %v", err)
				return err
			}
			defer cleanup()

			gin.SetMode(cfg.GinMode)
			router := api.NewRouter(api.NewHandler(svc, logger, version), logger, cfg.CORSAllowedOrigins)
			server := api.NewServer(cfg.Addr(), router, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- server.Start() }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			logger.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <city>",
		Short: "Look up one city and print the breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := utils.NewLogger(cfg.LogLevel)
			defer logger.Sync()

			svc, cleanup, err := buildCostService(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := svc.Lookup(cmd.Context(), args[0])
			var nf *services.CityNotFoundError
			if errors.As(err, &nf) {
				fmt.Fprintf(cmd.ErrOrStderr(), "City not found: %s\n%s\nTip: %s\n", nf.City, nf.Suggestion, nf.Tip)
				return err
			}
			if err != nil {
				return err
			}

			services.NewReportPrinter(cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newFallbackCmd() *cobra.Command {
	fallback := &cobra.Command{
		Use:   "fallback",
		Short: "Manage the fallback reference table",
	}

	fallback.AddCommand(&cobra.Command{
		Use:   "export <path>",
		Short: "Write the fallback table to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := utils.NewLogger(cfg.LogLevel)
			defer logger.Sync()

			table, err := loadFallbackTable(cfg, logger)
			if err != nil {
				return err
			}
			w, err := storage.NewCSVWriter(args[0])
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.WriteFallback(table.Entries()); err != nil {
				return err
			}
			logger.Info("Exported %d fallback entries to %s", table.Len(), args[0])
			return nil
		},
	})

	fallback.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Write the compiled-in fallback table to PostgreSQL (FALLBACK_DSN)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logger := utils.NewLogger(cfg.LogLevel)
			defer logger.Sync()

			if cfg.FallbackDSN == "" {
				return errors.New("FALLBACK_DSN is not set")
			}
			pg, err := storage.NewPostgresStore(cfg.FallbackDSN)
			if err != nil {
				return err
			}
			defer pg.Close()

			entries := storage.NewFallbackTable().Entries()
			if err := pg.WriteFallback(entries); err != nil {
				return err
			}
			logger.Info("Seeded %d fallback entries into PostgreSQL (table: fallback_costs)", len(entries))
			return nil
		},
	})

	return fallback
}

// buildCostService wires the scraper, discussion client and fallback table.
// The returned cleanup releases the browser when one was started.
func buildCostService(cfg *config.Config, logger *utils.Logger) (*services.CostService, func(), error) {
	cleanup := func() {}

	table, err := loadFallbackTable(cfg, logger)
	if err != nil {
		return nil, cleanup, err
	}

	opts := services.CostServiceOptions{
		Fallback:          table,
		ScrapeTimeout:     cfg.ScrapeTimeout,
		DiscussionTimeout: cfg.DiscussionTimeout,
		Logger:            logger,
	}

	if cfg.ScrapingEnabled {
		var fetcher numbeo.PageFetcher
		switch cfg.ScrapeMode {
		case config.ScrapeModeBrowser:
			bf, err := numbeo.NewBrowserFetcher(cfg.ChromeBin, cfg.ScrapeTimeout)
			if err != nil {
				return nil, cleanup, err
			}
			cleanup = func() { _ = bf.Close() }
			fetcher = bf
		case config.ScrapeModeHTTP:
			fetcher = numbeo.NewHTTPFetcher(cfg.ScrapeTimeout)
		default:
			return nil, cleanup, fmt.Errorf("unknown SCRAPE_MODE %q", cfg.ScrapeMode)
		}
		opts.Scraper = numbeo.New(cfg.NumbeoBaseURL, fetcher, logger)
	}

	if cfg.DiscussionsEnabled {
		opts.Discussions = reddit.NewClient(cfg.RedditSearchURL, cfg.DiscussionTimeout)
	}

	return services.NewCostService(opts), cleanup, nil
}

func loadFallbackTable(cfg *config.Config, logger *utils.Logger) (*storage.FallbackTable, error) {
	var sources []storage.FallbackSource

	if cfg.FallbackCSVPath != "" {
		src, err := storage.NewCSVSource(cfg.FallbackCSVPath)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if cfg.FallbackDSN != "" {
		pg, err := storage.NewPostgresStore(cfg.FallbackDSN)
		if err != nil {
			for _, s := range sources {
				_ = s.Close()
			}
			return nil, err
		}
		sources = append(sources, pg)
	}

	table, err := storage.LoadFallbackTable(sources...)
	if err != nil {
		return nil, err
	}
	logger.Info("Fallback table ready: %d keys (%d extra sources)", table.Len(), len(sources))
	return table, nil
}
