package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/ripperk-go/ripperk/internal/config"
	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/httpapi"
	"github.com/ripperk-go/ripperk/internal/telemetry"
)

func newServeCmd() *cobra.Command {
	cfg := config.New()
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a model over HTTP for classification, live progress and scraping",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := applyConfigFile(cmd, configPath, &cfg); err != nil {
					return err
				}
			}
			return runServeCmd(cmd.Context(), &cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML file of defaults for any flag left unset")
	flags.StringVar(&cfg.Dataset, "schema", "", "dataset CSV used to resolve attribute names/types for served models")
	flags.StringVar(&cfg.Addr, "addr", ":8080", "address to listen on")
	flags.StringVar(&cfg.APIToken, "token", "", "bearer token required on /v1 routes (unauthenticated if empty)")
	flags.StringVar(&cfg.CacheDir, "cache-dir", "", "directory for the on-disk model freshness cache (required)")
	flags.StringVar(&cfg.OTLPEndpoint, "otlp-endpoint", "", "OTLP/gRPC trace collector endpoint (stdout tracing if empty)")

	return cmd
}

func runServeCmd(ctx context.Context, cfg *config.Config) error {
	if cfg.Dataset == "" {
		v, err := promptForPath("Schema CSV path", "train.csv")
		if err != nil {
			return err
		}
		cfg.Dataset = v
	}
	if cfg.CacheDir == "" {
		v, err := promptForPath("Model cache directory", ".ripperk-cache")
		if err != nil {
			return err
		}
		cfg.CacheDir = v
	}

	providers, err := telemetry.Setup(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer providers.Shutdown(ctx)

	instances, err := loadDataset(ctx, cfg.Dataset)
	if err != nil {
		return err
	}
	catalog := dataset.NewCatalog(instances)

	cache, err := httpapi.OpenModelCache(cfg.CacheDir)
	if err != nil {
		return err
	}
	defer cache.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	server := httpapi.NewServer(cache, catalog, cfg.APIToken, logger)
	router := server.Router(providers.Registry)

	fmt.Println(style(successStyle, fmt.Sprintf("serving on %s", cfg.Addr)))
	if err := http.ListenAndServe(cfg.Addr, router); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
