package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ripperk-go/ripperk/internal/config"
	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/learner"
	"github.com/ripperk-go/ripperk/internal/telemetry"
)

func newWatchCmd() *cobra.Command {
	cfg := config.New()
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-learn a model whenever its source dataset changes on disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatchCmd(cmd.Context(), &cfg, debounce)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Dataset, "dataset", "", "training CSV to watch (must be a local path)")
	flags.StringVar(&cfg.Model, "model", "", "path to (re)write the binary model to on every change")
	flags.Float64Var(&cfg.Ratio, "ratio", config.DefaultRatio, "grow/prune split fraction")
	flags.IntVar(&cfg.K, "k", config.DefaultK, "number of optimization passes")
	flags.DurationVar(&debounce, "debounce", 300*time.Millisecond, "minimum time between re-learn runs")

	return cmd
}

func runWatchCmd(ctx context.Context, cfg *config.Config, debounce time.Duration) error {
	if cfg.Dataset == "" {
		v, err := promptForPath("Dataset path to watch", "train.csv")
		if err != nil {
			return err
		}
		cfg.Dataset = v
	}
	if cfg.Model == "" {
		v, err := promptForPath("Model output path", "model.bin")
		if err != nil {
			return err
		}
		cfg.Model = v
	}

	providers, err := telemetry.Setup(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer providers.Shutdown(ctx)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: creating fsnotify watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(cfg.Dataset); err != nil {
		return fmt.Errorf("watch: watching %s: %w", cfg.Dataset, err)
	}

	relearn := func() {
		instances, err := loadDataset(ctx, cfg.Dataset)
		if err != nil {
			logger.Error("watch: loading dataset", slog.String("error", err.Error()))
			return
		}
		catalog := dataset.NewCatalog(instances)
		l := learner.New(catalog, learner.Config{Ratio: cfg.Ratio, K: cfg.K}, logger, nil)
		m := l.Fit(ctx, instances)
		if err := saveModel(ctx, m, cfg.Model); err != nil {
			logger.Error("watch: saving model", slog.String("error", err.Error()))
			return
		}
		logger.Info("model re-learned", slog.String("model", cfg.Model), slog.Int("classes", len(m.ClassOrder())))
	}

	fmt.Println(style(successStyle, fmt.Sprintf("watching %s", cfg.Dataset)))
	relearn()

	var lastRun time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if time.Since(lastRun) < debounce {
				continue
			}
			lastRun = time.Now()
			relearn()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch: fsnotify error", slog.String("error", err.Error()))
		}
	}
}
