package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ripperk-go/ripperk/internal/config"
	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/influxmetrics"
	"github.com/ripperk-go/ripperk/internal/learner"
	"github.com/ripperk-go/ripperk/internal/model"
	"github.com/ripperk-go/ripperk/internal/storage"
	"github.com/ripperk-go/ripperk/internal/telemetry"
)

func newLearnCmd() *cobra.Command {
	cfg := config.New()
	var configPath string

	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Induce a RIPPERk model from a labeled CSV dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := applyConfigFile(cmd, configPath, &cfg); err != nil {
					return err
				}
			}
			return runLearnCmd(cmd.Context(), &cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML file of defaults for any flag left unset")
	flags.StringVar(&cfg.Dataset, "dataset", "", "path to the training CSV (local path or gs://bucket/object)")
	flags.StringVar(&cfg.Model, "model", "", "path to write the binary model to")
	flags.StringVar(&cfg.ModelTxt, "model-txt", "", "optional path to write a human-readable model dump to")
	flags.Float64Var(&cfg.Ratio, "ratio", config.DefaultRatio, "grow/prune split fraction")
	flags.IntVar(&cfg.K, "k", config.DefaultK, "number of optimization passes")
	flags.StringVar(&cfg.OTLPEndpoint, "otlp-endpoint", "", "OTLP/gRPC trace collector endpoint (stdout tracing if empty)")
	flags.StringVar(&cfg.InfluxURL, "influx-url", "", "InfluxDB URL to push per-class training metrics to (disabled if empty)")
	flags.StringVar(&cfg.InfluxToken, "influx-token", "", "InfluxDB auth token")
	flags.StringVar(&cfg.InfluxBucket, "influx-bucket", "", "InfluxDB bucket")
	flags.BoolVar(&cfg.Progress, "progress", true, "show a live progress view while learning")

	return cmd
}

func runLearnCmd(ctx context.Context, cfg *config.Config) error {
	if cfg.Dataset == "" {
		v, err := promptForPath("Dataset path", "train.csv")
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
	if err := cfg.Validate(); err != nil {
		return err
	}

	runID := uuid.NewString()

	providers, err := telemetry.Setup(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer providers.Shutdown(ctx)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With(slog.String("run_id", runID))

	instances, err := loadDataset(ctx, cfg.Dataset)
	if err != nil {
		return err
	}
	catalog := dataset.NewCatalog(instances)

	var influxClient *influxmetrics.Client
	if cfg.InfluxURL != "" {
		influxClient = influxmetrics.New(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxBucket)
		defer influxClient.Close()
	}

	events := make(chan learner.ProgressEvent, 16)
	l := learner.New(catalog, learner.Config{Ratio: cfg.Ratio, K: cfg.K}, logger, events)

	m := runLearn(ctx, l, instances, events, cfg.Progress)

	if influxClient != nil {
		for _, class := range m.ClassOrder() {
			rs := m.Get(class)
			if rs == nil {
				continue
			}
			influxClient.RecordClassRun(ctx, class, rs.Size())
		}
	}

	if err := saveModel(ctx, m, cfg.Model); err != nil {
		return err
	}
	if cfg.ModelTxt != "" {
		if err := saveModelText(ctx, m, cfg.ModelTxt, runID); err != nil {
			return err
		}
	}

	fmt.Println(style(successStyle, fmt.Sprintf("model written to %s (%d classes, default %q)", cfg.Model, len(m.ClassOrder()), m.DefaultClass())))
	return nil
}

// loadDataset reads and parses a CSV dataset from a local path or a
// gs:// object, dispatching through storage.Resolve.
func loadDataset(ctx context.Context, path string) ([]dataset.Instance, error) {
	r, err := storage.Resolve(path).Reader(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return dataset.LoadCSV(r)
}

// saveModel writes m's binary form to path. A local path goes through
// model.Save (temp file in the same directory, renamed into place); a
// gs:// destination goes through storage.Resolve.
func saveModel(ctx context.Context, m *model.Model, path string) error {
	if !strings.HasPrefix(path, "gs://") {
		return model.Save(m, path)
	}
	w, err := storage.Resolve(path).Writer(ctx, path)
	if err != nil {
		return err
	}
	defer w.Close()
	return m.WriteBinary(w)
}

// saveModelText writes m's human-readable IF/THEN/ELSE dump to path,
// preceded by a comment naming the run that produced it so the text
// dump can be correlated back to the run's log lines, which carry the
// same run_id. Traces and pushed metrics do not carry the run ID.
func saveModelText(ctx context.Context, m *model.Model, path string, runID string) error {
	w, err := storage.Resolve(path).Writer(ctx, path)
	if err != nil {
		return err
	}
	defer w.Close()
	if _, err := fmt.Fprintf(w, "# run %s\n", runID); err != nil {
		return fmt.Errorf("model: writing run header: %w", err)
	}
	return m.WriteText(w)
}
