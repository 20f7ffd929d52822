package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ripperk-go/ripperk/internal/config"
	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/influxmetrics"
	"github.com/ripperk-go/ripperk/internal/model"
)

func newEvaluateCmd() *cobra.Command {
	cfg := config.New()

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score a held-out CSV dataset against a saved model",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluateCmd(cmd.Context(), &cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Dataset, "dataset", "", "path to the held-out CSV")
	flags.StringVar(&cfg.Model, "model", "", "path to a saved model")
	flags.StringVar(&cfg.InfluxURL, "influx-url", "", "InfluxDB URL to push evaluation accuracy to (disabled if empty)")
	flags.StringVar(&cfg.InfluxToken, "influx-token", "", "InfluxDB auth token")
	flags.StringVar(&cfg.InfluxBucket, "influx-bucket", "", "InfluxDB bucket")

	return cmd
}

func runEvaluateCmd(ctx context.Context, cfg *config.Config) error {
	if cfg.Dataset == "" {
		v, err := promptForPath("Evaluation dataset path", "test.csv")
		if err != nil {
			return err
		}
		cfg.Dataset = v
	}
	if cfg.Model == "" {
		v, err := promptForPath("Model path", "model.bin")
		if err != nil {
			return err
		}
		cfg.Model = v
	}

	instances, err := loadDataset(ctx, cfg.Dataset)
	if err != nil {
		return err
	}
	// A saved model's rules resolve each condition's attribute type by
	// name against a catalog (see rule.ReadBinary); a held-out set with
	// the same schema as training gives the same name-to-type mapping,
	// which is all the binary reader needs.
	catalog := dataset.NewCatalog(instances)

	m, err := model.Load(cfg.Model, catalog)
	if err != nil {
		return err
	}

	correct := 0
	for _, inst := range instances {
		if m.Classify(inst) == inst.Class {
			correct++
		}
	}

	var influxClient *influxmetrics.Client
	if cfg.InfluxURL != "" {
		influxClient = influxmetrics.New(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxBucket)
		defer influxClient.Close()
	}
	if influxClient != nil {
		influxClient.RecordAccuracy(ctx, cfg.Dataset, correct, len(instances))
	}

	accuracy := 0.0
	if len(instances) > 0 {
		accuracy = float64(correct) / float64(len(instances))
	}
	fmt.Printf("accuracy: %d/%d (%.2f%%)\n", correct, len(instances), accuracy*100)
	return nil
}
