package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ripperk-go/ripperk/internal/config"
	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/model"
)

func newClassifyCmd() *cobra.Command {
	cfg := config.New()
	var schema []string
	var attrFlags []string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one instance against a saved model",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassifyCmd(cmd.Context(), &cfg, schema, attrFlags)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Model, "model", "", "path to a saved model")
	flags.StringSliceVar(&schema, "schema", nil, "dataset CSV used to resolve attribute names/types (must share training's schema)")
	flags.StringArrayVar(&attrFlags, "attr", nil, `attribute value as "name=value"; repeatable`)

	return cmd
}

func runClassifyCmd(ctx context.Context, cfg *config.Config, schema, attrFlags []string) error {
	if cfg.Model == "" {
		v, err := promptForPath("Model path", "model.bin")
		if err != nil {
			return err
		}
		cfg.Model = v
	}
	if len(schema) == 0 {
		v, err := promptForPath("Schema CSV path", "train.csv")
		if err != nil {
			return err
		}
		schema = []string{v}
	}

	instances, err := loadDataset(ctx, schema[0])
	if err != nil {
		return err
	}
	catalog := dataset.NewCatalog(instances)

	m, err := model.Load(cfg.Model, catalog)
	if err != nil {
		return err
	}

	attrs := make(map[string]string, len(attrFlags))
	for _, kv := range attrFlags {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("classify: --attr %q must be name=value", kv)
		}
		attrs[name] = value
	}
	if len(attrs) == 0 {
		attrs, err = promptForAttributes(catalog.Names())
		if err != nil {
			return err
		}
	}

	inst := dataset.Instance{}
	for name, raw := range attrs {
		if raw == "" {
			continue
		}
		inst.Attributes = append(inst.Attributes, dataset.ParseCellAttribute(name, raw))
	}

	fmt.Println(m.Classify(inst))
	return nil
}
