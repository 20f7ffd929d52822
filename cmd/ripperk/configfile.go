package main

import (
	"github.com/spf13/cobra"

	"github.com/ripperk-go/ripperk/internal/config"
)

// applyConfigFile loads path and copies each field into cfg, but only
// where the matching flag was never set on the command line. Explicit
// flags always win over the file; the file always wins over a flag's
// own built-in default.
func applyConfigFile(cmd *cobra.Command, path string, cfg *config.Config) error {
	file, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	// set applies val to *dst unless name isn't a flag on this command
	// (Lookup nil) or the user already set it explicitly.
	set := func(name string, dst *string, val string) {
		if flags.Lookup(name) == nil || flags.Changed(name) || val == "" {
			return
		}
		*dst = val
	}

	set("dataset", &cfg.Dataset, file.Dataset)
	set("schema", &cfg.Dataset, file.Dataset)
	set("model", &cfg.Model, file.Model)
	set("model-txt", &cfg.ModelTxt, file.ModelTxt)
	set("otlp-endpoint", &cfg.OTLPEndpoint, file.OTLPEndpoint)
	set("influx-url", &cfg.InfluxURL, file.InfluxURL)
	set("influx-token", &cfg.InfluxToken, file.InfluxToken)
	set("influx-bucket", &cfg.InfluxBucket, file.InfluxBucket)
	set("addr", &cfg.Addr, file.Addr)
	set("token", &cfg.APIToken, file.APIToken)
	set("cache-dir", &cfg.CacheDir, file.CacheDir)

	if flags.Lookup("ratio") != nil && !flags.Changed("ratio") && file.Ratio != 0 {
		cfg.Ratio = file.Ratio
	}
	if flags.Lookup("k") != nil && !flags.Changed("k") && file.K != 0 {
		cfg.K = file.K
	}
	return nil
}
