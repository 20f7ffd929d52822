package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newRootCmd builds the ripperk command tree. Each subcommand owns its
// own flag set and config.Config rather than sharing persistent flags,
// since learn/evaluate/classify/serve/watch need different subsets of
// the same underlying fields.
//
// --mode is a back-compat alias: `ripperk --mode=learn ...` dispatches
// to the `learn` subcommand with the remaining flags untouched, for
// callers carried over from a prior single-flag invocation style.
func newRootCmd() *cobra.Command {
	var mode string

	root := &cobra.Command{
		Use:           "ripperk",
		Short:         "RIPPERk propositional rule induction",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode == "" {
				return cmd.Help()
			}
			target, _, err := cmd.Find([]string{mode})
			if err != nil {
				return fmt.Errorf("--mode %q: %w", mode, err)
			}
			target.SetArgs(args)
			return target.Execute()
		},
	}
	root.PersistentFlags().StringVar(&mode, "mode", "", "subcommand to run (alias for `ripperk <mode>`)")

	root.AddCommand(
		newLearnCmd(),
		newEvaluateCmd(),
		newClassifyCmd(),
		newDiffCmd(),
		newServeCmd(),
		newWatchCmd(),
	)
	return root
}
