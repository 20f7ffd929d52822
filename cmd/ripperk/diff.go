package main

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/sourcegraph/go-diff/diff"
	"github.com/spf13/cobra"

	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/model"
)

func newDiffCmd() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "diff <old-model> <new-model>",
		Short: "Show the rule-level differences between two saved models",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiffCmd(cmd, args[0], args[1], schemaPath)
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "dataset CSV used to resolve attribute names/types for both models")
	return cmd
}

func runDiffCmd(cmd *cobra.Command, oldPath, newPath, schemaPath string) error {
	if schemaPath == "" {
		v, err := promptForPath("Schema CSV path", "train.csv")
		if err != nil {
			return err
		}
		schemaPath = v
	}

	ctx := cmd.Context()
	instances, err := loadDataset(ctx, schemaPath)
	if err != nil {
		return err
	}
	catalog := dataset.NewCatalog(instances)

	oldModel, err := model.Load(oldPath, catalog)
	if err != nil {
		return fmt.Errorf("diff: loading %s: %w", oldPath, err)
	}
	newModel, err := model.Load(newPath, catalog)
	if err != nil {
		return fmt.Errorf("diff: loading %s: %w", newPath, err)
	}

	var oldText, newText bytes.Buffer
	if err := oldModel.WriteText(&oldText); err != nil {
		return err
	}
	if err := newModel.WriteText(&newText); err != nil {
		return err
	}

	unified, err := unifiedDiff(oldPath, newPath, oldText.String(), newText.String())
	if err != nil {
		return err
	}
	if unified == nil {
		fmt.Println(style(dimStyle, "models are textually identical"))
		return nil
	}

	rendered, err := diff.PrintFileDiff(unified)
	if err != nil {
		return fmt.Errorf("diff: rendering: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(rendered)
	return err
}

// unifiedDiff shells out to the system `diff` utility to compute a
// unified diff between oldText and newText, then parses it with
// go-diff so the CLI can re-render it (and, later, walk individual
// hunks) instead of just forwarding raw diff(1) output. Returns a nil
// FileDiff when the two texts are identical.
func unifiedDiff(oldLabel, newLabel, oldText, newText string) (*diff.FileDiff, error) {
	oldFile, err := writeTempFile("ripperk-diff-old-*.txt", oldText)
	if err != nil {
		return nil, err
	}
	defer removeTempFile(oldFile)
	newFile, err := writeTempFile("ripperk-diff-new-*.txt", newText)
	if err != nil {
		return nil, err
	}
	defer removeTempFile(newFile)

	out, err := exec.Command("diff", "-u", "--label", oldLabel, "--label", newLabel, oldFile, newFile).Output()
	if exitErr, ok := err.(*exec.ExitError); ok {
		if exitErr.ExitCode() == 1 {
			err = nil // exit code 1 means "differences found", not a failure
		}
	}
	if err != nil {
		return nil, fmt.Errorf("diff: running system diff: %w", err)
	}
	if len(out) == 0 {
		return nil, nil
	}

	fd, err := diff.ParseFileDiff(out)
	if err != nil {
		return nil, fmt.Errorf("diff: parsing unified diff: %w", err)
	}
	return fd, nil
}
