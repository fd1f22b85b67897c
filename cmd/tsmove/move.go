// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/tsmove/pkg/mover"
	"github.com/petar-djukic/tsmove/pkg/types"
)

// newMoveCmd creates the "move" command.
func newMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <source> <destination>",
		Short: "Move a source file and rewrite its imports",
		Long: "Move relocates a file within the project, rewriting every import that\n" +
			"resolved to it. Paths may be absolute or relative to the project root.",
		Args: cobra.ExactArgs(2),
		RunE: runMove,
	}

	cmd.Flags().Bool("barrels", false, "Propagate the move through re-exporting barrel files")
	cmd.Flags().String("barrel-mode", "simple", "Barrel propagation mode: simple or recursive")
	cmd.Flags().Bool("dry-run", false, "Print planned changes without touching disk")
	cmd.Flags().Bool("git-commit", false, "Commit the move when the project is a git repository")

	return cmd
}

// runMove executes one move.
func runMove(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if viper.GetBool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}

	barrelModeName, _ := cmd.Flags().GetString("barrel-mode")
	barrelMode, err := types.ParseBarrelMode(barrelModeName)
	if err != nil {
		return err
	}

	m, err := mover.NewWithLogger(mover.Config{
		ProjectRoot: viper.GetString("project-root"),
	}, logger)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	updateBarrels, _ := cmd.Flags().GetBool("barrels")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	gitCommit, _ := cmd.Flags().GetBool("git-commit")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	result, err := m.Move(ctx, args[0], args[1], mover.Options{
		UpdateBarrels: updateBarrels,
		BarrelMode:    barrelMode,
		DryRun:        dryRun,
		GitCommit:     gitCommit,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	if dryRun {
		for _, d := range result.Diffs {
			fmt.Printf("--- %s\n%s\n", d.FilePath, d.Patch)
		}
	}
	printResult(result)
	return nil
}

// printResult outputs the result as JSON to stdout.
func printResult(result *mover.Result) {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling result: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
