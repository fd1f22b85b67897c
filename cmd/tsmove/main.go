// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command tsmove moves TypeScript/JavaScript source files and rewrites
// every import that referenced them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "tsmove",
		Short: "Import-aware file mover for TypeScript/JavaScript projects",
		Long: "tsmove relocates a source file and rewrites affected import specifiers,\n" +
			"preserving path-alias, subpath-import, and workspace-package styles where\n" +
			"the destination still supports them.",
	}

	// Global flags.
	rootCmd.PersistentFlags().String("project-root", ".", "Project root directory")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	// Bind flags to viper.
	viper.BindPFlag("project-root", rootCmd.PersistentFlags().Lookup("project-root"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Env vars: TSMOVE_PROJECT_ROOT, etc.
	viper.SetEnvPrefix("TSMOVE")
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".tsmove")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	// Add commands.
	rootCmd.AddCommand(newMoveCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print tsmove version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tsmove %s\n", version)
		},
	}
}
