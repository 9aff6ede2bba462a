// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Command wbindex is a small demo/test CLI driving an indexed write batch
// end-to-end: a script file of put/delete/merge/get/scan commands is
// executed against an in-memory batch fused with an in-memory fake base
// store. It has no durability or concurrency story of its own.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wbindex [command] (flags)",
	Short: "indexed write batch demo/introspection tool",
	Long:  ``,
}

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "execute a batch/base/get/scan script against a fresh session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return runScript(f, cmd.OutOrStdout())
	},
}

func main() {
	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
