// Package main runs the LazyFinger auto clicker.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// main is the entrypoint for the LazyFinger CLI.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd assembles the command tree.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lazyfinger",
		Short: "Auto clicker with a web control panel and global hotkey",
		Long: `LazyFinger issues synthetic mouse clicks on a schedule.
Run "lazyfinger serve" for the control panel and F6 hotkey, or
"lazyfinger click" for a headless run from flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newClickCmd())
	rootCmd.AddCommand(newCursorCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}
