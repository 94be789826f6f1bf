// Package main runs the LazyFinger auto clicker.
package main

import (
	"fmt"

	"github.com/frudas24/lazyfinger/internal/monitor"
	"github.com/frudas24/lazyfinger/internal/mouse"
	"github.com/spf13/cobra"
)

func newCursorCmd() *cobra.Command {
	var showMonitors bool
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Print the current cursor position for use as a fixed target",
		RunE: func(cmd *cobra.Command, args []string) error {
			injector, err := mouse.NewInjector()
			if err != nil {
				return err
			}
			defer injector.Close()

			x, y, err := injector.CursorPos()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "x=%d y=%d\n", x, y)

			if !showMonitors {
				return nil
			}
			list, err := monitor.ListMonitors()
			if err != nil {
				return err
			}
			for _, m := range list {
				mark := ""
				if m.Primary {
					mark = " primary"
				}
				if m.Contains(x, y) {
					mark += " (cursor)"
				}
				fmt.Fprintf(out, "monitor %d: %dx%d at %d,%d%s\n", m.Index, m.W, m.H, m.X, m.Y, mark)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showMonitors, "monitors", false, "Also list monitors")
	return cmd
}
