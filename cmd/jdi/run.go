package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/jdi/pkg/jdi"
	"github.com/randalmurphal/jdi/pkg/jdi/page"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		includeHeaders bool
		runID          string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Render the page once to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := root.settings()
			if err != nil {
				return err
			}
			logger, err := newLogger(s, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			sink, closeSink, err := openSink(s, logger, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeSink(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			program := &page.Program{Sink: sink, Logger: logger, Options: runtimeOptions(s)}
			var runOpts []jdi.Option
			if runID != "" {
				runOpts = append(runOpts, jdi.WithRunID(runID))
			}
			buf := page.NewBuffer()
			if err := program.Run(cmd.Context(), buf, runOpts...); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if includeHeaders {
				keys := make([]string, 0, len(buf.Header()))
				for k := range buf.Header() {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					for _, v := range buf.Header().Values(k) {
						if _, err := fmt.Fprintf(out, "%s: %s\r\n", k, v); err != nil {
							return err
						}
					}
				}
				if _, err := fmt.Fprint(out, "\r\n"); err != nil {
					return err
				}
			}
			_, err = out.Write(buf.Body())
			return err
		},
	}
	cmd.Flags().StringVar(&runID, "run-id", "", "run identifier recorded with diagnostics (default: random UUID)")
	cmd.Flags().BoolVarP(&includeHeaders, "include-headers", "i", false, "print response headers before the body")
	return cmd
}
