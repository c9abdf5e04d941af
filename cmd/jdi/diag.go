package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/jdi/pkg/jdi/config"
	"github.com/randalmurphal/jdi/pkg/jdi/diag"
)

func newDiagCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag",
		Short: "Inspect the persistent diagnostic log",
	}
	cmd.AddCommand(newDiagListCmd(root))
	return cmd
}

func newDiagListCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list RUN_ID",
		Short: "List diagnostic lines recorded for a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.settings()
			if err != nil {
				return err
			}
			if s.DiagSink != config.SinkSQLite {
				return fmt.Errorf("diag list needs the %s sink, have %q", config.SinkSQLite, s.DiagSink)
			}

			sink, err := diag.NewSQLiteSink(s.DiagPath)
			if err != nil {
				return fmt.Errorf("open diagnostic log %s: %w", s.DiagPath, err)
			}
			defer sink.Close()

			records, err := sink.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, r := range records {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", r.Seq, r.Timestamp.Format(time.RFC3339), r.Line)
			}
			return tw.Flush()
		},
	}
}
