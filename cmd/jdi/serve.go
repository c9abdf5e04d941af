package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/jdi/pkg/jdi/page"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := root.settings()
			if err != nil {
				return err
			}
			if listen != "" {
				s.Listen = listen
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

			ln, err := net.Listen("tcp", s.Listen)
			if err != nil {
				return fmt.Errorf("listen %s: %w", s.Listen, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler := page.NewHandler(&page.Program{Sink: sink, Logger: logger, Options: runtimeOptions(s)})
			srv := page.NewServer(s.Listen, handler, s.ReadHeaderTimeout)

			logger.Info("serving jdi page", "addr", ln.Addr().String())
			return serve(ctx, srv, ln, s.ShutdownTimeout)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides settings)")
	return cmd
}

// serve is swapped in tests.
var serve = page.Serve
