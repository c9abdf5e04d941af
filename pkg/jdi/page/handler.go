package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/randalmurphal/jdi/pkg/jdi"
	"golang.org/x/sync/errgroup"
)

// RequestIDHeader, when present on a request, becomes the run ID.
const RequestIDHeader = "X-Request-Id"

// Handler serves the page, one Program run per request.
type Handler struct {
	program *Program
	logger  *slog.Logger
}

// NewHandler creates a Handler for p.
func NewHandler(p *Program) *Handler {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{program: p, logger: logger}
}

// ServeHTTP implements http.Handler. A failed run yields 500 with the error
// text and nothing from the partial body.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var opts []jdi.Option
	if id := r.Header.Get(RequestIDHeader); id != "" {
		opts = append(opts, jdi.WithRunID(id))
	}

	buf := NewBuffer()
	if err := h.program.Run(r.Context(), buf, opts...); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := buf.Send(w); err != nil {
		h.logger.Warn("response write failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
}

// NewServer returns an http.Server for h.
func NewServer(addr string, h http.Handler, readHeaderTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// Serve runs srv on ln until ctx is cancelled, the server fails, or the
// server is closed elsewhere, then shuts it down within shutdownTimeout.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
