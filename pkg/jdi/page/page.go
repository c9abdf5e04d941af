// Package page renders the JDI greeting page.
//
// A page run references JDIMessage before anything defines it. The greeting
// resolver supplies the class, echoing the requested name into the body and
// writing a diagnostic line. The page then sets its content type and writes
// the greeting text.
package page

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/randalmurphal/jdi/pkg/jdi"
	"github.com/randalmurphal/jdi/pkg/jdi/diag"
	"github.com/randalmurphal/jdi/pkg/jdi/observability"
)

// ContentType is the content type the page declares. It is "text/json",
// not "application/json"; clients depend on the literal value.
const ContentType = "text/json"

// Response is where a page writes. http.ResponseWriter satisfies it.
type Response interface {
	Header() http.Header
	io.Writer
}

// Render constructs JDIMessage on rt, sets the content type, and writes the
// object's text form without a trailing newline.
func Render(ctx context.Context, rt *jdi.Runtime, resp Response) error {
	msg, err := rt.New(ctx, jdi.ClassName)
	if err != nil {
		return fmt.Errorf("construct %s: %w", jdi.ClassName, err)
	}

	resp.Header().Set("Content-Type", ContentType)
	if _, err := io.WriteString(resp, msg.String()); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}

// Program runs the page with a fresh Runtime per run.
type Program struct {
	// Sink receives diagnostic lines. Nil discards them.
	Sink diag.Sink
	// Logger receives runtime and render logs. Nil uses slog.Default().
	Logger *slog.Logger
	// Options are applied to every Runtime after the logger option.
	Options []jdi.Option
}

// Run renders the page into resp. Extra options apply to this run only.
// The greeting resolver writes into resp, so the body begins with the
// resolved class name.
func (p *Program) Run(ctx context.Context, resp Response, opts ...jdi.Option) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	all := make([]jdi.Option, 0, 1+len(p.Options)+len(opts))
	all = append(all, jdi.WithLogger(logger))
	all = append(all, p.Options...)
	all = append(all, opts...)
	rt := jdi.NewRuntime(all...)

	counted := &countingResponse{Response: resp}
	rt.Register(jdi.GreetingResolver(counted, p.Sink))

	done := observability.TimedOperation()
	if err := Render(ctx, rt, counted); err != nil {
		observability.LogRenderError(rt.Logger(), err)
		return err
	}
	observability.LogRenderComplete(rt.Logger(), ContentType, counted.n, done())
	return nil
}

// countingResponse counts body bytes.
type countingResponse struct {
	Response
	n int
}

func (c *countingResponse) Write(p []byte) (int, error) {
	n, err := c.Response.Write(p)
	c.n += n
	return n, err
}
