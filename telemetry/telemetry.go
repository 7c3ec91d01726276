// Package telemetry records how long maestro's operations take.
//
// Collectors travel through a context, so storage and the session can be
// instrumented without threading a collector through every signature. When no
// collector is attached, a no-op one is used.
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := telemetry.StartTimer(ctx, "storage.load")
//	setup := timer.Child("setup.json")
//	// ... work ...
//	setup.End()
//	timer.End()
//
//	collector.Report(os.Stderr, output.NewStyles(os.Stderr))
package telemetry

import (
	"context"
	"io"

	"github.com/robinvdvleuten/maestro/output"
)

type contextKey struct{}

// Collector gathers timings for named operations.
type Collector interface {
	// Start begins timing an operation. Operations started while another one
	// is running are nested under it.
	Start(name string) Timer

	// Report writes the collected timings to w. styles may be nil.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks a single operation.
type Timer interface {
	// End stops the timer.
	End()

	// Child starts a timer nested under this one.
	Child(name string) Timer
}

// WithCollector attaches a collector to ctx.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, contextKey{}, collector)
}

// FromContext returns the collector attached to ctx, or a no-op collector.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(contextKey{}).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// StartTimer starts timing name on the collector attached to ctx.
func StartTimer(ctx context.Context, name string) Timer {
	return FromContext(ctx).Start(name)
}
