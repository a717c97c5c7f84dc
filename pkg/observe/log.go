package observe

import (
	"context"
	"log/slog"

	"github.com/vango-dev/hashroute/pkg/router"
)

// Log returns an observer that writes one record per dispatch.
// Failures are logged at warn level, everything else at debug.
func Log(logger *slog.Logger) router.Observer {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "dispatch")

	return router.ObserverFunc(func(ctx context.Context, ev router.Event) {
		level := slog.LevelDebug
		if ev.Outcome == router.OutcomeFailed {
			level = slog.LevelWarn
		}
		if !logger.Enabled(ctx, level) {
			return
		}

		attrs := []slog.Attr{
			slog.String("hash", ev.Hash),
			slog.String("outcome", string(ev.Outcome)),
			slog.Duration("duration", ev.Duration),
		}
		if ev.Route != "" {
			attrs = append(attrs, slog.String("route", ev.Route), slog.String("path", ev.Path))
		}
		if ev.Fragment.SubRoute != "" {
			attrs = append(attrs, slog.String("sub_route", ev.Fragment.SubRoute))
		}
		if ev.Err != nil {
			attrs = append(attrs, slog.String("error", ev.Err.Error()))
		}
		logger.LogAttrs(ctx, level, "dispatch", attrs...)
	})
}
