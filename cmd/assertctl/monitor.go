package main

import (
	"context"
	"time"

	"digital.vasic.assertions/pkg/logging"
	"digital.vasic.assertions/pkg/monitor"
)

const monitorShutdownTimeout = 5 * time.Second

// startMonitor serves live progress on opts.monitor and routes runner
// events to it. The returned function stops the server.
func (a *app) startMonitor(ctx context.Context, opts *runOptions) func() {
	collector := monitor.NewCollector()
	srv := monitor.NewServer(opts.monitor, collector, monitor.NewDashboard())
	opts.observer = collector.Observe

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.logger.Info("monitor_listening", logging.StringField("addr", opts.monitor))
		if err := srv.Start(ctx); err != nil {
			a.logger.Error("monitor_failed", logging.ErrorField(err))
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), monitorShutdownTimeout)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			a.logger.Warn("monitor_stop_failed", logging.ErrorField(err))
		}
		<-done
	}
}
