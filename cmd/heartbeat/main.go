// FILE: cmd/heartbeat/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lixenwraith/multilog"
)

// Demonstrates heartbeat records and the prometheus collector
func main() {
	logger, err := multilog.NewBuilder().
		Console(multilog.ConsoleStdout, multilog.LevelTrace).
		Async(256).
		Heartbeat(1).
		FlushInterval(200).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Shutdown(time.Second)

	registry := prometheus.NewRegistry()
	if err := registry.Register(multilog.NewCollector(logger)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to register collector: %v\n", err)
		os.Exit(1)
	}

	for i := 0; i < 20; i++ {
		logger.Info("working", "iteration", i)
		time.Sleep(200 * time.Millisecond)
	}

	_ = logger.Flush(time.Second)

	families, err := registry.Gather()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Gather failed: %v\n", err)
		os.Exit(1)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				fmt.Printf("%s = %v\n", mf.GetName(), m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				fmt.Printf("%s = %v\n", mf.GetName(), m.GetGauge().GetValue())
			}
		}
	}
}
