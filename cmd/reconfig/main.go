// FILE: cmd/reconfig/main.go
package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/multilog"
)

// Simulate rapid reconfiguration under a constant log stream
func main() {
	var count atomic.Int64

	logger := multilog.NewLogger()
	cfg := multilog.DefaultConfig()
	cfg.EnableConsole = false
	cfg.EnableFile = true
	cfg.FilePath = "./reconfig_logs/reconfig.log"
	cfg.Async = true

	if err := logger.ApplyConfig(cfg); err != nil {
		fmt.Printf("Initial ApplyConfig error: %v\n", err)
		return
	}
	if err := logger.Start(); err != nil {
		fmt.Printf("Start error: %v\n", err)
		return
	}

	// Log something constantly
	go func() {
		for i := 0; ; i++ {
			logger.Info("test log", i)
			count.Add(1)
			time.Sleep(time.Millisecond)
		}
	}()

	// Trigger multiple reconfigurations rapidly, varying queue capacity to
	// force a processor restart each time
	for i := 0; i < 10; i++ {
		next := logger.GetConfig()
		next.QueueCapacity = int64(100 * (i + 1))
		if err := logger.ApplyConfig(next); err != nil {
			fmt.Printf("ApplyConfig error: %v\n", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)
	stats := logger.Stats()
	fmt.Printf("Total logs attempted: %d\n", count.Load())
	fmt.Printf("Processed: %d  Dropped: %d\n", stats.Processed, stats.Dropped)

	if err := logger.Shutdown(time.Second); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}
}
