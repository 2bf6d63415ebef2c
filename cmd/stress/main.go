// FILE: cmd/stress/main.go
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lixenwraith/multilog"
)

const (
	totalBursts    = 100
	logsPerBurst   = 500
	maxMessageSize = 2000
	numWorkers     = 50
)

var levels = []int64{
	multilog.LevelDebug,
	multilog.LevelInfo,
	multilog.LevelWarn,
	multilog.LevelError,
}

var logger *multilog.Logger

func generateRandomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst simulates a burst of logging activity
func logBurst(burstID int) {
	for i := 0; i < logsPerBurst; i++ {
		level := levels[rand.Intn(len(levels))]
		msgSize := rand.Intn(maxMessageSize) + 10
		logger.Log(level, generateRandomMessage(msgSize), "wkr", burstID%numWorkers, "bst", burstID, "i", i)
	}
}

func main() {
	var err error
	logger, err = multilog.NewBuilder().
		Level(multilog.LevelDebug).
		NoConsole().
		File("./stress_logs/stress.log", 1024*1024, 5). // 1MB, frequent rotation
		Async(500).
		OverflowPolicy(multilog.OverflowDropOldest).
		FlushInterval(50).
		Heartbeat(2).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start logger: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	var wg sync.WaitGroup
	sem := make(chan struct{}, numWorkers)

	for burst := 0; burst < totalBursts; burst++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(id int) {
			defer wg.Done()
			defer func() { <-sem }()
			logBurst(id)
		}(burst)
	}
	wg.Wait()

	if err := logger.Flush(5 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Flush failed: %v\n", err)
	}

	stats := logger.Stats()
	fmt.Printf("Elapsed: %v\n", time.Since(start))
	fmt.Printf("Processed: %d  Dropped: %d  Rotations: %d  SinkErrors: %d\n",
		stats.Processed, stats.Dropped, stats.Rotations, stats.SinkErrors)

	if err := logger.Shutdown(5 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
	}
}
