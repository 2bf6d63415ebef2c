// FILE: example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/multilog"
	"github.com/lixenwraith/multilog/compat"
)

func main() {
	// Create and configure logger
	logger, err := multilog.NewBuilder().
		Level(multilog.LevelDebug).
		Console(multilog.ConsoleStdout, multilog.LevelTrace).
		File("/var/log/fasthttp/server.log", 10*1024*1024, 5).
		Async(2048).
		Build()
	if err != nil {
		panic(err)
	}
	if err := logger.Start(); err != nil {
		panic(err)
	}
	defer logger.Shutdown(time.Second)

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(multilog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

// customLevelDetector escalates connection problems, otherwise defers to
// the default detection
func customLevelDetector(msg string) int64 {
	if strings.Contains(msg, "connection reset") {
		return multilog.LevelWarn
	}
	return compat.DetectLogLevel(msg)
}
