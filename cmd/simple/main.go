// FILE: cmd/simple/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/multilog"
)

const configFile = "simple_config.toml"

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[multilog]
  level = -4 # Debug
  pattern = "[%timestamp] [%level] [%thread] %message"
  async = true
  queue_capacity = 1024
  overflow_policy = "block"
  flush_interval_ms = 100
  enable_console = true
  console_target = "stdout"
  enable_file = true
  file_path = "./simple_logs/simple.log"
  max_file_size = 1048576
  max_backups = 3
`

func main() {
	fmt.Println("--- Simple Logger Example ---")

	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write example config: %v\n", err)
		os.Exit(1)
	}

	if err := multilog.InitWithFile(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer multilog.Shutdown(time.Second)

	multilog.Debug("debug message, visible because level is -4")
	multilog.Info("service starting", "port", 8080)
	multilog.Warn("disk usage above", 80, "percent")
	multilog.Error("simulated failure:", os.ErrPermission)

	if err := multilog.Flush(time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Flush failed: %v\n", err)
	}

	fmt.Println("Logs written to console and ./simple_logs/simple.log")
}
