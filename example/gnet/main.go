// FILE: example/gnet/main.go
package main

import (
	"time"

	"github.com/panjf2000/gnet/v2"

	"github.com/lixenwraith/multilog"
	"github.com/lixenwraith/multilog/compat"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	logger, err := multilog.NewBuilder().
		Level(multilog.LevelDebug).
		NoConsole().
		File("/var/log/gnet/server.log", 10*1024*1024, 5).
		Async(2048).
		OverflowPolicy(multilog.OverflowDropNewest).
		Build()
	if err != nil {
		panic(err)
	}
	if err := logger.Start(); err != nil {
		panic(err)
	}
	defer logger.Shutdown(time.Second)

	gnetAdapter := compat.NewGnetAdapter(logger)

	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
