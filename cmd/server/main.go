// Command server runs the eventkeeper gRPC API and the blob server that
// serves photos held in memory when object storage is unavailable.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/server"
	"github.com/dmitrijs2005/eventkeeper/internal/server/config"
)

// startupTimeout bounds database connection and migrations.
const startupTimeout = time.Minute

func main() {
	cfg := config.LoadConfig()

	initCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	app, err := server.NewApp(initCtx, cfg)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "eventkeeper server:", err)
		os.Exit(1)
	}

	app.Run(context.Background())
}
