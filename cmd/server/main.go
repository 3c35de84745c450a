package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/vinnie291/StarDraft/internal/server"
	"github.com/vinnie291/StarDraft/internal/version"
	"github.com/vinnie291/StarDraft/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	var noRush int
	flag.IntVar(&noRush, "norush", 60, "No-rush grace period in seconds, sent to both peers")
	flag.Parse()

	logger.Log.Info("Starting StarDraft relay...")
	logger.Log.Info(version.String())

	port := os.Getenv("SD_PORT")
	if port == "" {
		port = "8080"
	}

	mgr := server.NewManager(noRush)
	srv := server.New(mgr, port)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")
	logger.Log.Info("Done.")
}
