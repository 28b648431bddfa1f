package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cbodonnell/worldcanvas/client/cache"
	"github.com/cbodonnell/worldcanvas/client/mirror"
	"github.com/cbodonnell/worldcanvas/client/network"
	"github.com/cbodonnell/worldcanvas/client/viewer"
	"github.com/cbodonnell/worldcanvas/pkg/log"
)

func main() {
	serverAddr := flag.String("server", "ws://localhost:8889/stream", "Chunk stream gateway address")
	viewWidth := flag.Float64("view-width", 1920, "Viewport width in world units")
	viewHeight := flag.Float64("view-height", 1080, "Viewport height in world units")
	startX := flag.Float64("start-x", 300, "Initial camera x position")
	startY := flag.Float64("start-y", 300, "Initial camera y position")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		cancel()
	}()

	wsClient := network.NewWSClient(*serverAddr)
	if err := wsClient.Connect(); err != nil {
		panic(fmt.Sprintf("Failed to connect to gateway: %v", err))
	}

	go func() {
		if err := wsClient.HandleMessages(ctx); err != nil {
			log.Error("Gateway connection lost: %v", err)
			cancel()
		}
	}()

	labels := mirror.NewLabelSet()
	sceneMirror := mirror.NewSceneMirror(mirror.NewSceneMirrorOptions{Labels: labels})
	chunkCache := cache.NewChunkCache(cache.NewChunkCacheOptions{
		Subscriber: wsClient,
		Target:     sceneMirror,
	})
	defer chunkCache.Close()

	canvasViewer := viewer.NewViewer(viewer.NewViewerOptions{
		Cache:      chunkCache,
		Mirror:     sceneMirror,
		Labels:     labels,
		ViewWidth:  *viewWidth,
		ViewHeight: *viewHeight,
	})
	canvasViewer.MoveCamera(*startX, *startY)

	log.Info("Starting viewer")
	if err := canvasViewer.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start viewer: %v", err))
	}
}
