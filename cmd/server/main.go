package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/cbodonnell/worldcanvas/pkg/accounts"
	"github.com/cbodonnell/worldcanvas/pkg/api"
	authproviders "github.com/cbodonnell/worldcanvas/pkg/auth/providers"
	"github.com/cbodonnell/worldcanvas/pkg/gateway"
	"github.com/cbodonnell/worldcanvas/pkg/history"
	"github.com/cbodonnell/worldcanvas/pkg/log"
	"github.com/cbodonnell/worldcanvas/pkg/placement"
	"github.com/cbodonnell/worldcanvas/pkg/repositories"
	"github.com/cbodonnell/worldcanvas/pkg/store"
	"github.com/cbodonnell/worldcanvas/pkg/workers"
)

func main() {
	apiPort := flag.Int("api-port", 8888, "API port to listen on")
	gatewayPort := flag.Int("gateway-port", 8889, "Chunk stream gateway port to listen on")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	ctx := context.Background()

	var authProvider authproviders.AuthProvider
	firebaseProjectID := os.Getenv("WORLDCANVAS_FIREBASE_PROJECT_ID")
	if firebaseProjectID != "" {
		credentialsFile := os.Getenv("WORLDCANVAS_FIREBASE_CREDENTIALS_FILE")
		authProvider, err = authproviders.NewFirebaseAuthProvider(ctx, firebaseProjectID, credentialsFile)
		if err != nil {
			panic(fmt.Sprintf("Failed to create Firebase auth provider: %v", err))
		}
	} else {
		log.Warn("WORLDCANVAS_FIREBASE_PROJECT_ID not set, using static dev tokens")
		authProvider = authproviders.NewStaticAuthProvider(map[string]string{
			"dev-token": "dev-uid",
		})
	}

	connStr := os.Getenv("WORLDCANVAS_DATABASE_URL")
	if connStr == "" {
		connStr = "sqlite://worldcanvas.db"
	}

	u, err := url.Parse(connStr)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse connection string: %v", err))
	}

	var repository repositories.Repository
	switch u.Scheme {
	case "sqlite":
		repository, err = repositories.NewSQLiteRepository(ctx, u.Host, "./migrations/sqlite")
		if err != nil {
			panic(fmt.Sprintf("Failed to create SQLite repository: %v", err))
		}
	case "postgresql":
		repository, err = repositories.NewPostgresRepository(ctx, u.String())
		if err != nil {
			panic(fmt.Sprintf("Failed to create Postgres repository: %v", err))
		}
	default:
		panic(fmt.Sprintf("Unknown database type %s", u.Scheme))
	}
	defer repository.Close(ctx)

	canvasStore := store.NewMemoryStore()
	accountManager := accounts.NewManager(canvasStore)
	historyLog := history.NewLog(canvasStore)

	editorState, err := placement.LoadEditorState(ctx, canvasStore)
	if err != nil {
		panic(fmt.Sprintf("Failed to load editor state: %v", err))
	}

	historyEntryChannelSize := 100
	historyEntryChan := make(chan history.Entry, historyEntryChannelSize)

	saveLoopInterval := 10 * time.Second
	saveWorker := workers.NewSaveCanvasStateWorker(workers.NewSaveCanvasStateWorkerOptions{
		Repository:       repository,
		Store:            canvasStore,
		HistoryEntryChan: historyEntryChan,
		Interval:         saveLoopInterval,
	})
	go saveWorker.Start(ctx)

	pipeline := placement.NewPipeline(placement.NewPipelineOptions{
		Store:              canvasStore,
		Accounts:           accountManager,
		History:            historyLog,
		State:              editorState,
		HistoryPersistChan: historyEntryChan,
	})

	chunkGateway := gateway.NewGateway(gateway.NewGatewayOptions{
		Store: canvasStore,
		Port:  *gatewayPort,
	})
	go chunkGateway.Start(ctx)

	apiServer := api.NewAPIServer(api.NewAPIServerOptions{
		Port:         *apiPort,
		AuthProvider: authProvider,
		Pipeline:     pipeline,
		History:      historyLog,
	})

	log.Info("Starting API server")
	apiServer.Start()
}
