package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/worldcanvas/pkg/api/handlers"
	"github.com/cbodonnell/worldcanvas/pkg/api/middleware"
	authproviders "github.com/cbodonnell/worldcanvas/pkg/auth/providers"
	"github.com/cbodonnell/worldcanvas/pkg/history"
	"github.com/cbodonnell/worldcanvas/pkg/log"
	"github.com/cbodonnell/worldcanvas/pkg/placement"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port         int
	TLS          *TLSConfig
	AuthProvider authproviders.AuthProvider
	Pipeline     *placement.Pipeline
	History      *history.Log
}

// NewAPIServer creates a new http.Server handling the canvas command API.
// Commands require a verified identity; the read endpoints are public.
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	authMiddleware := middleware.NewAuthMiddleware(opts.AuthProvider)

	r := mux.NewRouter()
	r.Use(corsMiddleware)

	authed := r.NewRoute().Subrouter()
	authed.Use(authMiddleware)
	authed.HandleFunc("/objects/place", handlers.HandlePlaceObject(opts.Pipeline)).Methods(http.MethodPost, http.MethodOptions)
	authed.HandleFunc("/objects/delete", handlers.HandleDeleteObject(opts.Pipeline)).Methods(http.MethodPost, http.MethodOptions)
	authed.HandleFunc("/identity/init", handlers.HandleInitIdentity(opts.Pipeline)).Methods(http.MethodPost, http.MethodOptions)

	r.HandleFunc("/editor-state", handlers.HandleGetEditorState(opts.Pipeline)).Methods(http.MethodGet)
	r.HandleFunc("/toplist", handlers.HandleGetToplist(opts.History)).Methods(http.MethodGet)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: r,
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
