package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/scenekit/internal/auth"
	"github.com/inamate/scenekit/internal/collab"
	"github.com/inamate/scenekit/internal/config"
	mw "github.com/inamate/scenekit/internal/middleware"
	"github.com/inamate/scenekit/internal/project"
	"github.com/inamate/scenekit/internal/typeid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	authService := auth.NewService(cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	hub := collab.NewHub(cfg.MaxShapesPerScene)
	go hub.Run()

	// The playground exists from startup so anonymous visitors share one scene.
	hub.Scene(cfg.PlaygroundScene)

	projectService := project.NewService(authService)
	projectHandler := project.NewHandler(projectService, hub, cfg.PlaygroundScene)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	r.Handle("/auth/me", authService.AuthMiddleware(http.HandlerFunc(authHandler.Me))).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Playground scene (public)
	r.HandleFunc("/playground/draw", projectHandler.Draw).Methods("GET")
	r.HandleFunc("/playground/hit", projectHandler.Hit).Methods("GET")
	r.HandleFunc("/playground/bbox", projectHandler.BoundingBox).Methods("GET")
	r.HandleFunc("/playground/ops", projectHandler.SubmitOperation).Methods("POST", "OPTIONS")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/projects", projectHandler.List).Methods("GET")
	api.HandleFunc("/projects", projectHandler.Create).Methods("POST")
	api.HandleFunc("/projects/{projectId}", projectHandler.Get).Methods("GET")
	api.HandleFunc("/projects/{projectId}", projectHandler.Delete).Methods("DELETE")
	api.HandleFunc("/projects/{projectId}/invite", projectHandler.Invite).Methods("POST")
	api.HandleFunc("/projects/{projectId}/members", projectHandler.ListMembers).Methods("GET")
	api.HandleFunc("/projects/{projectId}/members/{userId}", projectHandler.RemoveMember).Methods("DELETE")
	api.HandleFunc("/projects/{projectId}/draw", projectHandler.Draw).Methods("GET")
	api.HandleFunc("/projects/{projectId}/hit", projectHandler.Hit).Methods("GET")
	api.HandleFunc("/projects/{projectId}/bbox", projectHandler.BoundingBox).Methods("GET")
	api.HandleFunc("/projects/{projectId}/ops", projectHandler.SubmitOperation).Methods("POST")

	// WebSocket endpoint
	r.HandleFunc("/ws/scene/{sceneId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, projectService, cfg)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "playground", cfg.PlaygroundScene, "maxShapes", cfg.MaxShapesPerScene)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *collab.Hub, authSvc *auth.Service, projects *project.Service, cfg *config.Config) {
	sceneID := mux.Vars(r)["sceneId"]

	var userID string
	var displayName string

	if sceneID == cfg.PlaygroundScene {
		// Anonymous user for playground
		userID = "anon-" + uuid.New().String()[:8]
		displayName = "Anonymous"
	} else {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		claims, err := authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		userID = claims.UserID
		displayName = claims.DisplayName

		if err := projects.CheckMembership(r.Context(), sceneID, userID); err != nil {
			if errors.Is(err, project.ErrNotFound) {
				http.Error(w, "scene not found", http.StatusNotFound)
				return
			}
			http.Error(w, "not a project member", http.StatusForbidden)
			return
		}
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(cfg.Origins()),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := collab.NewClient(hub, conn, userID, displayName, sceneID, typeid.NewSessionID())

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// originPatterns strips schemes, since websocket.AcceptOptions matches hosts.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
			continue
		}
		out = append(out, o)
	}
	return out
}
