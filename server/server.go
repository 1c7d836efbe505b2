package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bullposter-cli/logging"
	bullposter_protocol "bullposter-cli/solana"
	"bullposter-cli/storage"

	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

// ProfileStore resolves saved profile names to wallets.
type ProfileStore interface {
	GetProfile(name string) (*storage.Profile, error)
	GetAllProfiles() ([]storage.Profile, error)
}

// Server exposes read-only BullPoster account views over HTTP.
type Server struct {
	client   *bullposter_protocol.Client
	profiles ProfileStore
	log      logging.Logger
	router   *mux.Router
}

func New(client *bullposter_protocol.Client, profiles ProfileStore, log logging.Logger) *Server {
	if log == nil {
		log = logging.NewNop()
	}
	s := &Server{
		client:   client,
		profiles: profiles,
		log:      log,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(loggerMiddleware(s.log))

	api := r.PathPrefix("/api").Subrouter()

	// Program-wide singletons
	api.HandleFunc("/state", s.handleGetState).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", s.handleGetLeaderboard).Methods(http.MethodGet)
	api.HandleFunc("/indexes", s.handleGetIndexes).Methods(http.MethodGet)

	// Users
	api.HandleFunc("/users/{pubkey}/card", s.handleGetUserCard).Methods(http.MethodGet)
	api.HandleFunc("/users/{pubkey}/programs", s.handleGetUserPrograms).Methods(http.MethodGet)

	// Profiles
	api.HandleFunc("/profiles", s.handleGetProfiles).Methods(http.MethodGet)
	api.HandleFunc("/profiles/{name}/card", s.handleGetProfileCard).Methods(http.MethodGet)

	// Accounts by address
	api.HandleFunc("/programs/{address}", s.handleGetProgram).Methods(http.MethodGet)
	api.HandleFunc("/raids/{address}", s.handleGetRaid).Methods(http.MethodGet)
	api.HandleFunc("/competitions/{address}", s.handleGetCompetition).Methods(http.MethodGet)

	api.HandleFunc("/seeds", s.handleGetSeed).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		failure(w, http.StatusNotFound, "route not found")
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "API server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("API server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info(ctx, "shutting down API server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown: %w", err)
	}
	return nil
}
