// Package httpd serves the journal over HTTP for the search box UI.
package httpd

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/tradebook/tradebook/tradebook"
)

type Config struct {
	Addr           string
	AllowedOrigins []string
}

func DefaultConfig() Config {
	return Config{
		Addr:           ":8480",
		AllowedOrigins: []string{"*"},
	}
}

// Server exposes search, suggestion, and trade CRUD endpoints.
type Server struct {
	journal *tradebook.Journal
	log     *zap.Logger
	conf    Config
	srv     *http.Server
}

func New(j *tradebook.Journal, log *zap.Logger, conf Config) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{journal: j, log: log, conf: conf}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", metricsHandler())

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	api.HandleFunc("/suggest", s.handleSuggest).Methods(http.MethodGet)
	api.HandleFunc("/tags", s.handleTags).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/trades", s.handleListTrades).Methods(http.MethodGet)
	api.HandleFunc("/trades", s.handlePutTrade).Methods(http.MethodPost)
	api.HandleFunc("/trades/{id}", s.handleGetTrade).Methods(http.MethodGet)
	api.HandleFunc("/trades/{id}", s.handleDeleteTrade).Methods(http.MethodDelete)

	c := cors.New(cors.Options{
		AllowedOrigins: conf.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	s.srv = &http.Server{
		Addr:              conf.Addr,
		Handler:           s.logRequests(instrumentRequests(c.Handler(r))),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the root handler, exposed for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info("http listening", zap.String("addr", s.conf.Addr))
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("http stopped")
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)))
	})
}
