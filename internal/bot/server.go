package bot

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/merge2048/internal/codec"
)

// maxBodyBytes bounds the size of an interaction payload.
const maxBodyBytes = 1 << 20

// ServerConfig holds configuration for the interactions endpoint.
type ServerConfig struct {
	// Address is the host:port to listen on.
	Address string

	// Path is the route Discord posts interactions to.
	Path string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:         "127.0.0.1:3000",
		Path:            "/i",
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server exposes a Handler over HTTP.
type Server struct {
	config   ServerConfig
	handler  *Handler
	verifier *Verifier
	router   *mux.Router
	http     *http.Server
	logger   *log.Logger
}

// NewServer wires the handler and verifier behind a router.
// A nil logger writes to stderr.
func NewServer(cfg ServerConfig, h *Handler, v *Verifier, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "merge2048-bot",
		})
	}
	if cfg.Path == "" {
		cfg.Path = DefaultServerConfig().Path
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultServerConfig().ShutdownTimeout
	}

	s := &Server{
		config:   cfg,
		handler:  h,
		verifier: v,
		router:   mux.NewRouter(),
		logger:   logger,
	}
	s.setupRoutes()

	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc(s.config.Path, s.handleInteraction).Methods(http.MethodPost)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleInteraction(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := s.verifier.Verify(r); err != nil {
		s.logger.Warn("rejected request", "remote", r.RemoteAddr, "error", err)
		http.Error(w, "invalid request signature", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Warn("read body", "error", err)
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return
	}

	var in discordgo.Interaction
	if err := json.Unmarshal(body, &in); err != nil {
		s.logger.Warn("decode interaction", "error", err)
		http.Error(w, "invalid interaction", http.StatusBadRequest)
		return
	}

	out, err := s.handler.Handle(r.Context(), &in)
	if err != nil {
		status := http.StatusBadRequest
		if !isClientError(err) {
			status = http.StatusInternalServerError
		}
		s.logger.Error("handle interaction", "id", in.ID, "type", in.Type, "error", err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	if out.GameOver && out.Moved {
		s.logger.Info("game over", "user", AuthorID(&in), "score", out.Score)
	}
	s.logger.Debug("interaction",
		"id", in.ID,
		"type", in.Type,
		"response", out.Response.Type,
		"moved", out.Moved,
	)

	respondJSON(w, http.StatusOK, out.Response)
}

func isClientError(err error) bool {
	return errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnsupportedInteraction) ||
		errors.Is(err, ErrMalformedInteraction) ||
		errors.Is(err, codec.ErrMalformedGrid)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Nothing to do once headers are sent
	json.NewEncoder(w).Encode(data)
}

// ListenAndServe serves until ctx is cancelled or SIGINT/SIGTERM arrives,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.logger.Info("starting interactions server", "address", s.config.Address, "path", s.config.Path)

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
