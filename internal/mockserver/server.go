package mockserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/muurk/campuspass/internal/logging"
	"go.uber.org/zap"
)

// shutdownTimeout bounds how long in-flight requests may take to finish.
const shutdownTimeout = 10 * time.Second

// Config holds the mock backend configuration
type Config struct {
	Host         string
	Port         int
	StudentsFile string // YAML student directory (empty = built-in seed)
	NoMDNS       bool   // Skip mDNS advertisement
	CodeTTL      time.Duration
	Cooldown     time.Duration
}

// Server is the mock collaborator backend
type Server struct {
	config   *Config
	students *Directory
	codes    *CodeStore
	inbox    *Inbox
	codeTTL  time.Duration

	httpServer *http.Server
	mdns       *zeroconf.Server
}

// New creates a Server. Zero durations take the defaults.
func New(config *Config) (*Server, error) {
	records := SeedStudents
	if config.StudentsFile != "" {
		loaded, err := LoadStudents(config.StudentsFile)
		if err != nil {
			return nil, err
		}
		records = loaded
	}

	ttl := config.CodeTTL
	if ttl <= 0 {
		ttl = CodeTTL
	}
	cooldown := config.Cooldown
	if cooldown <= 0 {
		cooldown = ResendCooldown
	}

	s := &Server{
		config:   config,
		students: NewDirectory(records),
		codes:    NewCodeStore(ttl, cooldown),
		inbox:    NewInbox(),
		codeTTL:  ttl,
	}
	s.httpServer = &http.Server{
		Handler:           s.NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Inbox returns the dev inbox hub.
func (s *Server) Inbox() *Inbox {
	return s.inbox
}

// Start listens and serves, blocking until SIGINT/SIGTERM or a fatal error.
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprintf("%d", s.config.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	logging.Info("Starting campuspass mock backend",
		zap.String("addr", listener.Addr().String()),
		zap.Int("students", s.students.Len()),
		zap.Duration("code_ttl", s.codeTTL),
	)

	if !s.config.NoMDNS {
		port := listener.Addr().(*net.TCPAddr).Port
		mdns, err := advertise(port)
		if err != nil {
			// Discovery is a convenience; the API still works without it.
			logging.Warn("mDNS advertisement disabled", zap.Error(err))
		} else {
			s.mdns = mdns
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(listener)
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping server...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(ctx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}

// Shutdown stops advertising and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if s.mdns != nil {
		s.mdns.Shutdown()
		s.mdns = nil
	}

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		logging.Warn("Shutdown timeout, forcing close", zap.Error(err))
		_ = s.httpServer.Close()
	} else {
		logging.Info("All connections closed gracefully")
	}

	logging.Sync()
	return err
}

// Students exposes the directory for seeding in tests.
func (s *Server) Students() *Directory {
	return s.students
}
