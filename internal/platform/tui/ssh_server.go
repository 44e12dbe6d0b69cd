package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/app4dog/game-play/internal/config"
	"github.com/app4dog/game-play/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.petsim/host_key.
	HostKeyPath string

	// DBPath is the path to the sessions database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.petsim/sessions.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server serving play sessions.
type SSHServer struct {
	config SSHServerConfig
	simCfg config.Config
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, simCfg config.Config) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "petsim-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open sessions database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		simCfg: simCfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".petsim", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	_, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := NewSessionModel(s.logger, s.simCfg, s.store)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages the full session flow: picker -> play -> picker.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	logger   *log.Logger
	simCfg   config.Config
	store    *storage.Store
	picker   PickerModel
	play     *Model
	inPlay   bool
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(logger *log.Logger, simCfg config.Config, store *storage.Store) SessionModel {
	return SessionModel{
		logger: logger,
		simCfg: simCfg,
		store:  store,
		picker: NewPickerModel(simCfg, store),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.inPlay && m.play != nil {
		return m.updatePlay(msg)
	}
	return m.updatePicker(msg)
}

// updatePicker handles updates when in picker mode.
func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPicker, cmd := m.picker.Update(msg)
	if pickerModel, ok := newPicker.(PickerModel); ok {
		m.picker = pickerModel
	}

	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.picker.Selected(); selected != nil {
		play := NewModel(m.logger, m.simCfg, m.store, selected.CritterID)
		m.play = &play
		m.inPlay = true
		return m, m.play.Init()
	}

	return m, cmd
}

// updatePlay handles updates when playing.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if playModel, ok := newModel.(Model); ok {
		m.play = &playModel
	}

	if m.play.quitting {
		// Back to the picker rather than dropping the connection.
		m.inPlay = false
		m.play = nil
		m.picker = NewPickerModel(m.simCfg, m.store)
		return m, m.picker.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inPlay && m.play != nil {
		return m.play.View()
	}

	return m.picker.View()
}
