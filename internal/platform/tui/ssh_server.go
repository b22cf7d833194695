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

	"github.com/vovakirdan/tui-patience/internal/config"
	"github.com/vovakirdan/tui-patience/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2222").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.patience/host_key.
	HostKeyPath string

	// DBPath is the path to the results database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game holds the autoplay and demo settings every session plays with.
	Game config.Config
}

// SSHServerConfigFrom builds the server settings from the loaded config.
func SSHServerConfigFrom(cfg config.Config) (SSHServerConfig, error) {
	hostKey, err := config.ExpandHome(cfg.SSH.HostKey)
	if err != nil {
		return SSHServerConfig{}, err
	}
	return SSHServerConfig{
		Address:     cfg.SSH.Address,
		HostKeyPath: hostKey,
		DBPath:      cfg.DBPath,
		IdleTimeout: cfg.SSH.IdleTimeout(),
		Game:        cfg,
	}, nil
}

// SSHServer wraps a Wish SSH server serving one board per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "patience-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".patience", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
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
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := NewSessionModel(s.store, s.config.Game, s.logger.With("user", sshSession.User()),
		pty.Window.Width, pty.Window.Height)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
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

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenBoard
	screenStats
)

// SessionModel manages the full session flow: menu -> board or stats -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store  *storage.Store
	config config.Config
	logger *log.Logger
	width  int
	height int
	screen sessionScreen
	menu   MenuModel
	board  Model
	stats  StatsModel
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg config.Config, logger *log.Logger, width, height int) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		logger: logger,
		width:  width,
		height: height,
		menu:   newEmbeddedMenu(store, width, height),
	}
}

func newEmbeddedMenu(store *storage.Store, width, height int) MenuModel {
	m := NewMenuModel(store, width, height)
	m.embedded = true
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenBoard:
		return m.updateBoard(msg)
	case screenStats:
		return m.updateStats(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = newEmbeddedMenu(m.store, m.width, m.height)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		return m, tea.Quit
	}

	if m.menu.WantsStats() {
		m.stats = NewStatsModel(m.store, "", m.width, m.height)
		m.stats.embedded = true
		m.screen = screenStats
		return m, m.stats.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		board, err := NewModel(Options{
			Game:     selected.GameID,
			LoadID:   selected.SaveID,
			Config:   m.config,
			Store:    m.store,
			Logger:   m.logger,
			Width:    m.width,
			Height:   m.height,
			Embedded: true,
		})
		if err != nil {
			m.logger.Error("cannot start game", "game", selected.GameID, "err", err)
			return m.backToMenu()
		}
		m.board = board
		m.screen = screenBoard
		return m, m.board.Init()
	}

	return m, cmd
}

// updateBoard handles updates when a game is on the board.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if board, ok := newBoard.(Model); ok {
		m.board = board
	}

	if m.board.Done() {
		return m.backToMenu()
	}
	return m, cmd
}

// updateStats handles updates on the statistics screen.
func (m SessionModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	newStats, cmd := m.stats.Update(msg)
	if stats, ok := newStats.(StatsModel); ok {
		m.stats = stats
	}

	if m.stats.IsQuitting() {
		return m, tea.Quit
	}
	if m.stats.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	switch m.screen {
	case screenBoard:
		return m.board.View()
	case screenStats:
		return m.stats.View()
	}
	return m.menu.View()
}
