// Command chessai-ssh serves the terminal chess game over SSH. Each session
// gets its own game against the shared engine settings.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/keygen"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/gorilla/websocket"
	sshproxy "github.com/imjasonh/ssh-proxy"

	"github.com/hailam/chessai/internal/config"
	"github.com/hailam/chessai/internal/engine"
	"github.com/hailam/chessai/internal/storage"
	"github.com/hailam/chessai/internal/tui"
)

func main() {
	var (
		port     = flag.Int("port", 2222, "SSH server port")
		hostKey  = flag.String("host-key", ".ssh/chessai_host_key", "path of the ED25519 host key, generated if missing")
		level    = flag.String("level", config.Getenv(config.EnvLevel, engine.Medium.String()), "starting computer strength: easy, medium or hard")
		logLevel = flag.String("log-level", config.Getenv(config.EnvLogLevel, "info"), "log level")
		noStore  = flag.Bool("no-store", config.GetenvBool(config.EnvNoStore, false), "do not persist preferences and statistics")
	)
	flag.Parse()

	logger := config.NewLogger(os.Stderr, "chessai-ssh", *logLevel)
	startLevel := config.Level(logger, *level)

	if err := ensureHostKey(*hostKey, logger); err != nil {
		logger.Fatal("host key", "err", err)
	}

	var store *storage.Storage
	if !*noStore {
		var err error
		store, err = storage.NewStorage(logger)
		if err != nil {
			logger.Warn("storage disabled", "err", err)
		} else {
			defer store.Close()
		}
	}

	teaHandler := func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		// Each SSH user has their own preferences and statistics.
		var userStore *storage.Storage
		if store != nil {
			userStore = store.ForUser(s.User())
		}
		m := tui.New(tui.Options{
			Store:    userStore,
			Logger:   logger.With("user", s.User()),
			Username: s.User(),
			Level:    startLevel,
		})
		return m, []tea.ProgramOption{tea.WithAltScreen()}
	}

	addr := fmt.Sprintf(":%d", *port)
	s, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(*hostKey),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler),
			logging.MiddlewareWithLogger(logger),
		),
	)
	if err != nil {
		logger.Fatal("creating server", "err", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		logger.Info("starting SSH server", "addr", addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Error("ssh server", "err", err)
			cancel()
		}
	}()

	var web *http.Server
	if httpPort := os.Getenv("PORT"); httpPort != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/ssh", sshproxy.ProxyWebSocketToSSH(addr, websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		}))
		web = &http.Server{Addr: ":" + httpPort, Handler: mux}
		go func() {
			logger.Info("starting WebSocket to SSH proxy", "port", httpPort)
			if err := web.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server", "err", err)
				cancel()
			}
		}()
	}

	<-ctx.Done()
	logger.Info("stopping SSH server")

	tctx, tcancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer tcancel()
	if web != nil {
		if err := web.Shutdown(tctx); err != nil {
			logger.Error("stopping http server", "err", err)
		}
	}
	if err := s.Shutdown(tctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		logger.Error("stopping ssh server", "err", err)
	}
}

// ensureHostKey generates an ED25519 key at path unless one exists.
func ensureHostKey(path string, logger *log.Logger) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating key directory: %w", err)
	}
	logger.Info("generating SSH host key", "path", path)
	if _, err := keygen.New(path, keygen.WithKeyType(keygen.Ed25519), keygen.WithWrite()); err != nil {
		return fmt.Errorf("generating host key: %w", err)
	}
	return nil
}
