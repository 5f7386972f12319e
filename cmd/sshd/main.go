package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-pad/internal/config"
	applog "github.com/vancomm/minesweeper-pad/internal/logging"
	"github.com/vancomm/minesweeper-pad/internal/mines"
	"github.com/vancomm/minesweeper-pad/internal/repository"
	"github.com/vancomm/minesweeper-pad/internal/tui"
)

const maxConnectionsPerIP = 2

var (
	log = logrus.New()

	ipCounter = make(map[string]int)
	ipMutex   sync.Mutex
)

func remoteIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

// acquire counts a connection from ip unless the ip is at its limit.
func acquire(ip string) (int, bool) {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	if ipCounter[ip] >= maxConnectionsPerIP {
		return ipCounter[ip], false
	}
	ipCounter[ip]++
	return ipCounter[ip], true
}

func release(ip string) {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	ipCounter[ip]--
	if ipCounter[ip] <= 0 {
		delete(ipCounter, ip)
	}
}

func connectionLimiter(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := remoteIP(s)
		count, ok := acquire(ip)
		if !ok {
			log.WithFields(logrus.Fields{
				"ip":    ip,
				"limit": maxConnectionsPerIP,
			}).Warn("connection denied: ip limit exceeded")
			wish.Fatalf(s, "Too many active connections from your IP (%d/%d).\r\n", count, maxConnectionsPerIP)
			return
		}
		defer release(ip)

		log.WithFields(logrus.Fields{"ip": ip, "count": count}).Info("connection accepted")
		next(s)
	}
}

func gameHandler(scores repository.HighScoreStore) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		model, err := tui.New(tui.Options{
			Scores:     scores,
			PlayerName: s.User(),
			Log:        log.WithField("user", s.User()),
		})
		if err != nil {
			log.WithError(err).Error("unable to start game")
			wish.Fatalln(s, "unable to start game")
			return nil, nil
		}
		return model, []tea.ProgramOption{tea.WithAltScreen()}
	}
}

func main() {
	if err := applog.Setup(applog.OptionsFromEnv(), log, mines.Log); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}

	scores, err := repository.OpenSQLite(config.HighscoresDB())
	if err != nil {
		log.Fatal("unable to open high scores: ", err)
	}
	defer scores.Close()

	addr := config.SSHAddr()
	server, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(config.SSHHostKeyPath()),
		wish.WithMiddleware(
			bubbletea.Middleware(gameHandler(scores)),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(log),
			connectionLimiter,
		),
	)
	if err != nil {
		scores.Close()
		log.Fatal("unable to create ssh server: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("starting ssh server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to listen and serve: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			log.Error(err)
		}
	}

	log.Info("stopping ssh server")
	sCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(sCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.WithError(err).Error("could not stop server")
	}
}
