package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-pad/internal/config"
	"github.com/vancomm/minesweeper-pad/internal/game"
	"github.com/vancomm/minesweeper-pad/internal/input"
	"github.com/vancomm/minesweeper-pad/internal/repository"
)

var ErrSessionNotFound = errors.New("session not found or expired")

const saveTimeout = 5 * time.Second

type GameHandler struct {
	log      logrus.FieldLogger
	ws       *config.WebSocket
	scores   repository.HighScoreStore
	sessions *Registry
	opts     []game.Option
}

// NewGameHandler builds the WebSocket play handler. scores may be nil, in
// which case won games are not recorded.
func NewGameHandler(
	log logrus.FieldLogger,
	ws *config.WebSocket,
	scores repository.HighScoreStore,
	sessions *Registry,
	opts ...game.Option,
) *GameHandler {
	return &GameHandler{
		log:      log,
		ws:       ws,
		scores:   scores,
		sessions: sessions,
		opts:     opts,
	}
}

func (g GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	dto, err := ParsePlayDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	var p *playSession
	if dto.Session != "" {
		var ok bool
		if p, ok = g.sessions.Take(dto.Session); !ok {
			sendErrorOrLog(w, g.log, http.StatusNotFound, ErrSessionNotFound)
			return
		}
	} else {
		p, err = newPlaySession(dto.Name, g.opts...)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			g.log.WithError(err).Error("unable to create game session")
			return
		}
	}

	log := g.log.WithFields(logrus.Fields{
		"session": p.key,
		"player":  p.name,
	})

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		log.WithError(err).Error("unable to upgrade")
		if dto.Session != "" {
			g.sessions.Park(p)
		}
		return
	}
	defer conn.Close()
	conn.SetReadLimit(g.ws.ReadLimit)

	log.Debug("established ws connection")

	err = g.runGameLoop(r.Context(), conn, p, log)
	if err != nil && !websocket.IsCloseError(
		err, websocket.CloseNormalClosure, websocket.CloseGoingAway,
	) {
		log.WithError(err).Warn("abnormal ws break")
	}

	if p.game.Status() == game.Playing {
		p.game.ReleaseButtons()
		g.sessions.Park(p)
		log.Debug("session detached")
	}
}

// runGameLoop pairs a reader, which only parses client lines, with the
// loop that owns the session and drives its input ticks.
func (g GameHandler) runGameLoop(
	ctx context.Context, conn *websocket.Conn, p *playSession, log logrus.FieldLogger,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	cmds := make(chan command)

	eg.Go(func() error {
		defer close(cmds)
		return readCommands(ctx, conn, cmds, log)
	})
	eg.Go(func() error {
		defer func() {
			cancel()
			conn.SetReadDeadline(time.Now())
		}()
		return g.loop(ctx, conn, p, cmds, log)
	})

	return eg.Wait()
}

func readCommands(
	ctx context.Context, conn *websocket.Conn, cmds chan<- command, log logrus.FieldLogger,
) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		text := strings.TrimSpace(string(buf))
		log.Debugf("\t> %s", text)
		for _, line := range iterBySep(text, "\n") {
			select {
			case cmds <- parseCommand(line):
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (g GameHandler) loop(
	ctx context.Context,
	conn *websocket.Conn,
	p *playSession,
	cmds <-chan command,
	log logrus.FieldLogger,
) error {
	ticker := time.NewTicker(input.TickDuration)
	defer ticker.Stop()

	if err := g.write(conn, p.message(nil)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-cmds:
			if !ok {
				return nil
			}
			err := p.apply(c)
			if err != nil {
				log.WithError(err).Debug("command rejected")
			}
			g.recordWin(ctx, p, log)
			if werr := g.write(conn, p.message(err)); werr != nil {
				return werr
			}
		case <-ticker.C:
			if fired := p.game.Tick(); len(fired) > 0 {
				g.recordWin(ctx, p, log)
				if err := g.write(conn, p.message(nil)); err != nil {
					return err
				}
			}
		}
	}
}

func (g GameHandler) write(conn *websocket.Conn, m Message) error {
	conn.SetWriteDeadline(time.Now().Add(g.ws.WriteWait))
	return conn.WriteJSON(m)
}

func (g GameHandler) recordWin(ctx context.Context, p *playSession, log logrus.FieldLogger) {
	params, ok := p.pendingScore()
	if !ok {
		return
	}
	p.recorded = true
	if g.scores == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	score, err := g.scores.SaveHighScore(ctx, params)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		log.Debug("high score already recorded")
	case err != nil:
		log.WithError(err).Error("unable to record high score")
	default:
		log.WithFields(logrus.Fields{
			"elapsedMs": score.ElapsedMs,
			"gameKey":   score.SessionKey,
		}).Info("high score recorded")
	}
}
