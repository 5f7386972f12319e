package handlers

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-pad/internal/config"
	"github.com/vancomm/minesweeper-pad/internal/game"
	"github.com/vancomm/minesweeper-pad/internal/input"
	"github.com/vancomm/minesweeper-pad/internal/mines"
	"github.com/vancomm/minesweeper-pad/internal/repository"
)

func TestMain(m *testing.M) {
	mines.Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

type memoryScores struct {
	mu    sync.Mutex
	saved []repository.HighScore
}

func (m *memoryScores) SaveHighScore(
	_ context.Context, p repository.CreateHighScoreParams,
) (*repository.HighScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.saved {
		if h.SessionKey == p.SessionKey {
			return nil, repository.ErrDuplicate
		}
	}
	h := repository.HighScore{
		HighscoreId: int64(len(m.saved) + 1),
		SessionKey:  p.SessionKey,
		PlayerName:  p.PlayerName,
		Side:        p.Side,
		MineCount:   p.MineCount,
		ElapsedMs:   p.Elapsed.Milliseconds(),
	}
	m.saved = append(m.saved, h)
	return &h, nil
}

func (m *memoryScores) GetHighScores(
	_ context.Context, f repository.HighScoreFilter,
) ([]repository.HighScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	scores := slices.Clone(m.saved)
	slices.SortFunc(scores, func(a, b repository.HighScore) int {
		return int(a.ElapsedMs - b.ElapsedMs)
	})
	if f.Limit > 0 && f.Limit < len(scores) {
		scores = scores[:f.Limit]
	}
	return scores, nil
}

func (m *memoryScores) all() []repository.HighScore {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.saved)
}

// 3x3 board with mines in two opposite corners.
func cornersField(*rand.Rand) (*mines.Field, error) {
	return mines.FieldFromMines(3, []int{0, 8})
}

func newTestServer(t *testing.T, scores repository.HighScoreStore) (*httptest.Server, *Registry) {
	t.Helper()
	log, _ := test.NewNullLogger()
	ws, err := config.NewWebSocket()
	require.NoError(t, err)

	registry := NewRegistry(time.Minute)
	play := NewGameHandler(log, ws, scores, registry, game.WithFieldFactory(cornersField))
	highscores := NewHighScoresHandler(log, scores)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /play", play.Play)
	mux.HandleFunc("GET /highscores", highscores.List)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, registry
}

func playURL(srv *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/play?" + query
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(playURL(srv, query), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, text string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(text)))
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var m Message
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func TestPlayWinAndReset(t *testing.T) {
	scores := &memoryScores{}
	srv, _ := newTestServer(t, scores)
	conn := dial(t, srv, "name=ann")

	hello := readMessage(t, conn)
	require.NotEmpty(t, hello.Session)
	assert.Equal(t, game.Playing, hello.Snapshot.Status)
	assert.Equal(t, 3, hello.Snapshot.Side)
	assert.Equal(t, 2, hello.Snapshot.FlagsLeft)

	send(t, conn, "f 0\nf 8")
	assert.Equal(t, 1, readMessage(t, conn).Snapshot.FlagsLeft)
	won := readMessage(t, conn)
	assert.Equal(t, game.Won, won.Snapshot.Status)
	assert.Equal(t, 8, won.Snapshot.Selection)

	saved := scores.all()
	require.Len(t, saved, 1)
	assert.Equal(t, hello.Session+"-0", saved[0].SessionKey)
	assert.Equal(t, "ann", saved[0].PlayerName)
	assert.Equal(t, 3, saved[0].Side)
	assert.Equal(t, 2, saved[0].MineCount)

	send(t, conn, "o 1")
	assert.Equal(t, game.ErrGameOver.Error(), readMessage(t, conn).Error)

	send(t, conn, "o 42")
	assert.Contains(t, readMessage(t, conn).Error, ErrOutOfRange.Error())

	send(t, conn, "zap")
	assert.Contains(t, readMessage(t, conn).Error, ErrUnknownCommand.Error())

	send(t, conn, "d start\nu start")
	assert.Equal(t, game.Won, readMessage(t, conn).Snapshot.Status)
	restarted := readMessage(t, conn)
	assert.Equal(t, game.Playing, restarted.Snapshot.Status)
	assert.Equal(t, 0, restarted.Snapshot.Selection)
	assert.Equal(t, hello.Session, restarted.Session)

	send(t, conn, "f 0\nf 8")
	readMessage(t, conn)
	readMessage(t, conn)
	saved = scores.all()
	require.Len(t, saved, 2)
	assert.Equal(t, hello.Session+"-1", saved[1].SessionKey)
}

func TestPlayButtons(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	conn := dial(t, srv, "")
	readMessage(t, conn)

	send(t, conn, "d down\nu down\nd reveal\nu reveal")
	assert.Equal(t, 3, readMessage(t, conn).Snapshot.Selection)
	readMessage(t, conn)
	pressed := readMessage(t, conn)
	assert.Equal(t, mines.Unknown, pressed.Snapshot.Grid[3])

	released := readMessage(t, conn)
	assert.Equal(t, game.Playing, released.Snapshot.Status)
	assert.Equal(t, mines.CellStatus(1), released.Snapshot.Grid[3])
}

func TestPlayHeldButtonRepeats(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	conn := dial(t, srv, "")
	readMessage(t, conn)

	send(t, conn, "d right")
	assert.Equal(t, 1, readMessage(t, conn).Snapshot.Selection)

	// sent by the server ticker, not in reply to a command
	repeated := readMessage(t, conn)
	assert.Equal(t, 2, repeated.Snapshot.Selection)
	assert.Empty(t, repeated.Error)
}

func TestPlayResume(t *testing.T) {
	srv, registry := newTestServer(t, nil)
	conn := dial(t, srv, "name=bob")
	hello := readMessage(t, conn)

	// right is still held when the client goes away
	send(t, conn, "d right")
	assert.Equal(t, 1, readMessage(t, conn).Snapshot.Selection)

	require.NoError(t, conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	))
	conn.Close()
	assert.Eventually(t, func() bool { return registry.Len() == 1 }, 5*time.Second, 10*time.Millisecond)

	again := dial(t, srv, "session="+hello.Session)
	resumed := readMessage(t, again)
	assert.Equal(t, hello.Session, resumed.Session)
	assert.Equal(t, 0, registry.Len())

	// the held button was released on detach, so nothing repeats
	again.SetReadDeadline(time.Now().Add(3 * input.RepeatDelay * input.TickDuration))
	_, _, err := again.ReadMessage()
	var netErr net.Error
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
}

func TestPlayUnknownSession(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	_, resp, err := websocket.DefaultDialer.Dial(playURL(srv, "session=nope"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHighScores(t *testing.T) {
	scores := &memoryScores{}
	for i, ms := range []int64{9000, 3000, 6000} {
		scores.SaveHighScore(context.Background(), repository.CreateHighScoreParams{
			SessionKey: string(rune('a' + i)),
			PlayerName: "p",
			Side:       24,
			MineCount:  99,
			Elapsed:    time.Duration(ms) * time.Millisecond,
		})
	}
	srv, _ := newTestServer(t, scores)

	resp, err := http.Get(srv.URL + "/highscores?limit=2")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []repository.HighScore
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, int64(3000), got[0].ElapsedMs)
	assert.Equal(t, int64(6000), got[1].ElapsedMs)

	resp, err = http.Get(srv.URL + "/highscores?limit=-1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHighScoresDisabled(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/highscores")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
