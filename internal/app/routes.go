package app

import (
	"net/http"

	"github.com/vancomm/minesweeper-pad/internal/handlers"
)

func (a *App) loadRoutes() {
	play := handlers.NewGameHandler(a.log, a.ws, a.scores, a.sessions)
	highscores := handlers.NewHighScoresHandler(a.log, a.scores)

	a.router.HandleFunc("GET /play", play.Play)
	a.router.HandleFunc("GET /highscores", highscores.List)
	a.router.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}
