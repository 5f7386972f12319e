package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-pad/internal/app"
	"github.com/vancomm/minesweeper-pad/internal/database"
	"github.com/vancomm/minesweeper-pad/internal/logging"
	"github.com/vancomm/minesweeper-pad/internal/mines"
)

var log = logrus.New()

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := logging.Setup(logging.OptionsFromEnv(), log, mines.Log); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}

	a := app.New(log, database.Migrations)
	if err := a.Start(mainCtx); err != nil {
		log.Fatal("exit reason: ", err)
	}
}
