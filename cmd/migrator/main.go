package main

import (
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-pad/internal/config"
	"github.com/vancomm/minesweeper-pad/internal/database"
	"github.com/vancomm/minesweeper-pad/internal/logging"
)

var log = logrus.New()

func main() {
	if err := logging.Setup(logging.OptionsFromEnv(), log); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}

	url, err := config.DbURL()
	if err != nil {
		log.Fatal("failed to read db config: ", err)
	}

	migrator, err := database.Migrate(url, database.Migrations)
	if err != nil {
		log.Fatal("failed to migrate db: ", err)
	}
	defer migrator.Close()

	version, dirty, err := migrator.Version()
	if err != nil {
		log.WithError(err).Error("failed to check migration version")
		return
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}
