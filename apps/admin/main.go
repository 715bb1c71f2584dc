package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"github.com/zenkai/taiji/core"
	"github.com/zenkai/taiji/core/session"
	"github.com/zenkai/taiji/storage/database"
	sqlxrepos "github.com/zenkai/taiji/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())
	dbx := sqlx.NewDb(db, conf.Database.Engine)

	// the operator session survives between invocations
	home, err := os.UserHomeDir()
	errAndDie(err)
	store, err := session.NewFileStore(filepath.Join(home, ".taiji"))
	errAndDie(err)

	// start CLI
	cli := commandLine{
		db:          db,
		usrRepo:     sqlxrepos.NewUserRepository(dbx),
		profileRepo: sqlxrepos.NewProfileRepository(dbx),
		sess:        session.NewController(store),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
